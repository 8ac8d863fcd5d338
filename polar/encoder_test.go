package polar

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/icza/gog"
)

func TestEncoder_Encode(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"N4 ones", "1111", "0001"},
		{"N4 fixed point", "0110", "0110"},
		{"N8", "11010101", "10000011"},
		{"N8 ones", "11111111", "00000001"},
		{"N1", "1", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := gog.Must(ParseBits(tt.data))
			enc := gog.Must(NewEncoder(len(data), 0))
			got, err := enc.Encode(data)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if FormatBits(got) != tt.want {
				t.Errorf("Encode() = %s, want %s", FormatBits(got), tt.want)
			}
			if FormatBits(data) != tt.data {
				t.Errorf("Encode() modified its input: %s", FormatBits(data))
			}
		})
	}
}

func TestEncoder_Errors(t *testing.T) {
	for _, n := range []int{0, 3, 5, 6} {
		if _, err := NewEncoder(n, 0); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewEncoder(%d) error = %v, want %v", n, err, ErrInvalidSize)
		}
	}
	enc := gog.Must(NewEncoder(8, 0))
	if _, err := enc.Encode(make([]Bit, 4)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Encode() error = %v, want %v", err, ErrSizeMismatch)
	}
	if err := enc.Transform(make([]Bit, 16)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Transform() error = %v, want %v", err, ErrSizeMismatch)
	}
	if _, err := enc.EncodeMessage(make([]Bit, 2), []int{7, 6, 5}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("EncodeMessage() error = %v, want %v", err, ErrSizeMismatch)
	}
	if _, err := enc.EncodeMessage(make([]Bit, 2), []int{7, 8}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("EncodeMessage() error = %v, want %v", err, ErrInvalidArgument)
	}
}

func TestEncoder_MatchesMatrix(t *testing.T) {
	n := 64
	patterns := map[string]func(i int) Bit{
		"alternating": func(i int) Bit { return i&1 == 1 },
		"blocks of 8": func(i int) Bit { return (i/8)&1 == 1 },
	}
	r := rand.New(rand.NewPCG(1, 2))
	patterns["random"] = func(int) Bit { return r.IntN(2) == 1 }

	for _, seed := range []uint64{0, 99} {
		fast := gog.Must(NewEncoder(n, seed))
		ref := gog.Must(NewMatrixEncoder(n, seed))
		for name, p := range patterns {
			data := make([]Bit, n)
			for i := range data {
				data[i] = p(i)
			}
			got := gog.Must(fast.Encode(data))
			want := gog.Must(ref.Encode(data))
			if !reflect.DeepEqual(got, want) {
				t.Errorf("seed %d %s: Encode() = %s, want %s", seed, name, FormatBits(got), FormatBits(want))
			}
		}
	}
}

// The unpermuted transform is its own inverse.
func TestEncoder_Involution(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for n := 1; n <= 256; n *= 2 {
		enc := gog.Must(NewEncoder(n, 0))
		data := make([]Bit, n)
		for i := range data {
			data[i] = r.IntN(2) == 1
		}
		twice := gog.Must(enc.Encode(gog.Must(enc.Encode(data))))
		if !reflect.DeepEqual(twice, data) {
			t.Errorf("N=%d: Encode(Encode(x)) = %s, want %s", n, FormatBits(twice), FormatBits(data))
		}
	}
}

// Transform skips the permutation even on a seeded encoder.
func TestEncoder_Transform(t *testing.T) {
	data := gog.Must(ParseBits("11010101"))
	plain := gog.Must(NewEncoder(8, 0))
	seeded := gog.Must(NewEncoder(8, 301))

	buf := append([]Bit(nil), data...)
	if err := seeded.Transform(buf); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if want := gog.Must(plain.Encode(data)); !reflect.DeepEqual(buf, want) {
		t.Errorf("Transform() = %s, want %s", FormatBits(buf), FormatBits(want))
	}
}

func TestEncoder_EncodeMessage(t *testing.T) {
	enc := gog.Must(NewEncoder(8, 0))
	// message 1,1 on positions 7 and 6, everything else frozen
	got := gog.Must(enc.EncodeMessage(BitsFromInts([]int{1, 1}), []int{7, 6}))
	want := gog.Must(enc.Encode(gog.Must(ParseBits("00000011"))))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EncodeMessage() = %s, want %s", FormatBits(got), FormatBits(want))
	}
}

func TestScatter(t *testing.T) {
	got, err := Scatter(BitsFromInts([]int{1, 0, 1}), []int{5, 1, 2}, 6)
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	if FormatBits(got) != "001001" {
		t.Errorf("Scatter() = %s, want 001001", FormatBits(got))
	}
}

func TestValidateInfoBits(t *testing.T) {
	tests := []struct {
		name     string
		infoBits []int
		n        int
		wantErr  bool
	}{
		{"ok", []int{3, 1}, 4, false},
		{"all", []int{0, 1, 2, 3}, 4, false},
		{"empty", nil, 4, true},
		{"too many", []int{0, 1, 2, 3, 0}, 4, true},
		{"negative", []int{-1}, 4, true},
		{"out of range", []int{4}, 4, true},
		{"duplicate", []int{2, 2}, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInfoBits(tt.infoBits, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateInfoBits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("validateInfoBits() error = %v, want %v", err, ErrInvalidArgument)
			}
		})
	}
}

func benchmarkEncoder(b *testing.B, enc BlockEncoder) {
	data := make([]Bit, enc.N())
	for i := range data {
		data[i] = i%3 == 0
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncoder_Butterfly(b *testing.B) {
	benchmarkEncoder(b, gog.Must(NewEncoder(1024, 0)))
}

func BenchmarkEncoder_Matrix(b *testing.B) {
	benchmarkEncoder(b, gog.Must(NewMatrixEncoder(1024, 0)))
}
