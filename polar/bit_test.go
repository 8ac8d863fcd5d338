package polar

import (
	"reflect"
	"testing"
)

func TestParseBits(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "1010", "1010", false},
		{"separators", "10_10 01", "101001", false},
		{"empty", "", "", false},
		{"bad", "10x", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBits(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && FormatBits(got) != tt.want {
				t.Errorf("ParseBits() = %s, want %s", FormatBits(got), tt.want)
			}
		})
	}
}

func TestPackBits(t *testing.T) {
	in := []byte{0xa5, 0x0f}
	bits := UnpackBits(in)
	if FormatBits(bits) != "1010010100001111" {
		t.Errorf("UnpackBits() = %s", FormatBits(bits))
	}
	if got := PackBits(bits); !reflect.DeepEqual(got, in) {
		t.Errorf("PackBits() = %x, want %x", got, in)
	}
	if got := PackBits(bits[:3]); !reflect.DeepEqual(got, []byte{0xa0}) {
		t.Errorf("PackBits() = %x, want a0", got)
	}
}

func TestBit_ByteSet(t *testing.T) {
	var b Bit
	b.Set(7)
	if !b || b.Byte() != 1 {
		t.Errorf("Set(7) = %v, Byte() = %d", b, b.Byte())
	}
	b.Set(0)
	if b || b.Byte() != 0 {
		t.Errorf("Set(0) = %v, Byte() = %d", b, b.Byte())
	}
}
