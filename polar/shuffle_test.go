package polar

import (
	"reflect"
	"slices"
	"testing"
)

func TestShuffle_RoundTrip(t *testing.T) {
	orig := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for seed := uint64(0); seed < 100; seed++ {
		s := slices.Clone(orig)
		Shuffle(s, seed)
		if reflect.DeepEqual(s, orig) {
			t.Errorf("seed %d: Shuffle() left %v unchanged", seed, s)
		}
		Unshuffle(s, seed)
		if !reflect.DeepEqual(s, orig) {
			t.Errorf("seed %d: Unshuffle(Shuffle()) = %v, want %v", seed, s, orig)
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	a := Permutation(64, 12345)
	b := Permutation(64, 12345)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Permutation() = %v then %v", a, b)
	}
	if reflect.DeepEqual(a, Permutation(64, 12346)) {
		t.Errorf("seeds 12345 and 12346 gave the same permutation")
	}
}

func TestPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 64, 1000} {
		perm := Permutation(n, 7)
		sorted := slices.Clone(perm)
		slices.Sort(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("Permutation(%d) = %v is not a bijection", n, perm)
			}
		}

		s := make([]string, n)
		for i := range s {
			s[i] = string(rune('a' + i%26))
		}
		shuffled := slices.Clone(s)
		Shuffle(shuffled, 7)
		for i, p := range perm {
			if shuffled[i] != s[p] {
				t.Fatalf("N=%d: shuffled[%d] = %q, want s[%d] = %q", n, i, shuffled[i], p, s[p])
			}
		}
	}
}

func TestShuffle_Short(t *testing.T) {
	var empty []Bit
	Shuffle(empty, 5)
	Unshuffle(empty, 5)
	one := []Bit{true}
	Shuffle(one, 5)
	if !one[0] {
		t.Errorf("Shuffle() changed a single element slice")
	}
}
