package polar

import "math/rand/v2"

// A fresh generator per call: the permutation depends on the seed alone.
func newPermutationRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// Shuffle permutes s in place with a Fisher-Yates shuffle keyed by seed.
func Shuffle[T any](s []T, seed uint64) {
	if len(s) < 2 {
		return
	}
	r := newPermutationRand(seed)
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Permutation returns the index mapping Shuffle applies to a sequence of length n:
// after Shuffle, element i holds what was at position Permutation(n, seed)[i].
func Permutation(n int, seed uint64) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	Shuffle(idx, seed)
	return idx
}

// Unshuffle undoes Shuffle for the same seed.
func Unshuffle[T any](s []T, seed uint64) {
	if len(s) < 2 {
		return
	}
	perm := Permutation(len(s), seed)
	tmp := append([]T(nil), s...)
	for i, p := range perm {
		s[p] = tmp[i]
	}
}
