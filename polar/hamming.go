package polar

import "fmt"

// Weight is the number of ones in bits.
func Weight(bits []Bit) int {
	w := 0
	for _, b := range bits {
		if b {
			w++
		}
	}
	return w
}

// Distance is the Hamming distance between two equal-length bit vectors.
func Distance(a, b []Bit) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("hamming distance of %d and %d bits: %w", len(a), len(b), ErrSizeMismatch)
	}
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d, nil
}
