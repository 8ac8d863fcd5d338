// Package channel models what happens to a polar codeword between encoder and
// decoder: hard bits become LLRs, and parts of the block are cropped, scattered,
// punctured or disturbed by noise.
package channel

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jancona/polar/polar"
)

// DefaultConfidence is the LLR magnitude given to a received hard bit.
const DefaultConfidence = 10

// ErrBadSpan means a crop or window that does not fit in the block.
var ErrBadSpan = errors.New("span outside block")

// NewRand returns a generator for reproducible trials.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0xda3e39cb94b95bdb))
}

// RandomBits draws k uniformly random bits.
func RandomBits(r *rand.Rand, k int) []polar.Bit {
	bits := make([]polar.Bit, k)
	for i := range bits {
		bits[i] = r.Uint32()&1 == 1
	}
	return bits
}

// BitsToLLR maps 0 to +confidence and 1 to -confidence.
func BitsToLLR(bits []polar.Bit, confidence float64) []float64 {
	llr := make([]float64, len(bits))
	for i, b := range bits {
		if b {
			llr[i] = -confidence
		} else {
			llr[i] = confidence
		}
	}
	return llr
}

func checkSpan(n, start, length int) error {
	if start < 0 || length < 0 || start+length > n {
		return fmt.Errorf("span [%d, %d) of %d: %w", start, start+length, n, ErrBadSpan)
	}
	return nil
}

// Crop returns a copy of llr with everything outside [start, start+length) erased.
func Crop(llr []float64, start, length int) ([]float64, error) {
	if err := checkSpan(len(llr), start, length); err != nil {
		return nil, err
	}
	out := make([]float64, len(llr))
	copy(out[start:start+length], llr[start:start+length])
	return out, nil
}

// Window returns a copy of llr[start:start+length]. The receiver does not know start.
func Window(llr []float64, start, length int) ([]float64, error) {
	if err := checkSpan(len(llr), start, length); err != nil {
		return nil, err
	}
	return append([]float64(nil), llr[start:start+length]...), nil
}

// RandomCrop is Crop at a uniformly random start. It also returns the start.
func RandomCrop(r *rand.Rand, llr []float64, length int) ([]float64, int, error) {
	if err := checkSpan(len(llr), 0, length); err != nil {
		return nil, 0, err
	}
	start := r.IntN(len(llr) - length + 1)
	out, err := Crop(llr, start, length)
	return out, start, err
}

// RandomWindow is Window at a uniformly random start. It also returns the start.
func RandomWindow(r *rand.Rand, llr []float64, length int) ([]float64, int, error) {
	if err := checkSpan(len(llr), 0, length); err != nil {
		return nil, 0, err
	}
	start := r.IntN(len(llr) - length + 1)
	out, err := Window(llr, start, length)
	return out, start, err
}

// Scatter returns a copy of llr in which only keep distinct, randomly chosen
// positions survive.
func Scatter(r *rand.Rand, llr []float64, keep int) ([]float64, error) {
	if keep < 0 || keep > len(llr) {
		return nil, fmt.Errorf("keep %d of %d: %w", keep, len(llr), ErrBadSpan)
	}
	out := make([]float64, len(llr))
	for _, i := range r.Perm(len(llr))[:keep] {
		out[i] = llr[i]
	}
	return out, nil
}

// DiscreteNoise draws n values from {-2, -1, 0, 1, 2} * step.
func DiscreteNoise(r *rand.Rand, n int, step float64) []float64 {
	noise := make([]float64, n)
	for i := range noise {
		noise[i] = float64(r.IntN(5)-2) * step
	}
	return noise
}

// AddNoise adds noise to llr in place. Erased positions receive noise too.
func AddNoise(llr, noise []float64) error {
	if len(llr) != len(noise) {
		return fmt.Errorf("llr length %d, noise length %d: %w", len(llr), len(noise), polar.ErrSizeMismatch)
	}
	for i := range llr {
		llr[i] += noise[i]
	}
	return nil
}
