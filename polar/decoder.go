package polar

import (
	"context"
	"fmt"
	"math"
)

// The context is polled once per this many candidates.
const cancelCheckInterval = 256

// Result of a maximum-likelihood decode.
type Result struct {
	Message []Bit
	// Confidence is best*(best-second)/energy^2, where best and second are the
	// two highest correlation scores and energy is the sum of |llr|. It is a
	// margin score, not a probability.
	Confidence float64
}

// Decoder is a brute-force maximum-likelihood polar decoder. Every call
// enumerates all 2^k messages, so k should stay small (roughly 20 or less).
// A Decoder holds no mutable state and may be shared between goroutines.
type Decoder struct {
	n    int
	seed uint64
	// unpermuted transform applied to every candidate
	enc *Encoder
}

// NewDecoder creates a decoder for block length n. The seed must match the encoder's.
func NewDecoder(n int, seed uint64) (*Decoder, error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("decoder size %d: %w", n, ErrInvalidSize)
	}
	enc, err := NewEncoder(n, 0)
	if err != nil {
		return nil, err
	}
	return &Decoder{n: n, seed: seed, enc: enc}, nil
}

// N is the block length.
func (d *Decoder) N() int {
	return d.n
}

// Decode finds the message whose codeword best correlates with llr.
// llr must have exactly N entries: positive means 0 is likely, negative means
// 1 is likely, zero means erased.
func (d *Decoder) Decode(llr []float64, infoBits []int) (Result, error) {
	return d.DecodeContext(context.Background(), llr, infoBits)
}

// DecodeContext is Decode with cancellation. On cancellation it returns ctx.Err()
// and an empty Result.
func (d *Decoder) DecodeContext(ctx context.Context, llr []float64, infoBits []int) (Result, error) {
	if len(llr) != d.n {
		return Result{}, fmt.Errorf("llr length %d, block length %d: %w", len(llr), d.n, ErrInvalidArgument)
	}
	if err := validateInfoBits(infoBits, d.n); err != nil {
		return Result{}, err
	}

	// Undo the permutation on the observation once instead of permuting every candidate.
	obs := llr
	if d.seed != 0 {
		obs = append([]float64(nil), llr...)
		Unshuffle(obs, d.seed)
	}

	s := newSearch(len(infoBits))
	u := make([]Bit, d.n)
	cw := make([]Bit, d.n)
	for iter := 0; ; iter++ {
		if iter%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		copy(cw, u)
		if err := d.enc.Transform(cw); err != nil {
			return Result{}, err
		}
		s.observe(correlate(cw, obs), u, infoBits)
		if !nextMessage(u, infoBits) {
			break
		}
	}
	return s.result(energy(llr)), nil
}

// DecodeUnaligned decodes a contiguous window of a codeword at an unknown
// offset. Every candidate is scored at every offset in [0, N-len(llr)].
func (d *Decoder) DecodeUnaligned(llr []float64, infoBits []int) (Result, error) {
	return d.DecodeUnalignedContext(context.Background(), llr, infoBits)
}

// DecodeUnalignedContext is DecodeUnaligned with cancellation.
func (d *Decoder) DecodeUnalignedContext(ctx context.Context, llr []float64, infoBits []int) (Result, error) {
	if len(llr) > d.n {
		return Result{}, fmt.Errorf("llr window %d exceeds block length %d: %w", len(llr), d.n, ErrInvalidArgument)
	}
	if err := validateInfoBits(infoBits, d.n); err != nil {
		return Result{}, err
	}

	// The window position is unknown, so candidates are permuted instead of the observation.
	var perm []int
	if d.seed != 0 {
		perm = Permutation(d.n, d.seed)
	}

	s := newSearch(len(infoBits))
	u := make([]Bit, d.n)
	cw := make([]Bit, d.n)
	pcw := cw
	if perm != nil {
		pcw = make([]Bit, d.n)
	}
	maxOffset := d.n - len(llr)
	for iter := 0; ; iter++ {
		if iter%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		copy(cw, u)
		if err := d.enc.Transform(cw); err != nil {
			return Result{}, err
		}
		if perm != nil {
			for i, p := range perm {
				pcw[i] = cw[p]
			}
		}
		for off := 0; off <= maxOffset; off++ {
			s.observe(correlate(pcw[off:off+len(llr)], llr), u, infoBits)
		}
		if !nextMessage(u, infoBits) {
			break
		}
	}
	return s.result(energy(llr)), nil
}

// search tracks the best and runner-up scores seen during enumeration.
type search struct {
	best, second float64
	msg          []Bit
}

func newSearch(k int) *search {
	return &search{
		best:   math.Inf(-1),
		second: math.Inf(-1),
		msg:    make([]Bit, k),
	}
}

// observe records a candidate score. Ties keep the earlier candidate.
func (s *search) observe(match float64, u []Bit, infoBits []int) {
	if match > s.best {
		s.second = s.best
		s.best = match
		extractMessage(s.msg, u, infoBits)
	} else if match > s.second {
		s.second = match
	}
}

// result computes the confidence. An all-erased observation carries no
// information and gets zero confidence.
func (s *search) result(energy float64) Result {
	r := Result{Message: append([]Bit(nil), s.msg...)}
	if energy > 0 && !math.IsInf(s.second, -1) {
		r.Confidence = s.best * (s.best - s.second) / (energy * energy)
	}
	return r
}

// correlate scores cw, read as +1 for 0 and -1 for 1, against llr.
func correlate(cw []Bit, llr []float64) float64 {
	var match float64
	for i, v := range llr {
		if cw[i] {
			match -= v
		} else {
			match += v
		}
	}
	return match
}

func energy(llr []float64) float64 {
	var e float64
	for _, v := range llr {
		e += math.Abs(v)
	}
	return e
}

// nextMessage increments the binary counter formed by the infoBits positions
// of u, infoBits[0] being the least significant. It returns false when the
// counter wraps from all ones back to all zeros.
//
// Lower positions are cleared after every increment, carry or not, which
// leaves the enumeration order 0, 1, ..., 2^k-1.
func nextMessage(u []Bit, infoBits []int) bool {
	for i, pos := range infoBits {
		u[pos] = !u[pos]
		if u[pos] {
			for _, lower := range infoBits[:i] {
				u[lower] = false
			}
			return true
		}
	}
	return false
}

func extractMessage(msg []Bit, u []Bit, infoBits []int) {
	for i, pos := range infoBits {
		msg[i] = u[pos]
	}
}
