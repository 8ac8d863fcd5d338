package polar

import (
	"context"
	"fmt"
)

// Codewords returns the codewords of all 2^k messages over infoBits, in
// enumeration order (message value 0 first, infoBits[0] least significant).
func Codewords(ctx context.Context, enc BlockEncoder, infoBits []int) ([][]Bit, error) {
	n := enc.N()
	if err := validateInfoBits(infoBits, n); err != nil {
		return nil, err
	}
	if len(infoBits) >= 31 {
		return nil, fmt.Errorf("%d info bits is too many to enumerate: %w", len(infoBits), ErrInvalidArgument)
	}
	out := make([][]Bit, 0, 1<<len(infoBits))
	u := make([]Bit, n)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cw, err := enc.Encode(u)
		if err != nil {
			return nil, err
		}
		out = append(out, cw)
		if !nextMessage(u, infoBits) {
			break
		}
	}
	return out, nil
}

// MinDistance returns the minimum Hamming distance between any two codewords
// of the code. Two distinct messages with the same codeword are reported as
// ErrDegenerateInput. Cost is O(4^k * N).
func MinDistance(ctx context.Context, enc BlockEncoder, infoBits []int) (int, error) {
	codewords, err := Codewords(ctx, enc, infoBits)
	if err != nil {
		return 0, err
	}
	minDist := enc.N() + 1
	for i := 1; i < len(codewords); i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for j := 0; j < i; j++ {
			d, err := Distance(codewords[i], codewords[j])
			if err != nil {
				return 0, err
			}
			if d == 0 {
				return 0, fmt.Errorf("messages %d and %d: %w", j, i, ErrDegenerateInput)
			}
			minDist = min(minDist, d)
		}
	}
	return minDist, nil
}
