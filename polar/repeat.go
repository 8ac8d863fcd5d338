package polar

import "fmt"

// RepeatBits repeats each bit r times: r=3, 10 -> 111000.
func RepeatBits(data []Bit, r int) ([]Bit, error) {
	if r <= 0 {
		return nil, fmt.Errorf("repeat factor %d: %w", r, ErrInvalidArgument)
	}
	out := make([]Bit, 0, len(data)*r)
	for _, b := range data {
		for j := 0; j < r; j++ {
			out = append(out, b)
		}
	}
	return out, nil
}

// RepeatMessage repeats the whole message r times: r=3, 10 -> 101010.
func RepeatMessage(data []Bit, r int) ([]Bit, error) {
	if r <= 0 {
		return nil, fmt.Errorf("repeat factor %d: %w", r, ErrInvalidArgument)
	}
	out := make([]Bit, 0, len(data)*r)
	for i := 0; i < r; i++ {
		out = append(out, data...)
	}
	return out, nil
}

// DecodeRepeatMessage soft-combines the r copies of a k-bit message laid out
// by RepeatMessage. Trailing LLRs that do not fill a complete copy are still
// combined into the positions they cover.
func DecodeRepeatMessage(llr []float64, k int) ([]Bit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("message length %d: %w", k, ErrInvalidArgument)
	}
	sum := make([]float64, k)
	for i, v := range llr {
		sum[i%k] += v
	}
	out := make([]Bit, k)
	for i, v := range sum {
		out[i] = v < 0
	}
	return out, nil
}
