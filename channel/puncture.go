package channel

import (
	"fmt"

	"github.com/jancona/polar/polar"
)

// PuncturePattern marks transmitted positions with true. A pattern shorter
// than the block repeats.
type PuncturePattern []polar.Bit

// Apply returns a copy of llr with the punctured positions erased.
func (p PuncturePattern) Apply(llr []float64) ([]float64, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("empty puncture pattern: %w", polar.ErrInvalidArgument)
	}
	out := make([]float64, len(llr))
	for i, v := range llr {
		if p[i%len(p)] {
			out[i] = v
		}
	}
	return out, nil
}

// Kept counts the transmitted positions of an n-bit block.
func (p PuncturePattern) Kept(n int) int {
	if len(p) == 0 {
		return 0
	}
	k := 0
	for i := 0; i < n; i++ {
		if p[i%len(p)] {
			k++
		}
	}
	return k
}

// HalfRate selects one of the rate 1/2 puncturing schemes.
type HalfRate int

const (
	DropFirstHalf HalfRate = iota
	DropLastHalf
	// DropOdd drops the 1st, 3rd, 5th... positions (even indices).
	DropOdd
	// DropEven drops the 2nd, 4th, 6th... positions (odd indices).
	DropEven
)

// HalfRatePatterns lists every HalfRate scheme in order.
var HalfRatePatterns = []HalfRate{DropFirstHalf, DropLastHalf, DropOdd, DropEven}

func (h HalfRate) String() string {
	switch h {
	case DropFirstHalf:
		return "drop first half"
	case DropLastHalf:
		return "drop last half"
	case DropOdd:
		return "drop odd"
	case DropEven:
		return "drop even"
	}
	return fmt.Sprintf("HalfRate(%d)", int(h))
}

// Pattern builds the n-bit pattern for h.
func (h HalfRate) Pattern(n int) (PuncturePattern, error) {
	p := make(PuncturePattern, n)
	for i := range p {
		switch h {
		case DropFirstHalf:
			p[i] = i >= n/2
		case DropLastHalf:
			p[i] = i < n/2
		case DropOdd:
			p[i] = i%2 == 1
		case DropEven:
			p[i] = i%2 == 0
		default:
			return nil, fmt.Errorf("half rate pattern %d: %w", int(h), polar.ErrInvalidArgument)
		}
	}
	return p, nil
}
