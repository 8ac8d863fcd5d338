package polar

import "math"

// Soft-decision primitives for successive-cancellation style decoders.
// The ML decoder does not use them.

// Sign returns -1, 0 or +1. Both zeros give 0 and NaN gives NaN.
func Sign(a float64) float64 {
	switch {
	case math.IsNaN(a):
		return math.NaN()
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// MinStar is the box-plus of two LLRs, 2*atanh(tanh(a/2)*tanh(b/2)). The
// approximation sign(a)*sign(b)*min(|a|,|b|) is used when approx is set or
// either input is infinite.
func MinStar(a, b float64, approx bool) float64 {
	if approx || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Sign(a) * Sign(b) * math.Min(math.Abs(a), math.Abs(b))
	}
	return 2 * math.Atanh(math.Tanh(a/2)*math.Tanh(b/2))
}

// PathMetric updates list decoder path metrics for one bit decision:
// pm[i] + ln(1 + exp(-(1-2u[i])*llr[i])), or with approx, pm[i] + |llr[i]|
// whenever the hard decision of llr[i] disagrees with u[i].
func PathMetric(pm, llr []float64, u []Bit, approx bool) ([]float64, error) {
	if len(llr) != len(pm) || len(u) != len(pm) {
		return nil, ErrSizeMismatch
	}
	out := make([]float64, len(pm))
	for i := range pm {
		if approx {
			out[i] = pm[i]
			hard := llr[i] < 0
			if hard != bool(u[i]) {
				out[i] += math.Abs(llr[i])
			}
			continue
		}
		s := 1.0
		if u[i] {
			s = -1
		}
		out[i] = pm[i] + math.Log1p(math.Exp(-s*llr[i]))
	}
	return out, nil
}
