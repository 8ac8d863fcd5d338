package polar

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// BlockEncoder maps an N-bit transform input to an N-bit codeword.
type BlockEncoder interface {
	N() int
	Encode(data []Bit) ([]Bit, error)
}

// Encoder is the O(N log N) butterfly polar transform, optionally followed by
// a seeded permutation of the codeword bits. It holds no mutable state.
type Encoder struct {
	n    int
	seed uint64
}

// NewEncoder creates an encoder for block length n. Seed 0 disables the permutation.
func NewEncoder(n int, seed uint64) (*Encoder, error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("encoder size %d: %w", n, ErrInvalidSize)
	}
	return &Encoder{n: n, seed: seed}, nil
}

// N is the block length.
func (e *Encoder) N() int {
	return e.n
}

// Seed is the codeword permutation seed, 0 for none.
func (e *Encoder) Seed() uint64 {
	return e.seed
}

// Encode returns data x G_n over GF(2), permuted if a seed is set. data is not modified.
func (e *Encoder) Encode(data []Bit) ([]Bit, error) {
	if len(data) != e.n {
		return nil, fmt.Errorf("data length %d, block length %d: %w", len(data), e.n, ErrSizeMismatch)
	}
	out := append([]Bit(nil), data...)
	butterfly(out)
	if e.seed != 0 {
		Shuffle(out, e.seed)
	}
	return out, nil
}

// Transform applies the unpermuted polar transform to buf in place.
func (e *Encoder) Transform(buf []Bit) error {
	if len(buf) != e.n {
		return fmt.Errorf("buffer length %d, block length %d: %w", len(buf), e.n, ErrSizeMismatch)
	}
	butterfly(buf)
	return nil
}

// EncodeMessage scatters msg onto infoBits, freezes the rest to zero and encodes.
func (e *Encoder) EncodeMessage(msg []Bit, infoBits []int) ([]Bit, error) {
	u, err := Scatter(msg, infoBits, e.n)
	if err != nil {
		return nil, err
	}
	return e.Encode(u)
}

// butterfly runs the log2(len(buf)) XOR stages in place.
// len(buf) must be a power of two.
func butterfly(buf []Bit) {
	n := len(buf)
	for step := 1; step < n; step *= 2 {
		for i := 0; i < n; i += 2 * step {
			lo := buf[i : i+step]
			hi := buf[i+step : i+2*step]
			for j := range lo {
				lo[j] = lo[j] != hi[j]
			}
		}
	}
}

// Scatter places msg at the infoBits positions of an n-bit zero vector.
func Scatter(msg []Bit, infoBits []int, n int) ([]Bit, error) {
	if err := validateInfoBits(infoBits, n); err != nil {
		return nil, err
	}
	if len(msg) != len(infoBits) {
		return nil, fmt.Errorf("message length %d, %d info bits: %w", len(msg), len(infoBits), ErrSizeMismatch)
	}
	u := make([]Bit, n)
	for i, pos := range infoBits {
		u[pos] = msg[i]
	}
	return u, nil
}

func validateInfoBits(infoBits []int, n int) error {
	if len(infoBits) == 0 {
		return fmt.Errorf("empty info bit set: %w", ErrInvalidArgument)
	}
	if len(infoBits) > n {
		return fmt.Errorf("%d info bits exceed block length %d: %w", len(infoBits), n, ErrInvalidArgument)
	}
	seen := make(map[int]bool, len(infoBits))
	for _, pos := range infoBits {
		if pos < 0 || pos >= n {
			return fmt.Errorf("info bit %d outside [0, %d): %w", pos, n, ErrInvalidArgument)
		}
		if seen[pos] {
			return fmt.Errorf("duplicate info bit %d: %w", pos, ErrInvalidArgument)
		}
		seen[pos] = true
	}
	return nil
}

// MatrixEncoder multiplies by the generator matrix directly. It is O(N^2) in
// time and memory and serves as the reference for Encoder.
type MatrixEncoder struct {
	n    int
	seed uint64
	g    *mat.Dense
}

func NewMatrixEncoder(n int, seed uint64) (*MatrixEncoder, error) {
	kernel, err := Kernel(n)
	if err != nil {
		return nil, err
	}
	g := mat.NewDense(n, n, nil)
	for i, v := range kernel.Data() {
		if v != 0 {
			g.Set(i/n, i%n, 1)
		}
	}
	return &MatrixEncoder{n: n, seed: seed, g: g}, nil
}

// N is the block length.
func (e *MatrixEncoder) N() int {
	return e.n
}

// Encode computes data x G_n, reducing each column sum modulo 2.
func (e *MatrixEncoder) Encode(data []Bit) ([]Bit, error) {
	if len(data) != e.n {
		return nil, fmt.Errorf("data length %d, block length %d: %w", len(data), e.n, ErrSizeMismatch)
	}
	u := mat.NewVecDense(e.n, nil)
	for i, b := range data {
		if b {
			u.SetVec(i, 1)
		}
	}
	var x mat.VecDense
	x.MulVec(e.g.T(), u)
	out := make([]Bit, e.n)
	for i := range out {
		out[i] = int(x.AtVec(i))%2 == 1
	}
	if e.seed != 0 {
		Shuffle(out, e.seed)
	}
	return out, nil
}
