package polar

import (
	"fmt"

	"github.com/jancona/polar/tensor"
)

// base 2x2 polarization kernel
var g2Rows = [][]uint8{
	{1, 0},
	{1, 1},
}

// Kron returns the Kronecker product of two matrices: block (i,j) of the
// result is a[i][j] times the whole of b.
func Kron(a, b *tensor.Dense[uint8]) (*tensor.Dense[uint8], error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, fmt.Errorf("kron of rank %d and rank %d tensors: %w", a.Rank(), b.Rank(), tensor.ErrDimensionMismatch)
	}
	ae, be := a.Extents(), b.Extents()
	rows, cols := ae[0]*be[0], ae[1]*be[1]
	out, err := tensor.New[uint8](rows, cols)
	if err != nil {
		return nil, err
	}
	ad, bd, od := a.Data(), b.Data(), out.Data()
	for r1 := 0; r1 < ae[0]; r1++ {
		for c1 := 0; c1 < ae[1]; c1++ {
			v := ad[r1*ae[1]+c1]
			if v == 0 {
				continue
			}
			for r2 := 0; r2 < be[0]; r2++ {
				for c2 := 0; c2 < be[1]; c2++ {
					od[(r1*be[0]+r2)*cols+c1*be[1]+c2] = v * bd[r2*be[1]+c2]
				}
			}
		}
	}
	return out, nil
}

// Kernel builds the n x n polarization matrix G_n = G_{n/2} (x) G_2, starting from G_1 = [1].
func Kernel(n int) (*tensor.Dense[uint8], error) {
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("kernel size %d: %w", n, ErrInvalidSize)
	}
	g2, err := tensor.FromRows(g2Rows)
	if err != nil {
		return nil, err
	}
	gn, err := tensor.FromRows([][]uint8{{1}})
	if err != nil {
		return nil, err
	}
	for size := 1; size < n; size *= 2 {
		gn, err = Kron(gn, g2)
		if err != nil {
			return nil, err
		}
	}
	return gn, nil
}
