package polar

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"slices"
	"strconv"
	"strings"

	"github.com/jancona/polar/tensor"
)

// RowWeight is the number of ones in one row of the polarization kernel.
type RowWeight struct {
	Index  int
	Weight int
}

// RowWeights computes the weight of every row of a square kernel, in row order.
func RowWeights(g *tensor.Dense[uint8]) ([]RowWeight, error) {
	ext := g.Extents()
	if len(ext) != 2 || ext[0] != ext[1] {
		return nil, fmt.Errorf("row weights of %v tensor: %w", ext, tensor.ErrDimensionMismatch)
	}
	rows := make([]RowWeight, ext[0])
	for r := range rows {
		row, err := g.Row(r)
		if err != nil {
			return nil, err
		}
		w := 0
		for _, v := range row {
			w += int(v)
		}
		rows[r] = RowWeight{Index: r, Weight: w}
	}
	return rows, nil
}

// SortRowWeights orders rows by descending weight, ties by descending index.
func SortRowWeights(rows []RowWeight) {
	slices.SortFunc(rows, func(a, b RowWeight) int {
		if a.Weight != b.Weight {
			return b.Weight - a.Weight
		}
		return b.Index - a.Index
	})
}

// Rank returns the rows of G_n from most used (best information bit
// candidates) to least used (best frozen bit candidates).
func Rank(n int) ([]RowWeight, error) {
	g, err := Kernel(n)
	if err != nil {
		return nil, err
	}
	rows, err := RowWeights(g)
	if err != nil {
		return nil, err
	}
	SortRowWeights(rows)
	return rows, nil
}

// InfoBits returns the k most reliable positions for block length n.
func InfoBits(n, k int) ([]int, error) {
	if k <= 0 || k > n {
		return nil, fmt.Errorf("%d info bits for block length %d: %w", k, n, ErrInvalidArgument)
	}
	rows, err := Rank(n)
	if err != nil {
		return nil, err
	}
	return TopIndices(rows, k), nil
}

// TopIndices returns the indices of the first k ranked rows.
func TopIndices(rows []RowWeight, k int) []int {
	k = min(k, len(rows))
	idx := make([]int, k)
	for i := range idx {
		idx[i] = rows[i].Index
	}
	return idx
}

// WriteRankTable writes one "index weight" line per row.
func WriteRankTable(w io.Writer, rows []RowWeight) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# index weight")
	for _, r := range rows {
		fmt.Fprintf(bw, "%d %d\n", r.Index, r.Weight)
	}
	return bw.Flush()
}

// ReadRankTable reads a table written by WriteRankTable. Blank lines and lines
// starting with '#' are skipped. Row order is preserved.
func ReadRankTable(r io.Reader) ([]RowWeight, error) {
	var rows []RowWeight
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("rank table line %d: want 2 fields, got %d", line, len(fields))
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("rank table line %d: %w", line, err)
		}
		weight, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("rank table line %d: %w", line, err)
		}
		rows = append(rows, RowWeight{Index: idx, Weight: weight})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] read %d rank table rows", len(rows))
	return rows, nil
}
