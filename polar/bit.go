package polar

import (
	"fmt"
	"strings"
)

type Bit bool

func (b Bit) Byte() byte {
	if b {
		return 1
	}
	return 0
}

func (b *Bit) Set(by byte) {
	*b = by != 0
}

// ParseBits reads a string of '0' and '1' characters. Spaces and underscores are ignored.
func ParseBits(s string) ([]Bit, error) {
	bits := make([]Bit, 0, len(s))
	for i, c := range s {
		switch c {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		case ' ', '_':
		default:
			return nil, fmt.Errorf("invalid bit character %q at %d", c, i)
		}
	}
	return bits, nil
}

// BitsFromInts converts 0/1 values; anything non-zero is a one.
func BitsFromInts(v []int) []Bit {
	bits := make([]Bit, len(v))
	for i := range v {
		bits[i] = v[i] != 0
	}
	return bits
}

func FormatBits(bits []Bit) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, b := range bits {
		sb.WriteByte('0' + b.Byte())
	}
	return sb.String()
}

// UnpackBits expands bytes MSB first.
func UnpackBits(in []byte) []Bit {
	out := make([]Bit, 0, 8*len(in))
	for _, by := range in {
		for j := 7; j >= 0; j-- {
			out = append(out, (by>>j)&1 != 0)
		}
	}
	return out
}

// PackBits is the inverse of UnpackBits. A trailing partial byte is zero padded.
func PackBits(in []Bit) []byte {
	out := make([]byte, (len(in)+7)/8)
	for i, b := range in {
		if b {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out
}
