package polar

import "errors"

var (
	// ErrInvalidSize means a block length that is not a positive power of two.
	ErrInvalidSize = errors.New("block length must be a positive power of two")
	// ErrSizeMismatch means an input vector whose length differs from the block length.
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrInvalidArgument covers bad info bit sets and oversized LLR windows.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDegenerateInput means two distinct messages produced the same codeword.
	ErrDegenerateInput = errors.New("distinct messages produced identical codewords")
	// ErrBadCRC means a reassembled frame failed its checksum.
	ErrBadCRC = errors.New("bad frame CRC")
)

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
