package polar

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
)

const crcLen = 2

// Framer carries a byte payload over as many polar blocks as it needs. The
// payload is followed by a big-endian CRC-16, unpacked MSB first and cut into
// k-bit messages, one per block. The last message is zero padded.
type Framer struct {
	enc      *Encoder
	dec      *Decoder
	infoBits []int
}

// NewFramer creates a framer for block length n with the given info bit set.
func NewFramer(n int, seed uint64, infoBits []int) (*Framer, error) {
	enc, err := NewEncoder(n, seed)
	if err != nil {
		return nil, err
	}
	dec, err := NewDecoder(n, seed)
	if err != nil {
		return nil, err
	}
	if err := validateInfoBits(infoBits, n); err != nil {
		return nil, err
	}
	return &Framer{
		enc:      enc,
		dec:      dec,
		infoBits: append([]int(nil), infoBits...),
	}, nil
}

// Blocks is the number of polar blocks used for a payload of size bytes.
// A negative size counts as an empty payload.
func (f *Framer) Blocks(size int) int {
	k := len(f.infoBits)
	size = max(size, 0)
	bits := 8 * (size + crcLen)
	return (bits + k - 1) / k
}

// Encode frames payload and returns one codeword per block.
func (f *Framer) Encode(payload []byte) ([][]Bit, error) {
	buf := binary.BigEndian.AppendUint16(append([]byte(nil), payload...), CRC(payload))
	bits := UnpackBits(buf)
	k := len(f.infoBits)
	blocks := make([][]Bit, 0, f.Blocks(len(payload)))
	for start := 0; start < len(bits); start += k {
		msg := make([]Bit, k)
		copy(msg, bits[start:min(start+k, len(bits))])
		cw, err := f.enc.EncodeMessage(msg, f.infoBits)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, cw)
	}
	log.Printf("[DEBUG] framed %d bytes into %d blocks", len(payload), len(blocks))
	return blocks, nil
}

// Frame is a decoded payload with the confidence of each block.
type Frame struct {
	Payload    []byte
	Confidence []float64
}

// Decode reassembles a payload of size bytes from per-block LLRs and checks
// its CRC. A CRC failure returns ErrBadCRC along with the decoded frame.
func (f *Framer) Decode(ctx context.Context, llrs [][]float64, size int) (Frame, error) {
	if size < 0 {
		return Frame{}, fmt.Errorf("payload size %d: %w", size, ErrInvalidArgument)
	}
	if want := f.Blocks(size); len(llrs) != want {
		return Frame{}, fmt.Errorf("%d blocks for %d byte payload, want %d: %w", len(llrs), size, want, ErrSizeMismatch)
	}
	bits := make([]Bit, 0, len(llrs)*len(f.infoBits))
	conf := make([]float64, len(llrs))
	for i, llr := range llrs {
		res, err := f.dec.DecodeContext(ctx, llr, f.infoBits)
		if err != nil {
			return Frame{}, fmt.Errorf("block %d: %w", i, err)
		}
		bits = append(bits, res.Message...)
		conf[i] = res.Confidence
	}
	buf := PackBits(bits[:8*(size+crcLen)])
	fr := Frame{Payload: buf[:size], Confidence: conf}
	got, want := binary.BigEndian.Uint16(buf[size:]), CRC(fr.Payload)
	if got != want {
		return fr, fmt.Errorf("crc %04x, computed %04x: %w", got, want, ErrBadCRC)
	}
	return fr, nil
}
