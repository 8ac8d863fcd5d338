package polar

import (
	"errors"
	"testing"

	"github.com/icza/gog"
)

func TestRepeat(t *testing.T) {
	data := gog.Must(ParseBits("10"))
	if got := FormatBits(gog.Must(RepeatBits(data, 3))); got != "111000" {
		t.Errorf("RepeatBits() = %s, want 111000", got)
	}
	if got := FormatBits(gog.Must(RepeatMessage(data, 3))); got != "101010" {
		t.Errorf("RepeatMessage() = %s, want 101010", got)
	}
	if _, err := RepeatBits(data, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RepeatBits() error = %v, want %v", err, ErrInvalidArgument)
	}
	if _, err := RepeatMessage(data, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RepeatMessage() error = %v, want %v", err, ErrInvalidArgument)
	}
}

func TestDecodeRepeatMessage(t *testing.T) {
	// "10" sent three times, second copy of the first bit flipped, last bit erased
	llr := []float64{-5, 5, 5, 5, -5, 0}
	got := gog.Must(DecodeRepeatMessage(llr, 2))
	if FormatBits(got) != "10" {
		t.Errorf("DecodeRepeatMessage() = %s, want 10", FormatBits(got))
	}
	if _, err := DecodeRepeatMessage(llr, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("DecodeRepeatMessage() error = %v, want %v", err, ErrInvalidArgument)
	}
}
