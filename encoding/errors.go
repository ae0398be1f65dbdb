package encoding

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is returned when a NaN or infinite value is encoded, or when a
	// strict decoder meets a bit pattern that decodes to one.
	ErrInvalidValue = errors.New("flotsam: NaN and infinity cannot be encoded")

	// ErrInvalidLength is returned when the encoded text length is not a multiple of
	// the element width.
	ErrInvalidLength = errors.New("flotsam: encoded length is not a multiple of the element width")

	// ErrInvalidChar is returned when the encoded text contains a byte outside [32, 125].
	ErrInvalidChar = errors.New("flotsam: character outside the encoding alphabet")

	// ErrFieldOverflow is returned when an element's digits describe a value that no
	// encoder can produce, e.g. a 64-bit mantissa wider than 52 bits.
	ErrFieldOverflow = errors.New("flotsam: encoded digits overflow the element bit field")
)

// InvalidValueError reports a value that has no flotsam encoding.
//
// Index is the position of the value within the encoded slice, or -1 when a single
// value was encoded on its own.
type InvalidValueError struct {
	Value float64
	Index int
}

func (e *InvalidValueError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("flotsam: cannot encode %v: NaN and infinity have no encoding", e.Value)
	}

	return fmt.Sprintf("flotsam: cannot encode %v at index %d: NaN and infinity have no encoding", e.Value, e.Index)
}

// Is makes errors.Is(err, ErrInvalidValue) hold for *InvalidValueError.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// InvalidCharError reports a byte outside the encoding alphabet.
type InvalidCharError struct {
	Offset int
	Char   byte
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("flotsam: invalid character %q (0x%02x) at offset %d", e.Char, e.Char, e.Offset)
}

// Unwrap returns ErrInvalidChar.
func (e *InvalidCharError) Unwrap() error {
	return ErrInvalidChar
}
