package encoding

import "iter"

// Alphabet bounds shared by both widths: a digit d is written as the byte 32+d.
const (
	digitBase  = 94
	charOffset = 32

	// MinChar is the smallest byte the encoders emit.
	MinChar = charOffset
	// MaxChar is the largest byte the encoders emit.
	MaxChar = charOffset + digitBase - 1
)

// TextEncoder accumulates fixed-width encoded elements of type T.
type TextEncoder[T float32 | float64] interface {
	// Write encodes a single value.
	//
	// NaN and infinite values are rejected with *InvalidValueError and nothing is written.
	Write(val T) error

	// WriteSlice encodes a slice of values.
	//
	// The slice is validated before any output is produced, so a rejected slice leaves
	// the encoder exactly as it was.
	WriteSlice(values []T) error

	// Bytes returns the encoded text accumulated so far.
	// The returned slice is valid until the next call to Write, WriteSlice, Reset or Finish.
	Bytes() []byte

	// String returns a copy of the encoded text accumulated so far.
	String() string

	// Len returns the number of encoded values.
	Len() int

	// Size returns the number of encoded characters.
	Size() int

	// Reset discards the accumulated text but keeps the buffer for reuse.
	Reset()

	// Finish returns buffer resources to the pool.
	//
	// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
	// Write(), WriteSlice(), Bytes(), String() or Size() will panic due to nil buffer.
	Finish()
}

// TextDecoder reads fixed-width encoded elements of type T.
type TextDecoder[T float32 | float64] interface {
	// All returns an iterator over every element of s.
	//
	// A trailing partial element is ignored. In strict mode the iterator stops at
	// the first malformed element, so it may yield fewer values than len(s)/width.
	All(s string) iter.Seq[T]

	// At decodes the element at the zero-based index.
	//
	// The second return value is false when the index is out of bounds, or, in
	// strict mode, when the element is malformed.
	At(s string, index int) (T, bool)

	// Decode decodes all elements of s, validating the text.
	Decode(s string) ([]T, error)
}

// checkAlphabet reports the first byte of w outside [MinChar, MaxChar].
// offset is the position of w within the full encoded text.
func checkAlphabet(w string, offset int) error {
	for i := 0; i < len(w); i++ {
		if c := w[i]; c < MinChar || c > MaxChar {
			return &InvalidCharError{Offset: offset + i, Char: c}
		}
	}

	return nil
}
