// Package flotsam encodes arrays of IEEE-754 floats as fixed-width printable ASCII.
//
// Every float64 becomes exactly 10 characters and every float32 exactly 5, all in
// the range [32, 125]. The text can be embedded verbatim in JSON strings, log lines
// or URLs, and decodes back to the original bit pattern, including the sign of
// zero. NaN and infinity have no encoding.
//
// # Basic Usage
//
//	import "github.com/arloliu/flotsam"
//
//	text, err := flotsam.Encode([]float64{1.0, 2.0, 3.0})
//	if err != nil {
//	    // a value was NaN or infinite
//	}
//
//	values, err := flotsam.Decode(text)
//
// Single precision works the same way with half the characters:
//
//	text, _ := flotsam.Encode32([]float32{1.0})   // "pZ]\-"
//	values, _ := flotsam.Decode32(text)
//
// Random access into an encoded array is constant time because every element has
// the same width:
//
//	third := flotsam.At(text, 2)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the encoding
// package. For incremental encoders, strict decoders and iterators, use the
// encoding package directly.
package flotsam

import (
	"github.com/arloliu/flotsam/encoding"
)

// Element widths in characters.
const (
	CharsPerFloat64 = encoding.CharsPerFloat64
	CharsPerFloat32 = encoding.CharsPerFloat32
)

// Error values, re-exported from the encoding package.
var (
	ErrInvalidValue  = encoding.ErrInvalidValue
	ErrInvalidLength = encoding.ErrInvalidLength
	ErrInvalidChar   = encoding.ErrInvalidChar
	ErrFieldOverflow = encoding.ErrFieldOverflow
)

// InvalidValueError reports a NaN or infinite value passed to an encoder.
type InvalidValueError = encoding.InvalidValueError

// InvalidCharError reports a byte outside the encoding alphabet.
type InvalidCharError = encoding.InvalidCharError

// Encode encodes float64 values, 10 characters each.
//
// Returns *InvalidValueError and an empty string if any value is NaN or infinite.
func Encode(values []float64) (string, error) {
	return encoding.EncodeFloat64s(values)
}

// Decode decodes text produced by Encode.
//
// The text is validated; see encoding.DecodeFloat64s for the possible errors.
func Decode(text string) ([]float64, error) {
	return encoding.DecodeFloat64s(text)
}

// At decodes the float64 element at index without validation.
// It panics if the element lies beyond the end of text.
func At(text string, index int) float64 {
	return encoding.DecodeFloat64At(text, index)
}

// Encode32 encodes float32 values, 5 characters each.
//
// Returns *InvalidValueError and an empty string if any value is NaN or infinite.
func Encode32(values []float32) (string, error) {
	return encoding.EncodeFloat32s(values)
}

// Decode32 decodes text produced by Encode32.
func Decode32(text string) ([]float32, error) {
	return encoding.DecodeFloat32s(text)
}

// At32 decodes the float32 element at index without validation.
// It panics if the element lies beyond the end of text.
func At32(text string, index int) float32 {
	return encoding.DecodeFloat32At(text, index)
}

// NewEncoder creates an incremental float64 encoder. Call Finish when done.
func NewEncoder(opts ...encoding.EncoderOption) (*encoding.Float64Encoder, error) {
	return encoding.NewFloat64Encoder(opts...)
}

// NewEncoder32 creates an incremental float32 encoder. Call Finish when done.
func NewEncoder32(opts ...encoding.EncoderOption) (*encoding.Float32Encoder, error) {
	return encoding.NewFloat32Encoder(opts...)
}

// NewDecoder creates a float64 decoder.
//
// Example:
//
//	dec, _ := flotsam.NewDecoder(encoding.WithStrict(true))
//	for v := range dec.All(text) {
//	    // ...
//	}
func NewDecoder(opts ...encoding.DecoderOption) (encoding.Float64Decoder, error) {
	return encoding.NewFloat64Decoder(opts...)
}

// NewDecoder32 creates a float32 decoder.
func NewDecoder32(opts ...encoding.DecoderOption) (encoding.Float32Decoder, error) {
	return encoding.NewFloat32Decoder(opts...)
}
