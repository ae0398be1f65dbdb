package encoding

import (
	"fmt"
	"io"
	"iter"
	"math"
	"unsafe"

	"github.com/arloliu/flotsam/internal/options"
	"github.com/arloliu/flotsam/internal/pool"
)

// CharsPerFloat64 is the number of characters emitted per float64 value.
const CharsPerFloat64 = 10

const (
	float64MantissaDigits = 8
	float64MantissaMask   = 1<<52 - 1
	float64FieldMask      = 0x3F
)

// float64DecodeTable maps (mantissa digit position, character) to the value that
// character contributes at that position. Bytes outside the alphabet map to zero.
var float64DecodeTable [float64MantissaDigits][256]uint64

func init() {
	base := uint64(1)
	for pos := range float64MantissaDigits {
		for d := range uint64(digitBase) {
			float64DecodeTable[pos][charOffset+d] = d * base
		}
		base *= digitBase
	}
}

// AppendFloat64 appends the 10-character encoding of val to dst and returns the
// extended slice.
//
// Layout: the first two characters carry the sign and exponent as two 6-bit fields
// (bits 58-63, then bits 52-57), the remaining eight carry the 52-bit mantissa as
// base-94 digits, least significant first. 94^8 > 2^52, so eight digits never overflow.
//
// NaN and infinite values return *InvalidValueError and dst unchanged.
func AppendFloat64(dst []byte, val float64) ([]byte, error) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return dst, &InvalidValueError{Value: val, Index: -1}
	}

	return appendFloat64Bits(dst, math.Float64bits(val)), nil
}

func appendFloat64Bits(dst []byte, bits uint64) []byte {
	dst = append(dst,
		byte(charOffset+bits>>58),
		byte(charOffset+bits>>52&float64FieldMask),
	)

	mantissa := bits & float64MantissaMask
	for range float64MantissaDigits {
		dst = append(dst, byte(charOffset+mantissa%digitBase))
		mantissa /= digitBase
	}

	return dst
}

// EncodeFloat64s encodes values into a string of exactly len(values)*CharsPerFloat64
// characters in [MinChar, MaxChar].
//
// The first NaN or infinite value aborts the call with *InvalidValueError carrying its
// index, and no partial output is returned.
func EncodeFloat64s(values []float64) (string, error) {
	if len(values) == 0 {
		return "", nil
	}

	buf := make([]byte, 0, len(values)*CharsPerFloat64)
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", &InvalidValueError{Value: v, Index: i}
		}
		buf = appendFloat64Bits(buf, math.Float64bits(v))
	}

	// buf is never touched again, so the string can share its memory.
	return unsafe.String(unsafe.SliceData(buf), len(buf)), nil
}

// DecodeFloat64At decodes the element at the zero-based index of s without any
// validation.
//
// This is the fast random-access path. Text that was not produced by an encoder
// decodes to an unspecified value, and an index whose window extends past the end
// of s panics like an out-of-range slice expression.
func DecodeFloat64At(s string, index int) float64 {
	offset := index * CharsPerFloat64
	return math.Float64frombits(float64WindowBits(s[offset : offset+CharsPerFloat64]))
}

// DecodeFloat64s decodes every element of s.
//
// Unlike DecodeFloat64At, the text is validated: the length must be a multiple of
// CharsPerFloat64 (ErrInvalidLength), every byte must be in the alphabet
// (*InvalidCharError) and every element must fit the 64-bit layout (ErrFieldOverflow).
func DecodeFloat64s(s string) ([]float64, error) {
	if len(s)%CharsPerFloat64 != 0 {
		return nil, fmt.Errorf("%w: %d is not a multiple of %d", ErrInvalidLength, len(s), CharsPerFloat64)
	}

	values := make([]float64, len(s)/CharsPerFloat64)
	for i := range values {
		bits, err := checkedFloat64Bits(s, i)
		if err != nil {
			return nil, err
		}
		values[i] = math.Float64frombits(bits)
	}

	return values, nil
}

// float64WindowBits rebuilds the bit pattern of one 10-character window.
func float64WindowBits(w string) uint64 {
	_ = w[CharsPerFloat64-1]

	var bits uint64
	for pos := range float64MantissaDigits {
		bits += float64DecodeTable[pos][w[pos+2]]
	}

	return bits | uint64(w[0]-charOffset)<<58 | uint64(w[1]-charOffset)<<52
}

// checkedFloat64Bits validates and decodes the element at index.
func checkedFloat64Bits(s string, index int) (uint64, error) {
	offset := index * CharsPerFloat64
	w := s[offset : offset+CharsPerFloat64]

	if err := checkAlphabet(w, offset); err != nil {
		return 0, err
	}

	if w[0]-charOffset > float64FieldMask || w[1]-charOffset > float64FieldMask {
		return 0, fmt.Errorf("%w: sign/exponent digits %q at element %d", ErrFieldOverflow, w[:2], index)
	}

	var mantissa uint64
	for pos := range float64MantissaDigits {
		mantissa += float64DecodeTable[pos][w[pos+2]]
	}
	if mantissa > float64MantissaMask {
		return 0, fmt.Errorf("%w: mantissa of element %d exceeds 52 bits", ErrFieldOverflow, index)
	}

	return mantissa | uint64(w[0]-charOffset)<<58 | uint64(w[1]-charOffset)<<52, nil
}

// Float64Encoder accumulates the text encoding of float64 values in a pooled buffer.
type Float64Encoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ TextEncoder[float64] = (*Float64Encoder)(nil)

// NewFloat64Encoder creates a new encoder backed by a buffer from the text pool.
//
// Call Finish when done to return the buffer to the pool.
func NewFloat64Encoder(opts ...EncoderOption) (*Float64Encoder, error) {
	var cfg EncoderConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	e := &Float64Encoder{buf: pool.GetTextBuffer()}
	e.buf.Grow(cfg.capacity * CharsPerFloat64)

	return e, nil
}

// Write encodes a single value.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float64Encoder) Write(val float64) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if math.IsNaN(val) || math.IsInf(val, 0) {
		return &InvalidValueError{Value: val, Index: e.count}
	}

	e.buf.Grow(CharsPerFloat64)
	e.buf.B = appendFloat64Bits(e.buf.B, math.Float64bits(val))
	e.count++

	return nil
}

// WriteSlice encodes a slice of values.
//
// All values are checked first; on error nothing is written and the returned
// *InvalidValueError carries the index the value would have had in the encoder.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float64Encoder) WriteSlice(values []float64) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidValueError{Value: v, Index: e.count + i}
		}
	}

	e.buf.Grow(len(values) * CharsPerFloat64)
	for _, v := range values {
		e.buf.B = appendFloat64Bits(e.buf.B, math.Float64bits(v))
	}
	e.count += len(values)

	return nil
}

// Bytes returns the encoded text written so far.
//
// The returned slice references the internal buffer and is only valid until the
// next call to Write, WriteSlice, Reset or Finish.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float64Encoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// String returns a copy of the encoded text written so far.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float64Encoder) String() string {
	return string(e.Bytes())
}

// WriteTo writes the encoded text to w.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float64Encoder) WriteTo(w io.Writer) (int64, error) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	return e.buf.WriteTo(w)
}

// Len returns the number of encoded values.
func (e *Float64Encoder) Len() int {
	return e.count
}

// Size returns the number of encoded characters, always Len()*CharsPerFloat64.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float64Encoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset discards the encoded text and keeps the buffer for reuse.
func (e *Float64Encoder) Reset() {
	if e.buf != nil {
		e.buf.Reset()
	}
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *Float64Encoder) Finish() {
	if e.buf != nil {
		pool.PutTextBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// Float64Decoder decodes text produced by Float64Encoder or EncodeFloat64s.
//
// The decoder is immutable and safe for concurrent use.
type Float64Decoder struct {
	strict bool
}

var _ TextDecoder[float64] = Float64Decoder{}

// NewFloat64Decoder creates a new decoder.
func NewFloat64Decoder(opts ...DecoderOption) (Float64Decoder, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return Float64Decoder{}, err
	}

	return Float64Decoder{strict: cfg.strict}, nil
}

// All returns an iterator over the values encoded in s.
func (d Float64Decoder) All(s string) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := range len(s) / CharsPerFloat64 {
			val, ok := d.at(s, i)
			if !ok || !yield(val) {
				return
			}
		}
	}
}

// At decodes the value at the zero-based index.
//
// Returns false if the index is out of bounds, or if a strict decoder finds the
// element malformed.
func (d Float64Decoder) At(s string, index int) (float64, bool) {
	if index < 0 || index >= len(s)/CharsPerFloat64 {
		return 0, false
	}

	return d.at(s, index)
}

// Decode decodes all values in s.
//
// The text is always validated as in DecodeFloat64s; a strict decoder additionally
// rejects elements that decode to NaN or infinity.
func (d Float64Decoder) Decode(s string) ([]float64, error) {
	values, err := DecodeFloat64s(s)
	if err != nil || !d.strict {
		return values, err
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: element %d decodes to %v", ErrInvalidValue, i, v)
		}
	}

	return values, nil
}

func (d Float64Decoder) at(s string, index int) (float64, bool) {
	if !d.strict {
		return DecodeFloat64At(s, index), true
	}

	bits, err := checkedFloat64Bits(s, index)
	if err != nil {
		return 0, false
	}

	val := math.Float64frombits(bits)
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}

	return val, true
}
