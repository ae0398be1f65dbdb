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

// CharsPerFloat32 is the number of characters emitted per float32 value.
const CharsPerFloat32 = 5

// float32DecodeTable maps (digit position, character) to the value that character
// contributes at that position. The entries are 64-bit so an over-long digit sum
// can be detected instead of silently wrapping.
var float32DecodeTable [CharsPerFloat32][256]uint64

func init() {
	base := uint64(1)
	for pos := range CharsPerFloat32 {
		for d := range uint64(digitBase) {
			float32DecodeTable[pos][charOffset+d] = d * base
		}
		base *= digitBase
	}
}

// AppendFloat32 appends the 5-character encoding of val to dst and returns the
// extended slice.
//
// The whole 32-bit pattern is written as five base-94 digits, least significant
// first. Unlike the float64 layout there is no sign/exponent split: 94^5 > 2^32
// already, and splitting would cost a sixth character.
//
// NaN and infinite values return *InvalidValueError and dst unchanged.
func AppendFloat32(dst []byte, val float32) ([]byte, error) {
	if isNonFinite32(val) {
		return dst, &InvalidValueError{Value: float64(val), Index: -1}
	}

	return appendFloat32Bits(dst, math.Float32bits(val)), nil
}

func appendFloat32Bits(dst []byte, bits uint32) []byte {
	for range CharsPerFloat32 {
		dst = append(dst, byte(charOffset+bits%digitBase))
		bits /= digitBase
	}

	return dst
}

// EncodeFloat32s encodes values into a string of exactly len(values)*CharsPerFloat32
// characters in [MinChar, MaxChar].
//
// The first NaN or infinite value aborts the call with *InvalidValueError carrying its
// index, and no partial output is returned.
func EncodeFloat32s(values []float32) (string, error) {
	if len(values) == 0 {
		return "", nil
	}

	buf := make([]byte, 0, len(values)*CharsPerFloat32)
	for i, v := range values {
		if isNonFinite32(v) {
			return "", &InvalidValueError{Value: float64(v), Index: i}
		}
		buf = appendFloat32Bits(buf, math.Float32bits(v))
	}

	return unsafe.String(unsafe.SliceData(buf), len(buf)), nil
}

// DecodeFloat32At decodes the element at the zero-based index of s without any
// validation.
//
// Text that was not produced by an encoder decodes to an unspecified value, and an
// index whose window extends past the end of s panics like an out-of-range slice
// expression.
func DecodeFloat32At(s string, index int) float32 {
	offset := index * CharsPerFloat32
	return math.Float32frombits(uint32(float32WindowSum(s[offset : offset+CharsPerFloat32])))
}

// DecodeFloat32s decodes every element of s.
//
// The length must be a multiple of CharsPerFloat32 (ErrInvalidLength), every byte
// must be in the alphabet (*InvalidCharError) and no element may exceed 32 bits
// (ErrFieldOverflow).
func DecodeFloat32s(s string) ([]float32, error) {
	if len(s)%CharsPerFloat32 != 0 {
		return nil, fmt.Errorf("%w: %d is not a multiple of %d", ErrInvalidLength, len(s), CharsPerFloat32)
	}

	values := make([]float32, len(s)/CharsPerFloat32)
	for i := range values {
		bits, err := checkedFloat32Bits(s, i)
		if err != nil {
			return nil, err
		}
		values[i] = math.Float32frombits(bits)
	}

	return values, nil
}

func float32WindowSum(w string) uint64 {
	_ = w[CharsPerFloat32-1]

	var sum uint64
	for pos := range CharsPerFloat32 {
		sum += float32DecodeTable[pos][w[pos]]
	}

	return sum
}

func checkedFloat32Bits(s string, index int) (uint32, error) {
	offset := index * CharsPerFloat32
	w := s[offset : offset+CharsPerFloat32]

	if err := checkAlphabet(w, offset); err != nil {
		return 0, err
	}

	sum := float32WindowSum(w)
	if sum > math.MaxUint32 {
		return 0, fmt.Errorf("%w: element %d exceeds 32 bits", ErrFieldOverflow, index)
	}

	return uint32(sum), nil
}

func isNonFinite32(v float32) bool {
	// Exponent field all ones: infinity or NaN.
	return math.Float32bits(v)&0x7F800000 == 0x7F800000
}

// Float32Encoder accumulates the text encoding of float32 values in a pooled buffer.
type Float32Encoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ TextEncoder[float32] = (*Float32Encoder)(nil)

// NewFloat32Encoder creates a new encoder backed by a buffer from the text pool.
func NewFloat32Encoder(opts ...EncoderOption) (*Float32Encoder, error) {
	var cfg EncoderConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	e := &Float32Encoder{buf: pool.GetTextBuffer()}
	e.buf.Grow(cfg.capacity * CharsPerFloat32)

	return e, nil
}

// Write encodes a single value.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float32Encoder) Write(val float32) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if isNonFinite32(val) {
		return &InvalidValueError{Value: float64(val), Index: e.count}
	}

	e.buf.Grow(CharsPerFloat32)
	e.buf.B = appendFloat32Bits(e.buf.B, math.Float32bits(val))
	e.count++

	return nil
}

// WriteSlice encodes a slice of values, writing nothing if any value is rejected.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float32Encoder) WriteSlice(values []float32) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	for i, v := range values {
		if isNonFinite32(v) {
			return &InvalidValueError{Value: float64(v), Index: e.count + i}
		}
	}

	e.buf.Grow(len(values) * CharsPerFloat32)
	for _, v := range values {
		e.buf.B = appendFloat32Bits(e.buf.B, math.Float32bits(v))
	}
	e.count += len(values)

	return nil
}

// Bytes returns the encoded text written so far. See Float64Encoder.Bytes.
func (e *Float32Encoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// String returns a copy of the encoded text written so far.
func (e *Float32Encoder) String() string {
	return string(e.Bytes())
}

// WriteTo writes the encoded text to w.
func (e *Float32Encoder) WriteTo(w io.Writer) (int64, error) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	return e.buf.WriteTo(w)
}

// Len returns the number of encoded values.
func (e *Float32Encoder) Len() int {
	return e.count
}

// Size returns the number of encoded characters.
func (e *Float32Encoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset discards the encoded text and keeps the buffer for reuse.
func (e *Float32Encoder) Reset() {
	if e.buf != nil {
		e.buf.Reset()
	}
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *Float32Encoder) Finish() {
	if e.buf != nil {
		pool.PutTextBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// Float32Decoder decodes text produced by Float32Encoder or EncodeFloat32s.
type Float32Decoder struct {
	strict bool
}

var _ TextDecoder[float32] = Float32Decoder{}

// NewFloat32Decoder creates a new decoder.
func NewFloat32Decoder(opts ...DecoderOption) (Float32Decoder, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return Float32Decoder{}, err
	}

	return Float32Decoder{strict: cfg.strict}, nil
}

// All returns an iterator over the values encoded in s.
func (d Float32Decoder) All(s string) iter.Seq[float32] {
	return func(yield func(float32) bool) {
		for i := range len(s) / CharsPerFloat32 {
			val, ok := d.at(s, i)
			if !ok || !yield(val) {
				return
			}
		}
	}
}

// At decodes the value at the zero-based index.
func (d Float32Decoder) At(s string, index int) (float32, bool) {
	if index < 0 || index >= len(s)/CharsPerFloat32 {
		return 0, false
	}

	return d.at(s, index)
}

// Decode decodes all values in s, rejecting NaN and infinity in strict mode.
func (d Float32Decoder) Decode(s string) ([]float32, error) {
	values, err := DecodeFloat32s(s)
	if err != nil || !d.strict {
		return values, err
	}

	for i, v := range values {
		if isNonFinite32(v) {
			return nil, fmt.Errorf("%w: element %d decodes to %v", ErrInvalidValue, i, v)
		}
	}

	return values, nil
}

func (d Float32Decoder) at(s string, index int) (float32, bool) {
	if !d.strict {
		return DecodeFloat32At(s, index), true
	}

	bits, err := checkedFloat32Bits(s, index)
	if err != nil {
		return 0, false
	}

	val := math.Float32frombits(bits)
	if isNonFinite32(val) {
		return 0, false
	}

	return val, true
}
