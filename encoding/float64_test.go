package encoding

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeFloat64s_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"one", 1.0, "/_        "},
		{"half", 0.5, "/^        "},
		{"two", 2.0, "0         "},
		{"positive zero", 0.0, "          "},
		{"negative zero", math.Copysign(0, -1), "@         "},
		{"smallest subnormal", math.SmallestNonzeroFloat64, "  !       "},
		{"max float64", math.MaxFloat64, "?^_|,1_1Je"},
		{"pi", math.Pi, `0 jMb |8\G`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeFloat64s([]float64{tt.value})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			decoded := DecodeFloat64At(got, 0)
			require.Equal(t, math.Float64bits(tt.value), math.Float64bits(decoded))
		})
	}
}

func TestEncodeFloat64s_MultiElement(t *testing.T) {
	text, err := EncodeFloat64s([]float64{1.0, 2.0})
	require.NoError(t, err)
	require.Len(t, text, 20)

	values, err := DecodeFloat64s(text)
	require.NoError(t, err)
	require.Equal(t, []float64{1.0, 2.0}, values)

	second, err := EncodeFloat64s([]float64{2.0})
	require.NoError(t, err)
	require.Equal(t, second, text[10:20])
	require.Equal(t, 2.0, DecodeFloat64At(text, 1))
}

func TestEncodeFloat64s_Empty(t *testing.T) {
	text, err := EncodeFloat64s(nil)
	require.NoError(t, err)
	require.Empty(t, text)

	values, err := DecodeFloat64s("")
	require.NoError(t, err)
	require.Empty(t, values)
}

func TestEncodeFloat64s_RejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		text, err := EncodeFloat64s([]float64{1.0, 2.0, bad, 3.0})
		require.Error(t, err)
		require.Empty(t, text, "no partial output")
		require.ErrorIs(t, err, ErrInvalidValue)

		var ive *InvalidValueError
		require.True(t, errors.As(err, &ive))
		require.Equal(t, 2, ive.Index)
	}
}

func TestAppendFloat64(t *testing.T) {
	dst := []byte("prefix:")

	dst, err := AppendFloat64(dst, 1.0)
	require.NoError(t, err)
	require.Equal(t, "prefix:/_        ", string(dst))

	before := len(dst)
	dst, err = AppendFloat64(dst, math.NaN())
	require.ErrorIs(t, err, ErrInvalidValue)
	require.Len(t, dst, before)

	var ive *InvalidValueError
	require.ErrorAs(t, err, &ive)
	require.Equal(t, -1, ive.Index)
}

func TestFloat64_RoundTrip_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	values := make([]float64, 0, 10000)
	for len(values) < cap(values) {
		v := math.Float64frombits(rng.Uint64())
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}

	text, err := EncodeFloat64s(values)
	require.NoError(t, err)
	require.Len(t, text, len(values)*CharsPerFloat64)

	for i := 0; i < len(text); i++ {
		require.GreaterOrEqual(t, text[i], byte(MinChar))
		require.LessOrEqual(t, text[i], byte(MaxChar))
	}

	decoded, err := DecodeFloat64s(text)
	require.NoError(t, err)
	require.Len(t, decoded, len(values))

	for i, v := range values {
		require.Equal(t, math.Float64bits(v), math.Float64bits(decoded[i]), "index %d", i)
		require.Equal(t, math.Float64bits(v), math.Float64bits(DecodeFloat64At(text, i)), "index %d", i)
	}
}

func TestFloat64_RoundTrip_Boundaries(t *testing.T) {
	values := []float64{
		0, math.Copysign(0, -1),
		math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64,
		math.Float64frombits(0x000FFFFFFFFFFFFF), // largest subnormal
		math.Float64frombits(0x0010000000000000), // smallest normal
		math.MaxFloat64, -math.MaxFloat64,
		1, -1, math.E, -math.Pi, 1e-300, 1e300,
	}

	text, err := EncodeFloat64s(values)
	require.NoError(t, err)

	decoded, err := DecodeFloat64s(text)
	require.NoError(t, err)
	for i, v := range values {
		require.Equal(t, math.Float64bits(v), math.Float64bits(decoded[i]), "index %d", i)
	}
}

func TestDecodeFloat64s_Validation(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"short", "/_       ", ErrInvalidLength},
		{"one extra char", "/_         ", ErrInvalidLength},
		{"control char", "/_\x00       ", ErrInvalidChar},
		{"tilde", "/_       ~", ErrInvalidChar},
		{"high byte", "/_  \xff     ", ErrInvalidChar},
		{"exponent digit too large", "/`        ", ErrFieldOverflow},
		{"sign digit too large", "`_        ", ErrFieldOverflow},
		{"mantissa overflow", "/_}}}}}}}}", ErrFieldOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := DecodeFloat64s(tt.text)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, values)
		})
	}
}

func TestDecodeFloat64s_InvalidCharOffset(t *testing.T) {
	text := "/_        " + "/_   \x7f    "

	_, err := DecodeFloat64s(text)

	var ice *InvalidCharError
	require.ErrorAs(t, err, &ice)
	require.Equal(t, 15, ice.Offset)
	require.Equal(t, byte(0x7f), ice.Char)
}

func TestDecodeFloat64At_Permissive(t *testing.T) {
	// Malformed text decodes to something without panicking.
	require.NotPanics(t, func() {
		_ = DecodeFloat64At("\x00\xff\x01\x80~~~~~~", 0)
	})

	require.Panics(t, func() {
		_ = DecodeFloat64At("/_        ", 1)
	})
}

func TestDecodeFloat64At_ConcurrentReaders(t *testing.T) {
	values := []float64{1.5, -2.25, math.Pi, 0}
	text, err := EncodeFloat64s(values)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan int, 64)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				for i, v := range values {
					if DecodeFloat64At(text, i) != v {
						errs <- i
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	require.Empty(t, errs)
}

func TestFloat64Encoder(t *testing.T) {
	enc, err := NewFloat64Encoder(WithCapacity(4))
	require.NoError(t, err)
	defer enc.Finish()

	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())

	require.NoError(t, enc.Write(1.0))
	require.NoError(t, enc.WriteSlice([]float64{2.0, 0.5}))

	require.Equal(t, 3, enc.Len())
	require.Equal(t, 3*CharsPerFloat64, enc.Size())
	require.Equal(t, "/_        0         /^        ", enc.String())

	want, err := EncodeFloat64s([]float64{1.0, 2.0, 0.5})
	require.NoError(t, err)
	require.Equal(t, want, string(enc.Bytes()))

	var sb strings.Builder
	n, err := enc.WriteTo(&sb)
	require.NoError(t, err)
	require.Equal(t, int64(30), n)
	require.Equal(t, want, sb.String())
}

func TestFloat64Encoder_RejectsWithoutPartialOutput(t *testing.T) {
	enc, err := NewFloat64Encoder()
	require.NoError(t, err)
	defer enc.Finish()

	require.NoError(t, enc.Write(1.0))

	err = enc.WriteSlice([]float64{2.0, math.Inf(-1)})
	var ive *InvalidValueError
	require.ErrorAs(t, err, &ive)
	require.Equal(t, 2, ive.Index)
	require.Equal(t, 1, enc.Len())
	require.Equal(t, "/_        ", enc.String())

	err = enc.Write(math.NaN())
	require.ErrorIs(t, err, ErrInvalidValue)
	require.Equal(t, 1, enc.Len())
}

func TestFloat64Encoder_ResetAndFinish(t *testing.T) {
	enc, err := NewFloat64Encoder()
	require.NoError(t, err)

	require.NoError(t, enc.WriteSlice([]float64{1, 2, 3}))
	enc.Reset()
	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())

	require.NoError(t, enc.Write(2.0))
	require.Equal(t, "0         ", enc.String())

	enc.Finish()
	require.Equal(t, 0, enc.Len())
	require.Panics(t, func() { _ = enc.Write(1.0) })
	require.Panics(t, func() { _ = enc.Bytes() })
	require.Panics(t, func() { _ = enc.Size() })

	// Finish is idempotent.
	require.NotPanics(t, enc.Finish)
}

func TestFloat64Encoder_InvalidCapacity(t *testing.T) {
	enc, err := NewFloat64Encoder(WithCapacity(-1))
	require.Error(t, err)
	require.Nil(t, enc)
}

func TestFloat64Encoder_ZeroAllocations(t *testing.T) {
	enc, err := NewFloat64Encoder(WithCapacity(8))
	require.NoError(t, err)
	defer enc.Finish()

	values := []float64{1.0, 2.0, 3.0, 4.0, 5.0}
	require.NoError(t, enc.WriteSlice(values))

	allocs := testing.AllocsPerRun(1000, func() {
		enc.Reset()
		_ = enc.WriteSlice(values)
		_ = enc.Bytes()
	})

	require.Equal(t, float64(0), allocs, "WriteSlice should not allocate once the buffer is sized")
}

func TestFloat64Decoder(t *testing.T) {
	values := []float64{1.0, -2.5, math.MaxFloat64}
	text, err := EncodeFloat64s(values)
	require.NoError(t, err)

	for _, strict := range []bool{false, true} {
		dec, err := NewFloat64Decoder(WithStrict(strict))
		require.NoError(t, err)

		var got []float64
		for v := range dec.All(text) {
			got = append(got, v)
		}
		require.Equal(t, values, got)

		v, ok := dec.At(text, 1)
		require.True(t, ok)
		require.Equal(t, -2.5, v)

		_, ok = dec.At(text, 3)
		require.False(t, ok)
		_, ok = dec.At(text, -1)
		require.False(t, ok)

		decoded, err := dec.Decode(text)
		require.NoError(t, err)
		require.Equal(t, values, decoded)
	}
}

func TestFloat64Decoder_AllStopsEarly(t *testing.T) {
	text, err := EncodeFloat64s([]float64{1, 2, 3, 4})
	require.NoError(t, err)

	dec, err := NewFloat64Decoder()
	require.NoError(t, err)

	var got []float64
	for v := range dec.All(text) {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []float64{1, 2}, got)
}

func TestFloat64Decoder_Strict(t *testing.T) {
	good, err := EncodeFloat64s([]float64{1.0})
	require.NoError(t, err)

	// "?_" followed by a zero mantissa is the bit pattern of +Inf.
	infinity := "?_        "
	require.True(t, math.IsInf(DecodeFloat64At(infinity, 0), 1))

	strict, err := NewFloat64Decoder(WithStrict(true))
	require.NoError(t, err)
	lenient, err := NewFloat64Decoder()
	require.NoError(t, err)

	_, ok := strict.At(good+infinity, 1)
	require.False(t, ok)
	v, ok := lenient.At(good+infinity, 1)
	require.True(t, ok)
	require.True(t, math.IsInf(v, 1))

	var got []float64
	for v := range strict.All(good + infinity + good) {
		got = append(got, v)
	}
	require.Equal(t, []float64{1.0}, got)

	_, err = strict.Decode(good + infinity)
	require.ErrorIs(t, err, ErrInvalidValue)

	decoded, err := lenient.Decode(good + infinity)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	_, ok = strict.At("/_       ~", 0)
	require.False(t, ok)
}
