// Package encoding implements the flotsam fixed-width text codecs for float64 and
// float32 arrays.
//
// Every element is written as a fixed number of characters from the 94-symbol
// printable alphabet [32, 125], so encoded arrays can be embedded in JSON strings,
// log lines or URLs without escaping, and decode back to the exact original bits
// (including the sign of zero and subnormals).
//
// # Layout
//
// float64, 10 characters per element:
//
//	char 0     32 + bits[58:63]
//	char 1     32 + bits[52:57]
//	char 2..9  base-94 digits of bits[0:51], least significant first
//
// float32, 5 characters per element:
//
//	char 0..4  base-94 digits of bits[0:31], least significant first
//
// Elements are concatenated without delimiters; the element count of a text is
// len(text) / CharsPerFloat64 (or CharsPerFloat32).
//
// # Basic Usage
//
//	text, err := encoding.EncodeFloat64s([]float64{1.0, 2.0, math.Pi})
//	if err != nil {
//	    // a value was NaN or infinite
//	}
//
//	values, err := encoding.DecodeFloat64s(text)
//
//	// random access, no validation
//	second := encoding.DecodeFloat64At(text, 1)
//
// For incremental encoding use Float64Encoder / Float32Encoder, which append into a
// pooled buffer:
//
//	enc, _ := encoding.NewFloat64Encoder(encoding.WithCapacity(len(values)))
//	defer enc.Finish()
//
//	for _, v := range values {
//	    if err := enc.Write(v); err != nil {
//	        return err
//	    }
//	}
//	text := enc.String()
//
// # Validation
//
// NaN and infinity have no encoding; encoders return *InvalidValueError and write
// nothing for the rejected call.
//
// DecodeFloat64At and DecodeFloat32At perform no validation. DecodeFloat64s,
// DecodeFloat32s and the decoders' Decode methods check the text length, the
// alphabet, and that each element fits its bit layout. Decoders built with
// WithStrict(true) apply the same checks on All and At, and also refuse bit
// patterns that decode to NaN or infinity.
//
// # Thread Safety
//
// The digit lookup tables are filled during package initialization and never
// written again. All package-level functions and decoders are safe for concurrent
// use. Encoders are not.
package encoding
