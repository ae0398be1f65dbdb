package endian

import (
	"fmt"
	"math"
)

// AppendFloat64s appends the IEEE-754 bytes of values to dst in engine's byte order.
func AppendFloat64s(engine EndianEngine, dst []byte, values []float64) []byte {
	for _, v := range values {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// Float64s reinterprets data as consecutive 8-byte IEEE-754 values.
func Float64s(engine EndianEngine, data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("raw float64 data length %d is not a multiple of 8", len(data))
	}

	values := make([]float64, len(data)/8)
	for i := range values {
		values[i] = math.Float64frombits(engine.Uint64(data[i*8:]))
	}

	return values, nil
}

// AppendFloat32s appends the IEEE-754 bytes of values to dst in engine's byte order.
func AppendFloat32s(engine EndianEngine, dst []byte, values []float32) []byte {
	for _, v := range values {
		dst = engine.AppendUint32(dst, math.Float32bits(v))
	}

	return dst
}

// Float32s reinterprets data as consecutive 4-byte IEEE-754 values.
func Float32s(engine EndianEngine, data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("raw float32 data length %d is not a multiple of 4", len(data))
	}

	values := make([]float32, len(data)/4)
	for i := range values {
		values[i] = math.Float32frombits(engine.Uint32(data[i*4:]))
	}

	return values, nil
}
