// Package endian selects the byte order used when flotsam values are exchanged as
// raw binary IEEE-754 data.
//
// The flotsam text format itself is defined over the in-memory bit pattern and has
// no byte order. This package only matters at the edges, e.g. when the CLI reads a
// binary float dump and converts it to text.
//
// # Basic Usage
//
//	engine, err := endian.Parse("big")
//	if err != nil {
//	    return err
//	}
//
//	values, err := endian.Float64s(engine, data)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() EndianEngine {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Parse returns the engine named by name: "little", "big" or "native"
// (case-insensitive). An empty name selects little-endian.
func Parse(name string) (EndianEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "little", "le":
		return GetLittleEndianEngine(), nil
	case "big", "be":
		return GetBigEndianEngine(), nil
	case "native":
		return CheckEndianness(), nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (want little, big or native)", name)
	}
}
