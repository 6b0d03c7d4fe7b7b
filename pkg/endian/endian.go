// Package endian names the two byte orders binstream can serialize with and
// maps each one onto its encoding/binary codec.
package endian

import "encoding/binary"

// Endianness selects the byte order applied to every multi-byte value moved
// through a reader or writer. It is fixed at construction time; a stream
// never changes order mid-flight.
type Endianness int

const (
	// Little orders the least-significant byte first. It is the zero value,
	// so an unspecified Endianness behaves as little-endian.
	Little Endianness = iota

	// Big orders the most-significant byte first.
	Big
)

// ByteOrder returns the encoding/binary codec for e. Every value other than
// Big resolves to binary.LittleEndian.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// String returns a short lowercase name for diagnostics and log fields.
func (e Endianness) String() string {
	if e == Big {
		return "big"
	}
	return "little"
}
