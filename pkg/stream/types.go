package stream

import (
	"github.com/pkg/errors"

	"github.com/ssargent/binstream/pkg/endian"
)

// Reader is the typed read surface shared by the file-backed and
// memory-backed streams. Multi-byte integers are decoded with the byte
// order the stream was constructed with; signed variants reinterpret the
// same bits as two's complement.
type Reader interface {
	ReadBytes(n int) ([]byte, error)

	ReadU8() (uint8, error)
	ReadI8() (int8, error)
	ReadU16() (uint16, error)
	ReadI16() (int16, error)
	ReadU32() (uint32, error)
	ReadI32() (int32, error)
	ReadU64() (uint64, error)
	ReadI64() (int64, error)

	ReadUTF8String(n int) (string, error)
	ReadASCIIString(n int) (string, error)
	ReadUTF8StringNT(term byte) (string, error)
	ReadASCIIStringNT(term byte) (string, error)

	Seek(offset int64) (int64, error)
	Offset() int64
	Skip(n int64) (int64, error)
	Align(n int64) (int64, error)

	Endianness() endian.Endianness
}

// Writer is the typed write surface shared by the file-backed and
// memory-backed streams. Write makes every stream usable as an io.Writer;
// the typed methods serialize fixed-width integers in the stream's byte
// order.
type Writer interface {
	Write(p []byte) (int, error)

	WriteU8(v uint8) error
	WriteI8(v int8) error
	WriteU16(v uint16) error
	WriteI16(v int16) error
	WriteU32(v uint32) error
	WriteI32(v int32) error
	WriteU64(v uint64) error
	WriteI64(v int64) error

	WriteUTF8String(s string) (int, error)
	WriteASCIIString(s string) (int, error)
	WriteUTF8StringNT(s string, term byte) (int, error)
	WriteASCIIStringNT(s string, term byte) (int, error)

	Seek(offset int64) (int64, error)
	Offset() int64
	Skip(n int64) (int64, error)
	Align(n int64) (int64, error)

	Endianness() endian.Endianness
}

// NullTerminator is the conventional terminator byte for the *StringNT
// operations.
const NullTerminator byte = 0x00

// alignment returns how many bytes forward a cursor at off must move to
// land on the next multiple of n. A cursor already on a multiple moves
// zero bytes.
func alignment(off, n int64) (int64, error) {
	if n <= 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "alignment boundary must be positive, got %d", n)
	}
	return (n - off%n) % n, nil
}
