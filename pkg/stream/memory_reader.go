package stream

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/ssargent/binstream/pkg/endian"
)

// MemoryReader provides the typed read surface over a byte slice.
//
// It is always open and never copies the data it was handed, so it is the
// natural reader for mapped files and for buffers produced by a
// MemoryWriter.
type MemoryReader struct {
	end   endian.Endianness
	order binary.ByteOrder
	data  []byte
	pos   int64
}

var _ Reader = (*MemoryReader)(nil)

// NewMemoryReader creates a reader positioned at the start of data. The
// reader aliases data rather than copying it.
func NewMemoryReader(data []byte, order endian.Endianness) *MemoryReader {
	return &MemoryReader{
		end:   order,
		order: order.ByteOrder(),
		data:  data,
	}
}

// ReadBytes returns the next n bytes and advances the cursor past them. The
// result is a view into the underlying data; callers that keep it beyond
// the data's lifetime must copy. Fails with ErrUnexpectedEnd, leaving the
// cursor in place, when fewer than n bytes remain.
func (m *MemoryReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative byte count %d", n)
	}

	end := m.pos + int64(n)
	if end > int64(len(m.data)) {
		return nil, errors.Wrapf(ErrUnexpectedEnd, "want %d bytes at offset %d, have %d", n, m.pos, m.Remaining())
	}

	p := m.data[m.pos:end]
	m.pos = end
	return p, nil
}

// ReadU8 reads one byte as an unsigned integer.
func (m *MemoryReader) ReadU8() (uint8, error) {
	p, err := m.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// ReadI8 reads one byte as a signed integer.
func (m *MemoryReader) ReadI8() (int8, error) {
	v, err := m.ReadU8()
	return int8(v), err
}

// ReadU16 reads two bytes as an unsigned integer in the stream's byte order.
func (m *MemoryReader) ReadU16() (uint16, error) {
	p, err := m.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return m.order.Uint16(p), nil
}

// ReadI16 reads two bytes as a signed integer in the stream's byte order.
func (m *MemoryReader) ReadI16() (int16, error) {
	v, err := m.ReadU16()
	return int16(v), err
}

// ReadU32 reads four bytes as an unsigned integer in the stream's byte order.
func (m *MemoryReader) ReadU32() (uint32, error) {
	p, err := m.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return m.order.Uint32(p), nil
}

// ReadI32 reads four bytes as a signed integer in the stream's byte order.
func (m *MemoryReader) ReadI32() (int32, error) {
	v, err := m.ReadU32()
	return int32(v), err
}

// ReadU64 reads eight bytes as an unsigned integer in the stream's byte
// order.
func (m *MemoryReader) ReadU64() (uint64, error) {
	p, err := m.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return m.order.Uint64(p), nil
}

// ReadI64 reads eight bytes as a signed integer in the stream's byte order.
func (m *MemoryReader) ReadI64() (int64, error) {
	v, err := m.ReadU64()
	return int64(v), err
}

// ReadUTF8String reads exactly n bytes and decodes them as UTF-8.
func (m *MemoryReader) ReadUTF8String(n int) (string, error) {
	p, err := m.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return decodeUTF8(p)
}

// ReadASCIIString reads exactly n bytes and decodes them as ASCII.
func (m *MemoryReader) ReadASCIIString(n int) (string, error) {
	p, err := m.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return decodeASCII(p)
}

// ReadUTF8StringNT reads up to and including the next byte equal to term
// and decodes the bytes before it as UTF-8. The terminator is consumed but
// excluded from the result.
func (m *MemoryReader) ReadUTF8StringNT(term byte) (string, error) {
	p, err := m.readUntil(term)
	if err != nil {
		return "", err
	}
	return decodeUTF8(p)
}

// ReadASCIIStringNT reads up to and including the next byte equal to term
// and decodes the bytes before it as ASCII. The terminator is consumed but
// excluded from the result.
func (m *MemoryReader) ReadASCIIStringNT(term byte) (string, error) {
	p, err := m.readUntil(term)
	if err != nil {
		return "", err
	}
	return decodeASCII(p)
}

// readUntil returns the bytes between the cursor and the next occurrence of
// term, leaving the cursor just past the terminator. When term never occurs
// it fails with ErrUnexpectedEnd and the cursor stays in place.
func (m *MemoryReader) readUntil(term byte) ([]byte, error) {
	if m.pos >= int64(len(m.data)) {
		return nil, errors.Wrapf(ErrUnexpectedEnd, "terminator 0x%02x not found before end of data", term)
	}

	idx := bytes.IndexByte(m.data[m.pos:], term)
	if idx < 0 {
		return nil, errors.Wrapf(ErrUnexpectedEnd, "terminator 0x%02x not found before end of data", term)
	}

	p := m.data[m.pos : m.pos+int64(idx)]
	m.pos += int64(idx) + 1
	return p, nil
}

// Seek moves the cursor to the absolute offset and returns it. Targets past
// the end are allowed; the next read there fails with ErrUnexpectedEnd.
// Negative targets fail with ErrInvalidArgument.
func (m *MemoryReader) Seek(offset int64) (int64, error) {
	if offset < 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "negative seek offset %d", offset)
	}
	m.pos = offset
	return offset, nil
}

// Offset returns the cursor position as a byte offset from the start of the
// data.
func (m *MemoryReader) Offset() int64 {
	return m.pos
}

// Skip moves the cursor n bytes forward, or backward when n is negative,
// and returns the resulting position.
func (m *MemoryReader) Skip(n int64) (int64, error) {
	return m.Seek(m.pos + n)
}

// Align moves the cursor forward to the next multiple of n and returns the
// resulting position.
func (m *MemoryReader) Align(n int64) (int64, error) {
	pad, err := alignment(m.pos, n)
	if err != nil {
		return 0, err
	}
	return m.Seek(m.pos + pad)
}

// Len returns the total size of the underlying data.
func (m *MemoryReader) Len() int {
	return len(m.data)
}

// Remaining returns the number of bytes between the cursor and the end of
// the data, or zero when the cursor sits at or past the end.
func (m *MemoryReader) Remaining() int64 {
	if m.pos >= int64(len(m.data)) {
		return 0
	}
	return int64(len(m.data)) - m.pos
}

// Endianness returns the byte order the reader was constructed with.
func (m *MemoryReader) Endianness() endian.Endianness {
	return m.end
}
