package stream

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/ssargent/binstream/pkg/endian"
)

// FileReader provides sequential typed reads over the bytes of a file.
//
// A FileReader starts closed: construction records the path and byte order
// but touches nothing on disk until Open. Reads go through a buffered
// reader while an internal cursor tracks the logical position, so Offset
// is exact regardless of read-ahead.
type FileReader struct {
	path   string
	end    endian.Endianness
	order  binary.ByteOrder
	file   *os.File
	reader *bufio.Reader
	offset int64
}

var _ Reader = (*FileReader)(nil)

// NewFileReader creates a reader for the file at path. Open must be called
// before the first read.
func NewFileReader(path string, order endian.Endianness) *FileReader {
	return &FileReader{
		path:  path,
		end:   order,
		order: order.ByteOrder(),
	}
}

// Open acquires the underlying file and positions the cursor at the start.
// Opening an already-open reader is a no-op.
func (r *FileReader) Open() error {
	if r.file != nil {
		return nil
	}

	file, err := os.Open(r.path)
	if err != nil {
		return errors.Wrapf(err, "open %s", r.path)
	}

	r.file = file
	r.reader = bufio.NewReader(file)
	r.offset = 0
	return nil
}

// Close releases the underlying file. Closing an already-closed reader is a
// no-op, so Close is safe to defer right after Open.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	r.reader = nil
	if err != nil {
		return errors.Wrapf(err, "close %s", r.path)
	}
	return nil
}

// ReadBytes returns the next n bytes and advances the cursor past them.
// It fails with ErrUnexpectedEnd when fewer than n bytes remain.
func (r *FileReader) ReadBytes(n int) ([]byte, error) {
	if r.file == nil {
		return nil, errors.Wrap(ErrNotOpen, "read bytes")
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative byte count %d", n)
	}

	buf := make([]byte, n)
	if err := r.fill(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// fill reads exactly len(buf) bytes. The cursor advances by the bytes the
// file actually yielded, even on a short read.
func (r *FileReader) fill(buf []byte) error {
	start := r.offset
	n, err := io.ReadFull(r.reader, buf)
	r.offset += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrUnexpectedEnd, "want %d bytes at offset %d, got %d", len(buf), start, n)
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", r.path)
	}
	return nil
}

// ReadU8 reads one byte as an unsigned integer.
func (r *FileReader) ReadU8() (uint8, error) {
	if r.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "read u8")
	}
	var b [1]byte
	if err := r.fill(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads one byte as a signed integer.
func (r *FileReader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16 reads two bytes as an unsigned integer in the stream's byte order.
func (r *FileReader) ReadU16() (uint16, error) {
	if r.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "read u16")
	}
	var b [2]byte
	if err := r.fill(b[:]); err != nil {
		return 0, err
	}
	return r.order.Uint16(b[:]), nil
}

// ReadI16 reads two bytes as a signed integer in the stream's byte order.
func (r *FileReader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads four bytes as an unsigned integer in the stream's byte order.
func (r *FileReader) ReadU32() (uint32, error) {
	if r.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "read u32")
	}
	var b [4]byte
	if err := r.fill(b[:]); err != nil {
		return 0, err
	}
	return r.order.Uint32(b[:]), nil
}

// ReadI32 reads four bytes as a signed integer in the stream's byte order.
func (r *FileReader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads eight bytes as an unsigned integer in the stream's byte order.
func (r *FileReader) ReadU64() (uint64, error) {
	if r.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "read u64")
	}
	var b [8]byte
	if err := r.fill(b[:]); err != nil {
		return 0, err
	}
	return r.order.Uint64(b[:]), nil
}

// ReadI64 reads eight bytes as a signed integer in the stream's byte order.
func (r *FileReader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadUTF8String reads exactly n bytes and decodes them as UTF-8.
func (r *FileReader) ReadUTF8String(n int) (string, error) {
	p, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return decodeUTF8(p)
}

// ReadASCIIString reads exactly n bytes and decodes them as ASCII.
func (r *FileReader) ReadASCIIString(n int) (string, error) {
	p, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return decodeASCII(p)
}

// ReadUTF8StringNT reads up to and including the next byte equal to term
// and decodes the bytes before it as UTF-8. The terminator is consumed but
// excluded from the result.
func (r *FileReader) ReadUTF8StringNT(term byte) (string, error) {
	p, err := r.readUntil(term)
	if err != nil {
		return "", err
	}
	return decodeUTF8(p)
}

// ReadASCIIStringNT reads up to and including the next byte equal to term
// and decodes the bytes before it as ASCII. The terminator is consumed but
// excluded from the result.
func (r *FileReader) ReadASCIIStringNT(term byte) (string, error) {
	p, err := r.readUntil(term)
	if err != nil {
		return "", err
	}
	return decodeASCII(p)
}

// readUntil consumes bytes through the first occurrence of term and returns
// the bytes before it. Hitting end of file before the terminator fails with
// ErrUnexpectedEnd, with the cursor left at the end.
func (r *FileReader) readUntil(term byte) ([]byte, error) {
	if r.file == nil {
		return nil, errors.Wrap(ErrNotOpen, "read string")
	}

	var out []byte
	for {
		b, err := r.reader.ReadByte()
		if err == io.EOF {
			return nil, errors.Wrapf(ErrUnexpectedEnd, "terminator 0x%02x not found before end of file", term)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", r.path)
		}
		r.offset++
		if b == term {
			return out, nil
		}
		out = append(out, b)
	}
}

// Seek moves the cursor to the absolute offset and returns the resulting
// position. The target is not bounds-checked; a read past the end of the
// file fails with ErrUnexpectedEnd.
func (r *FileReader) Seek(offset int64) (int64, error) {
	if r.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "seek")
	}

	pos, err := r.file.Seek(offset, io.SeekStart)
	if err != nil {
		return 0, errors.Wrapf(err, "seek %s", r.path)
	}

	// Drop buffered read-ahead so the next read starts at pos.
	r.reader.Reset(r.file)
	r.offset = pos
	return pos, nil
}

// Offset returns the cursor position as a byte offset from the start of the
// file.
func (r *FileReader) Offset() int64 {
	return r.offset
}

// Skip moves the cursor n bytes forward, or backward when n is negative,
// and returns the resulting position.
func (r *FileReader) Skip(n int64) (int64, error) {
	if r.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "skip")
	}
	return r.Seek(r.offset + n)
}

// Align moves the cursor forward to the next multiple of n and returns the
// resulting position. A cursor already on a multiple of n stays put.
func (r *FileReader) Align(n int64) (int64, error) {
	if r.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "align")
	}

	pad, err := alignment(r.offset, n)
	if err != nil {
		return 0, err
	}
	if pad == 0 {
		return r.offset, nil
	}
	return r.Seek(r.offset + pad)
}

// Endianness returns the byte order the reader was constructed with.
func (r *FileReader) Endianness() endian.Endianness {
	return r.end
}

// Path returns the file path the reader was constructed with.
func (r *FileReader) Path() string {
	return r.path
}

// WithReader opens the file at path, invokes fn with the reader, and
// releases the file on every path out of fn, including a panic. A close
// failure surfaces only when fn itself succeeded.
func WithReader(path string, order endian.Endianness, fn func(*FileReader) error) error {
	r := NewFileReader(path, order)
	if err := r.Open(); err != nil {
		return err
	}
	defer r.Close()

	if err := fn(r); err != nil {
		return err
	}
	return r.Close()
}
