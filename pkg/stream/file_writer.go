package stream

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/ssargent/binstream/pkg/endian"
)

// FileWriter provides sequential typed writes to a file.
//
// A FileWriter starts closed: construction records the path and byte order,
// and Open creates or truncates the file. Writes are buffered; Close and
// Sync flush the buffer, and Seek flushes before repositioning so the
// cursor and the file never disagree.
type FileWriter struct {
	path   string
	end    endian.Endianness
	order  binary.ByteOrder
	file   *os.File
	writer *bufio.Writer
	offset int64
}

var _ Writer = (*FileWriter)(nil)

// NewFileWriter creates a writer for the file at path. Open must be called
// before the first write.
func NewFileWriter(path string, order endian.Endianness) *FileWriter {
	return &FileWriter{
		path:  path,
		end:   order,
		order: order.ByteOrder(),
	}
}

// Open creates the underlying file, truncating any previous contents, and
// positions the cursor at the start. Opening an already-open writer is a
// no-op.
func (w *FileWriter) Open() error {
	if w.file != nil {
		return nil
	}

	file, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrapf(err, "open %s", w.path)
	}

	w.file = file
	w.writer = bufio.NewWriter(file)
	w.offset = 0
	return nil
}

// Close flushes buffered bytes and releases the underlying file. Closing an
// already-closed writer is a no-op, so Close is safe to defer right after
// Open.
func (w *FileWriter) Close() error {
	if w.file == nil {
		return nil
	}

	flushErr := w.writer.Flush()
	closeErr := w.file.Close()
	w.file = nil
	w.writer = nil

	if flushErr != nil {
		return errors.Wrapf(flushErr, "flush %s", w.path)
	}
	if closeErr != nil {
		return errors.Wrapf(closeErr, "close %s", w.path)
	}
	return nil
}

// Write puts p on the stream at the cursor and returns the number of bytes
// accepted. It satisfies io.Writer, so a FileWriter composes with anything
// that serializes to one.
func (w *FileWriter) Write(p []byte) (int, error) {
	if w.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "write")
	}

	n, err := w.writer.Write(p)
	w.offset += int64(n)
	if err != nil {
		return n, errors.Wrapf(err, "write %s", w.path)
	}
	return n, nil
}

// WriteU8 writes one unsigned byte.
func (w *FileWriter) WriteU8(v uint8) error {
	var b [1]byte
	b[0] = v
	_, err := w.Write(b[:])
	return err
}

// WriteI8 writes one signed byte as its two's-complement bit pattern.
func (w *FileWriter) WriteI8(v int8) error {
	return w.WriteU8(uint8(v))
}

// WriteU16 writes v as two bytes in the stream's byte order.
func (w *FileWriter) WriteU16(v uint16) error {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteI16 writes v as its two's-complement bit pattern in the stream's
// byte order.
func (w *FileWriter) WriteI16(v int16) error {
	return w.WriteU16(uint16(v))
}

// WriteU32 writes v as four bytes in the stream's byte order.
func (w *FileWriter) WriteU32(v uint32) error {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteI32 writes v as its two's-complement bit pattern in the stream's
// byte order.
func (w *FileWriter) WriteI32(v int32) error {
	return w.WriteU32(uint32(v))
}

// WriteU64 writes v as eight bytes in the stream's byte order.
func (w *FileWriter) WriteU64(v uint64) error {
	var b [8]byte
	w.order.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteI64 writes v as its two's-complement bit pattern in the stream's
// byte order.
func (w *FileWriter) WriteI64(v int64) error {
	return w.WriteU64(uint64(v))
}

// WriteUTF8String writes the bytes of s and returns the count written. A Go
// string is already a UTF-8 byte sequence, so no transcoding happens.
func (w *FileWriter) WriteUTF8String(s string) (int, error) {
	if w.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "write string")
	}
	return w.Write([]byte(s))
}

// WriteASCIIString writes s and returns the count written. It fails with
// ErrInvalidEncoding, writing nothing, when s holds a byte outside the
// ASCII range.
func (w *FileWriter) WriteASCIIString(s string) (int, error) {
	if w.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "write string")
	}

	p, err := encodeASCII(s)
	if err != nil {
		return 0, err
	}
	return w.Write(p)
}

// WriteUTF8StringNT writes s followed by a single terminator byte and
// returns the total count written, terminator included.
func (w *FileWriter) WriteUTF8StringNT(s string, term byte) (int, error) {
	n, err := w.WriteUTF8String(s)
	if err != nil {
		return n, err
	}
	if err := w.WriteU8(term); err != nil {
		return n, err
	}
	return n + 1, nil
}

// WriteASCIIStringNT writes s followed by a single terminator byte and
// returns the total count written, terminator included. Like
// WriteASCIIString it fails before writing anything when s is not ASCII.
func (w *FileWriter) WriteASCIIStringNT(s string, term byte) (int, error) {
	n, err := w.WriteASCIIString(s)
	if err != nil {
		return n, err
	}
	if err := w.WriteU8(term); err != nil {
		return n, err
	}
	return n + 1, nil
}

// Seek flushes buffered bytes, moves the cursor to the absolute offset, and
// returns the resulting position. Seeking past the end of the file is
// allowed; the gap reads back as zeros once later bytes land.
func (w *FileWriter) Seek(offset int64) (int64, error) {
	if w.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "seek")
	}

	if err := w.writer.Flush(); err != nil {
		return 0, errors.Wrapf(err, "flush %s", w.path)
	}

	pos, err := w.file.Seek(offset, io.SeekStart)
	if err != nil {
		return 0, errors.Wrapf(err, "seek %s", w.path)
	}

	w.offset = pos
	return pos, nil
}

// Offset returns the cursor position as a byte offset from the start of the
// file, counting buffered bytes that have not reached the disk yet.
func (w *FileWriter) Offset() int64 {
	return w.offset
}

// Skip moves the cursor n bytes forward, or backward when n is negative,
// and returns the resulting position.
func (w *FileWriter) Skip(n int64) (int64, error) {
	if w.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "skip")
	}
	return w.Seek(w.offset + n)
}

// Align moves the cursor forward to the next multiple of n and returns the
// resulting position. No padding bytes are written; the medium zero-fills
// the gap when the next write lands.
func (w *FileWriter) Align(n int64) (int64, error) {
	if w.file == nil {
		return 0, errors.Wrap(ErrNotOpen, "align")
	}

	pad, err := alignment(w.offset, n)
	if err != nil {
		return 0, err
	}
	if pad == 0 {
		return w.offset, nil
	}
	return w.Seek(w.offset + pad)
}

// Sync flushes buffered bytes and forces them to stable storage.
func (w *FileWriter) Sync() error {
	if w.file == nil {
		return errors.Wrap(ErrNotOpen, "sync")
	}

	if err := w.writer.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", w.path)
	}
	if err := w.file.Sync(); err != nil {
		return errors.Wrapf(err, "sync %s", w.path)
	}
	return nil
}

// Endianness returns the byte order the writer was constructed with.
func (w *FileWriter) Endianness() endian.Endianness {
	return w.end
}

// Path returns the file path the writer was constructed with.
func (w *FileWriter) Path() string {
	return w.path
}

// WithWriter opens the file at path, invokes fn with the writer, and
// releases the file on every path out of fn, including a panic. The final
// flush-and-close error surfaces when fn itself succeeded.
func WithWriter(path string, order endian.Endianness, fn func(*FileWriter) error) error {
	w := NewFileWriter(path, order)
	if err := w.Open(); err != nil {
		return err
	}
	defer w.Close()

	if err := fn(w); err != nil {
		return err
	}
	return w.Close()
}
