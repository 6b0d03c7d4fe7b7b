package stream

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/ssargent/binstream/pkg/endian"
)

// MemoryWriter accumulates typed writes in a growable in-memory buffer.
//
// Unlike the file-backed writer it has no lifecycle: a fresh MemoryWriter
// is immediately usable and there is nothing to close. Writing at a cursor
// inside the buffer overwrites in place; writing past the end grows the
// buffer, zero-filling any gap the cursor skipped over.
type MemoryWriter struct {
	end   endian.Endianness
	order binary.ByteOrder
	buf   []byte
	pos   int64
}

var _ Writer = (*MemoryWriter)(nil)

// NewMemoryWriter creates an empty writer with the given byte order.
func NewMemoryWriter(order endian.Endianness) *MemoryWriter {
	return &MemoryWriter{
		end:   order,
		order: order.ByteOrder(),
	}
}

// Write copies p into the buffer at the cursor and advances the cursor past
// it. The error is always nil; the signature satisfies io.Writer.
func (w *MemoryWriter) Write(p []byte) (int, error) {
	end := w.pos + int64(len(p))
	if grow := end - int64(len(w.buf)); grow > 0 {
		w.buf = append(w.buf, make([]byte, grow)...)
	}
	copy(w.buf[w.pos:end], p)
	w.pos = end
	return len(p), nil
}

// WriteU8 writes one unsigned byte.
func (w *MemoryWriter) WriteU8(v uint8) error {
	var b [1]byte
	b[0] = v
	_, err := w.Write(b[:])
	return err
}

// WriteI8 writes one signed byte as its two's-complement bit pattern.
func (w *MemoryWriter) WriteI8(v int8) error {
	return w.WriteU8(uint8(v))
}

// WriteU16 writes v as two bytes in the stream's byte order.
func (w *MemoryWriter) WriteU16(v uint16) error {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteI16 writes v as its two's-complement bit pattern in the stream's
// byte order.
func (w *MemoryWriter) WriteI16(v int16) error {
	return w.WriteU16(uint16(v))
}

// WriteU32 writes v as four bytes in the stream's byte order.
func (w *MemoryWriter) WriteU32(v uint32) error {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteI32 writes v as its two's-complement bit pattern in the stream's
// byte order.
func (w *MemoryWriter) WriteI32(v int32) error {
	return w.WriteU32(uint32(v))
}

// WriteU64 writes v as eight bytes in the stream's byte order.
func (w *MemoryWriter) WriteU64(v uint64) error {
	var b [8]byte
	w.order.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteI64 writes v as its two's-complement bit pattern in the stream's
// byte order.
func (w *MemoryWriter) WriteI64(v int64) error {
	return w.WriteU64(uint64(v))
}

// WriteUTF8String writes the bytes of s and returns the count written.
func (w *MemoryWriter) WriteUTF8String(s string) (int, error) {
	return w.Write([]byte(s))
}

// WriteASCIIString writes s and returns the count written. It fails with
// ErrInvalidEncoding, writing nothing, when s holds a byte outside the
// ASCII range.
func (w *MemoryWriter) WriteASCIIString(s string) (int, error) {
	p, err := encodeASCII(s)
	if err != nil {
		return 0, err
	}
	return w.Write(p)
}

// WriteUTF8StringNT writes s followed by a single terminator byte and
// returns the total count written, terminator included.
func (w *MemoryWriter) WriteUTF8StringNT(s string, term byte) (int, error) {
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
func (w *MemoryWriter) WriteASCIIStringNT(s string, term byte) (int, error) {
	n, err := w.WriteASCIIString(s)
	if err != nil {
		return n, err
	}
	if err := w.WriteU8(term); err != nil {
		return n, err
	}
	return n + 1, nil
}

// Seek moves the cursor to the absolute offset and returns it. The target
// may lie past the end of the buffer; the gap stays virtual until a write
// lands there, at which point it zero-fills. Negative targets fail with
// ErrInvalidArgument.
func (w *MemoryWriter) Seek(offset int64) (int64, error) {
	if offset < 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "negative seek offset %d", offset)
	}
	w.pos = offset
	return offset, nil
}

// Offset returns the cursor position as a byte offset from the start of the
// buffer.
func (w *MemoryWriter) Offset() int64 {
	return w.pos
}

// Skip moves the cursor n bytes forward, or backward when n is negative,
// and returns the resulting position.
func (w *MemoryWriter) Skip(n int64) (int64, error) {
	return w.Seek(w.pos + n)
}

// Align moves the cursor forward to the next multiple of n and returns the
// resulting position. No padding bytes materialize until the next write.
func (w *MemoryWriter) Align(n int64) (int64, error) {
	pad, err := alignment(w.pos, n)
	if err != nil {
		return 0, err
	}
	return w.Seek(w.pos + pad)
}

// Bytes returns a copy of the accumulated buffer. The snapshot covers the
// whole buffer regardless of the cursor, and later writes do not touch it.
func (w *MemoryWriter) Bytes() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Len returns the buffer size in bytes. The cursor can sit past Len after
// a seek; the buffer only grows when something is written there.
func (w *MemoryWriter) Len() int {
	return len(w.buf)
}

// Reset discards the buffer contents and moves the cursor back to the
// start, keeping the allocated capacity for reuse.
func (w *MemoryWriter) Reset() {
	w.buf = w.buf[:0]
	w.pos = 0
}

// Endianness returns the byte order the writer was constructed with.
func (w *MemoryWriter) Endianness() endian.Endianness {
	return w.end
}
