//go:build fuzz
// +build fuzz

package stream

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"

	"github.com/ssargent/binstream/pkg/endian"
)

// FuzzMemoryRoundTrip_Integers writes every integer width through a
// MemoryWriter and reads it back through a MemoryReader, in both byte
// orders.
func FuzzMemoryRoundTrip_Integers(f *testing.F) {
	f.Add(uint8(0), uint16(0), uint32(0), uint64(0), false)
	f.Add(uint8(1), uint16(2), uint32(0x12345678), uint64(0x0102030405060708), true)
	f.Add(uint8(0xff), uint16(0xffff), uint32(0xffffffff), uint64(0xffffffffffffffff), false)

	f.Fuzz(func(t *testing.T, u8 uint8, u16 uint16, u32 uint32, u64 uint64, big bool) {
		order := endian.Little
		if big {
			order = endian.Big
		}

		w := NewMemoryWriter(order)
		if err := w.WriteU8(u8); err != nil {
			t.Fatalf("write u8: %v", err)
		}
		if err := w.WriteU16(u16); err != nil {
			t.Fatalf("write u16: %v", err)
		}
		if err := w.WriteU32(u32); err != nil {
			t.Fatalf("write u32: %v", err)
		}
		if err := w.WriteU64(u64); err != nil {
			t.Fatalf("write u64: %v", err)
		}
		if err := w.WriteI8(int8(u8)); err != nil {
			t.Fatalf("write i8: %v", err)
		}
		if err := w.WriteI16(int16(u16)); err != nil {
			t.Fatalf("write i16: %v", err)
		}
		if err := w.WriteI32(int32(u32)); err != nil {
			t.Fatalf("write i32: %v", err)
		}
		if err := w.WriteI64(int64(u64)); err != nil {
			t.Fatalf("write i64: %v", err)
		}

		if w.Len() != 30 {
			t.Fatalf("buffer size = %d, want 30", w.Len())
		}

		r := NewMemoryReader(w.Bytes(), order)
		gotU8, err := r.ReadU8()
		if err != nil || gotU8 != u8 {
			t.Fatalf("read u8 = %v, %v, want %v", gotU8, err, u8)
		}
		gotU16, err := r.ReadU16()
		if err != nil || gotU16 != u16 {
			t.Fatalf("read u16 = %v, %v, want %v", gotU16, err, u16)
		}
		gotU32, err := r.ReadU32()
		if err != nil || gotU32 != u32 {
			t.Fatalf("read u32 = %v, %v, want %v", gotU32, err, u32)
		}
		gotU64, err := r.ReadU64()
		if err != nil || gotU64 != u64 {
			t.Fatalf("read u64 = %v, %v, want %v", gotU64, err, u64)
		}
		gotI8, err := r.ReadI8()
		if err != nil || gotI8 != int8(u8) {
			t.Fatalf("read i8 = %v, %v, want %v", gotI8, err, int8(u8))
		}
		gotI16, err := r.ReadI16()
		if err != nil || gotI16 != int16(u16) {
			t.Fatalf("read i16 = %v, %v, want %v", gotI16, err, int16(u16))
		}
		gotI32, err := r.ReadI32()
		if err != nil || gotI32 != int32(u32) {
			t.Fatalf("read i32 = %v, %v, want %v", gotI32, err, int32(u32))
		}
		gotI64, err := r.ReadI64()
		if err != nil || gotI64 != int64(u64) {
			t.Fatalf("read i64 = %v, %v, want %v", gotI64, err, int64(u64))
		}

		if r.Remaining() != 0 {
			t.Fatalf("remaining = %d, want 0", r.Remaining())
		}
	})
}

// FuzzMemoryReader_ArbitraryData throws unstructured bytes at every read
// operation and checks that failures classify to a sentinel and the cursor
// stays inside the data.
func FuzzMemoryReader_ArbitraryData(f *testing.F) {
	f.Add([]byte{}, uint(0))
	f.Add([]byte{0x01}, uint(1))
	f.Add([]byte{0x61, 0x62, 0x63, 0x00}, uint(2))
	f.Add(bytes.Repeat([]byte{0xff}, 32), uint(7))

	f.Fuzz(func(t *testing.T, data []byte, n uint) {
		r := NewMemoryReader(data, endian.Little)

		checkErr := func(err error) {
			if err == nil {
				return
			}
			if !errors.Is(err, ErrUnexpectedEnd) && !errors.Is(err, ErrInvalidEncoding) && !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("unclassified error: %v", err)
			}
		}

		_, err := r.ReadBytes(int(n % 64))
		checkErr(err)
		_, err = r.ReadU32()
		checkErr(err)
		_, err = r.ReadUTF8StringNT(0x00)
		checkErr(err)
		_, err = r.ReadASCIIString(int(n % 8))
		checkErr(err)
		_, err = r.Skip(int64(n % 16))
		checkErr(err)
		_, err = r.Align(int64(n%8) + 1)
		checkErr(err)
		_, err = r.ReadI64()
		checkErr(err)

		if r.Offset() < 0 {
			t.Fatalf("cursor went negative: %d", r.Offset())
		}
	})
}

// FuzzStringNT_RoundTrip writes an arbitrary payload with a terminator and
// reads it back, accepting only a decode failure as the alternative.
func FuzzStringNT_RoundTrip(f *testing.F) {
	f.Add([]byte("abc"), byte(0x00))
	f.Add([]byte(""), byte(0x00))
	f.Add([]byte("héllo"), byte(0xff))
	f.Add([]byte{0x01, 0x02, 0x03}, byte(0x7c))

	f.Fuzz(func(t *testing.T, payload []byte, term byte) {
		if bytes.IndexByte(payload, term) >= 0 {
			t.Skip("payload contains the terminator")
		}

		w := NewMemoryWriter(endian.Little)
		if _, err := w.Write(payload); err != nil {
			t.Fatalf("write payload: %v", err)
		}
		if err := w.WriteU8(term); err != nil {
			t.Fatalf("write terminator: %v", err)
		}

		r := NewMemoryReader(w.Bytes(), endian.Little)
		s, err := r.ReadUTF8StringNT(term)
		if err != nil {
			if !errors.Is(err, ErrInvalidEncoding) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}

		if !bytes.Equal([]byte(s), payload) {
			t.Fatalf("round trip mismatch: got %x, want %x", s, payload)
		}
		if r.Offset() != int64(len(payload))+1 {
			t.Fatalf("cursor = %d, want %d", r.Offset(), len(payload)+1)
		}
	})
}
