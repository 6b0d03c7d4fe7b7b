// Package stream implements primitive sequential binary I/O: typed
// fixed-width integer reads and writes, raw byte transfers, fixed-length
// and terminated strings, and cursor control, over files and in-memory
// buffers.
//
// # Streams
//
// Four stream kinds cover the common shapes of binary work:
//
//   - FileReader reads a file front to back through a buffered descriptor.
//   - FileWriter creates or truncates a file and writes it sequentially.
//   - MemoryWriter assembles a byte buffer in memory, for building blobs
//     whose size is unknown up front or that never touch disk.
//   - MemoryReader decodes a byte slice in place, without copying it.
//
// MappedFile rounds these out for large read-mostly assets: it maps a file
// into memory and hands out MemoryReader views over the mapping.
//
// File-backed streams have an explicit lifecycle. Construction is cheap and
// touches nothing on disk; Open acquires the descriptor and Close releases
// it. Close is idempotent, so the usual shape is:
//
//	r := stream.NewFileReader(path, endian.Little)
//	if err := r.Open(); err != nil {
//		return err
//	}
//	defer r.Close()
//
// WithReader and WithWriter wrap that pattern into a callback when the
// stream's whole life fits one function.
//
// # Byte Order
//
// Every stream is constructed with an endian.Endianness that fixes how
// multi-byte integers are laid out for its lifetime. Signed and unsigned
// variants of a width move identical bytes; the signed forms reinterpret
// the bits as two's complement.
//
// # Cursor
//
// Streams track their position as a byte offset from the start of the
// medium. Offset reports it, Seek jumps to an absolute target, Skip moves
// relatively, and Align advances to the next multiple of a boundary,
// staying put when already aligned. On FileReader the reported offset is
// always the logical position, regardless of buffered read-ahead.
//
// # Errors
//
// Failures wrap one of four sentinels: ErrNotOpen for lifecycle misuse,
// ErrUnexpectedEnd for data that runs out mid-value, ErrInvalidEncoding for
// text that does not decode, and ErrInvalidArgument for malformed requests.
// Operating-system failures pass through wrapped with the stream's path.
// Wrapping preserves the chain, so classify with errors.Is:
//
//	v, err := r.ReadU32()
//	if errors.Is(err, stream.ErrUnexpectedEnd) {
//		// the file ended inside the value
//	}
package stream
