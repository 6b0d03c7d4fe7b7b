package stream

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/ssargent/binstream/pkg/endian"
)

// MappedFile exposes a file's contents as memory, read-only. It suits large
// assets that get picked at from many offsets: no read syscalls, no copies,
// and a MemoryReader view costs nothing to create.
type MappedFile struct {
	path string
	file *os.File
	data mmap.MMap
}

// OpenMapped maps the file at path into memory. An empty file maps to an
// empty view; the zero-length mapping is never handed to the OS.
func OpenMapped(path string) (*MappedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	m := &MappedFile{path: path, file: file}
	if info.Size() > 0 {
		data, err := mmap.Map(file, mmap.RDONLY, 0)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(err, "mmap %s", path)
		}
		m.data = data
	}
	return m, nil
}

// Bytes returns the mapped contents. The slice is a view into the mapping
// and must not be used after Close.
func (m *MappedFile) Bytes() []byte {
	return m.data
}

// Len returns the size of the mapped contents in bytes.
func (m *MappedFile) Len() int {
	return len(m.data)
}

// Reader returns a MemoryReader over the mapped contents with the given
// byte order. The reader shares the mapping and must not be used after
// Close.
func (m *MappedFile) Reader(order endian.Endianness) *MemoryReader {
	return NewMemoryReader(m.data, order)
}

// Path returns the file path the mapping was created from.
func (m *MappedFile) Path() string {
	return m.path
}

// Close unmaps the contents and releases the underlying file. Closing an
// already-closed mapping is a no-op.
func (m *MappedFile) Close() error {
	if m.file == nil {
		return nil
	}

	var unmapErr error
	if m.data != nil {
		unmapErr = m.data.Unmap()
		m.data = nil
	}
	closeErr := m.file.Close()
	m.file = nil

	if unmapErr != nil {
		return errors.Wrapf(unmapErr, "unmap %s", m.path)
	}
	if closeErr != nil {
		return errors.Wrapf(closeErr, "close %s", m.path)
	}
	return nil
}
