package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/binstream/pkg/endian"
)

// parsedLayout is the result of walking the shared test layout through any
// Reader implementation.
type parsedLayout struct {
	tag    string
	id     uint32
	delta  int16
	name   string
	tail   []byte
	offset int64
}

func layoutBytes() []byte {
	return []byte{
		'o', 'b', 'j', 0x00,
		0x78, 0x56, 0x34, 0x12,
		0xfe, 0xff,
		0x00, 0x00,
		'h', 'e', 'r', 'o', 0x00,
		0xaa, 0xbb, 0xcc,
	}
}

func parseLayout(r Reader) (parsedLayout, error) {
	var p parsedLayout
	var err error

	if p.tag, err = r.ReadASCIIStringNT(NullTerminator); err != nil {
		return p, err
	}
	if p.id, err = r.ReadU32(); err != nil {
		return p, err
	}
	if p.delta, err = r.ReadI16(); err != nil {
		return p, err
	}
	if _, err = r.Align(4); err != nil {
		return p, err
	}
	if p.name, err = r.ReadUTF8StringNT(NullTerminator); err != nil {
		return p, err
	}
	if p.tail, err = r.ReadBytes(3); err != nil {
		return p, err
	}
	p.offset = r.Offset()
	return p, nil
}

// TestReaders_AgreeOnLayout parses one layout through the file-backed and
// memory-backed readers and expects identical results, cursor included.
func TestReaders_AgreeOnLayout(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "reader_agreement_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	data := layoutBytes()
	filePath := filepath.Join(tmpDir, "layout.bin")
	require.NoError(t, os.WriteFile(filePath, data, 0600))

	fileReader := NewFileReader(filePath, endian.Little)
	require.NoError(t, fileReader.Open())
	defer fileReader.Close()

	fromFile, err := parseLayout(fileReader)
	require.NoError(t, err)

	fromMemory, err := parseLayout(NewMemoryReader(data, endian.Little))
	require.NoError(t, err)

	assert.Equal(t, fromMemory, fromFile)
	assert.Equal(t, "obj", fromFile.tag)
	assert.Equal(t, uint32(0x12345678), fromFile.id)
	assert.Equal(t, int16(-2), fromFile.delta)
	assert.Equal(t, "hero", fromFile.name)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, fromFile.tail)
	assert.Equal(t, int64(len(data)), fromFile.offset)
}

func writeLayout(w Writer) error {
	if _, err := w.WriteASCIIStringNT("obj", NullTerminator); err != nil {
		return err
	}
	if err := w.WriteU32(0x12345678); err != nil {
		return err
	}
	if err := w.WriteI16(-2); err != nil {
		return err
	}
	if _, err := w.Align(4); err != nil {
		return err
	}
	if _, err := w.WriteUTF8StringNT("hero", NullTerminator); err != nil {
		return err
	}
	_, err := w.Write([]byte{0xaa, 0xbb, 0xcc})
	return err
}

// TestWriters_AgreeOnLayout writes one layout through the file-backed and
// memory-backed writers and expects byte-identical output.
func TestWriters_AgreeOnLayout(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "writer_agreement_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filePath := filepath.Join(tmpDir, "layout.bin")
	fileWriter := NewFileWriter(filePath, endian.Little)
	require.NoError(t, fileWriter.Open())
	require.NoError(t, writeLayout(fileWriter))
	require.NoError(t, fileWriter.Close())

	fromFile, err := os.ReadFile(filePath)
	require.NoError(t, err)

	memWriter := NewMemoryWriter(endian.Little)
	require.NoError(t, writeLayout(memWriter))

	assert.Equal(t, layoutBytes(), fromFile)
	assert.Equal(t, layoutBytes(), memWriter.Bytes())
}

func TestAlignmentBoundaries(t *testing.T) {
	cases := []struct {
		off  int64
		n    int64
		want int64
	}{
		{0, 4, 0},
		{1, 4, 3},
		{3, 4, 1},
		{4, 4, 0},
		{5, 8, 3},
		{7, 1, 0},
		{9, 16, 7},
	}

	for _, tc := range cases {
		pad, err := alignment(tc.off, tc.n)
		require.NoError(t, err)
		assert.Equal(t, tc.want, pad, "offset %d boundary %d", tc.off, tc.n)
	}

	_, err := alignment(4, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = alignment(4, -8)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
