package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteOrder(t *testing.T) {
	assert.Equal(t, binary.LittleEndian, Little.ByteOrder())
	assert.Equal(t, binary.BigEndian, Big.ByteOrder())
}

func TestZeroValueIsLittle(t *testing.T) {
	var e Endianness
	assert.Equal(t, Little, e)
	assert.Equal(t, binary.LittleEndian, e.ByteOrder())
}

func TestByteOrderRoundTrip(t *testing.T) {
	buf := make([]byte, 4)

	Little.ByteOrder().PutUint32(buf, 0x12345678)
	assert.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, buf)

	Big.ByteOrder().PutUint32(buf, 0x12345678)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, buf)
}

func TestString(t *testing.T) {
	assert.Equal(t, "little", Little.String())
	assert.Equal(t, "big", Big.String())
}
