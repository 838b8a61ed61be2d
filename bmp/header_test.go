package bmp

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUint(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0xff}

	tables := []struct {
		offset, n int
		want      uint32
	}{
		{0, 1, 0x01},
		{0, 2, 0x0201},
		{0, 3, 0x030201},
		{0, 4, 0x04030201},
		{1, 4, 0xff040302},
		{4, 1, 0xff},
		{2, 0, 0},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, readUint(b, table.offset, table.n))
	}
}

func header(fileSize, offset uint32, width, height int32, rawSize uint32) []byte {
	b := make([]byte, HeaderSize)
	copy(b, "BM")
	binary.LittleEndian.PutUint32(b[offsetFileSize:], fileSize)
	binary.LittleEndian.PutUint32(b[offsetPixelOffset:], offset)
	binary.LittleEndian.PutUint32(b[offsetWidth:], uint32(width))
	binary.LittleEndian.PutUint32(b[offsetHeight:], uint32(height))
	binary.LittleEndian.PutUint32(b[offsetRawSize:], rawSize)
	return b
}

func TestParseHeader(t *testing.T) {
	tables := []struct {
		name     string
		fileSize uint32
		offset   uint32
		width    int32
		height   int32
		rawSize  uint32
		padding  uint8
		stride   uint32
	}{
		{"2x2", 70, 54, 2, 2, 16, 2, 8},
		{"4x1", 66, 54, 4, 1, 12, 0, 12},
		{"5x3", 102, 54, 5, 3, 48, 1, 16},
		{"1x1", 58, 54, 1, 1, 4, 1, 4},
		{"3x7", 138, 54, 3, 7, 84, 3, 12},
		{"large", 0xfedcba98, 0x12345678, 4000, 3000, 0x7fffffff, 0, 12000},
		{"zero width", 54, 54, 0, 10, 0, 0, 0},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			h, err := ParseHeader(header(table.fileSize, table.offset, table.width, table.height, table.rawSize))
			require.NoError(t, err)
			assert.Equal(t, table.fileSize, h.FileSize)
			assert.Equal(t, table.offset, h.PixelOffset)
			assert.Equal(t, table.width, h.Width)
			assert.Equal(t, table.height, h.Height)
			assert.Equal(t, table.rawSize, h.RawSize)
			assert.Equal(t, table.padding, h.Padding)
			assert.Equal(t, table.stride, h.Stride)
		})
	}
}

func TestParseHeaderNegative(t *testing.T) {
	h, err := ParseHeader(header(54, 54, -3, -5, 0))
	require.NoError(t, err)
	assert.Equal(t, int32(-3), h.Width)
	assert.Equal(t, int32(-5), h.Height)
	assert.ErrorIs(t, h.Validate(), ErrInvalidDimensions)
}

func TestRowStride(t *testing.T) {
	for width := int32(0); width <= 1024; width++ {
		stride := rowStride(width)
		assert.Zero(t, stride%4)
		padding := stride - uint32(width)*3
		assert.LessOrEqual(t, padding, uint32(3))
	}
}

func TestParseHeaderBadSignature(t *testing.T) {
	for _, sig := range []string{"XY", "MB", "bm", "\x00\x00"} {
		b := header(70, 54, 2, 2, 16)
		copy(b, sig)
		h, err := ParseHeader(b)
		assert.Nil(t, h)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	}
}

func TestParseHeaderShort(t *testing.T) {
	h, err := ParseHeader(header(70, 54, 2, 2, 16)[:HeaderSize-1])
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Header{Width: 1, Height: 1, Stride: 4}).Validate())
	assert.ErrorIs(t, (&Header{Width: 0, Height: 1}).Validate(), ErrInvalidFormat)
	assert.ErrorIs(t, (&Header{Width: 1, Height: 0}).Validate(), ErrInvalidDimensions)

	tables := []struct {
		width  int32
		stride uint32
	}{
		{1, 0},
		{2, 6},
		{2, 12},
		{4, 16},
	}

	for _, table := range tables {
		err := (&Header{Width: table.width, Height: 1, Stride: table.stride}).Validate()
		assert.ErrorIs(t, err, ErrInvalidFormat, "width %d stride %d", table.width, table.stride)
		assert.NotErrorIs(t, err, ErrInvalidDimensions)
	}

	h, err := ParseHeader(header(70, 54, 2, 2, 16))
	require.NoError(t, err)
	assert.NoError(t, h.Validate())
}
