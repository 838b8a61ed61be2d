package bmp

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bodgit/asciiimage/gray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xbmp "golang.org/x/image/bmp"
)

// encode builds a 24-bit BMP where rgb returns the red, green and blue
// channels of the pixel at visual position (x, y)
func encode(t *testing.T, width, height int, rgb func(x, y int) (byte, byte, byte)) []byte {
	t.Helper()

	stride := (width*3 + 3) &^ 3
	b := new(bytes.Buffer)

	header := make([]byte, HeaderSize)
	copy(header, "BM")
	binary.LittleEndian.PutUint32(header[offsetFileSize:], uint32(HeaderSize+stride*height))
	binary.LittleEndian.PutUint32(header[offsetPixelOffset:], HeaderSize)
	binary.LittleEndian.PutUint32(header[0x0e:], 40)
	binary.LittleEndian.PutUint32(header[offsetWidth:], uint32(width))
	binary.LittleEndian.PutUint32(header[offsetHeight:], uint32(height))
	binary.LittleEndian.PutUint16(header[0x1a:], 1)
	binary.LittleEndian.PutUint16(header[0x1c:], 24)
	binary.LittleEndian.PutUint32(header[offsetRawSize:], uint32(stride*height))
	b.Write(header)

	for y := height - 1; y >= 0; y-- {
		row := make([]byte, stride)
		for x := 0; x < width; x++ {
			r, g, bl := rgb(x, y)
			row[x*3], row[x*3+1], row[x*3+2] = bl, g, r
		}
		b.Write(row)
	}

	return b.Bytes()
}

func TestDecodeTwoByTwo(t *testing.T) {
	// Top row red, green; bottom row blue, white
	pixels := [2][2][3]byte{
		{{255, 0, 0}, {0, 255, 0}},
		{{0, 0, 255}, {255, 255, 255}},
	}
	b := encode(t, 2, 2, func(x, y int) (byte, byte, byte) {
		p := pixels[y][x]
		return p[0], p[1], p[2]
	})
	require.Len(t, b, HeaderSize+2*8)

	r := bytes.NewReader(b)
	h, err := DecodeHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), h.Padding)
	assert.Equal(t, uint32(8), h.Stride)

	g, err := Decode(r, h)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width)
	assert.Equal(t, 2, g.Height)
	assert.Equal(t, []byte{85, 85}, g.Row(0))
	assert.Equal(t, []byte{85, 255}, g.Row(1))
}

func TestDecodeFlipsRows(t *testing.T) {
	const width, height = 5, 3
	b := encode(t, width, height, func(x, y int) (byte, byte, byte) {
		v := byte(y*60 + x*3)
		return v, v, v
	})

	r := bytes.NewReader(b)
	h, err := DecodeHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), h.Padding)

	g, err := Decode(r, h)
	require.NoError(t, err)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			assert.Equal(t, byte(y*60+x*3), g.At(y, x), "row %d col %d", y, x)
		}
	}

	// Visual row 0 is the last stored scanline
	last := b[len(b)-int(h.Stride):]
	assert.Equal(t, gray.Luminance(last[0], last[1], last[2]), g.At(0, 0))
}

func TestDecodeMatchesReferenceEncoder(t *testing.T) {
	for _, width := range []int{1, 2, 3, 4, 7, 13} {
		m := image.NewRGBA(image.Rect(0, 0, width, 9))
		for y := 0; y < 9; y++ {
			for x := 0; x < width; x++ {
				m.SetRGBA(x, y, color.RGBA{
					R: uint8(x*37 + y*11),
					G: uint8(x*5 ^ y*29),
					B: uint8(200 - x*y),
					A: 0xff,
				})
			}
		}

		b := new(bytes.Buffer)
		require.NoError(t, xbmp.Encode(b, m))

		r := bytes.NewReader(b.Bytes())
		h, err := DecodeHeader(r)
		require.NoError(t, err)
		assert.Equal(t, uint32(b.Len()), h.FileSize)
		assert.Equal(t, int32(width), h.Width)
		assert.Equal(t, int32(9), h.Height)

		g, err := Decode(r, h)
		require.NoError(t, err)

		for y := 0; y < 9; y++ {
			for x := 0; x < width; x++ {
				c := m.RGBAAt(x, y)
				assert.Equal(t, gray.Luminance(c.R, c.G, c.B), g.At(y, x))
			}
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	b := encode(t, 4, 4, func(x, y int) (byte, byte, byte) {
		return 1, 2, 3
	})

	tables := []struct {
		name string
		cut  int
	}{
		{"missing row", 12},
		{"partial row", 1},
		{"no pixels", 4 * 12},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			short := b[:len(b)-table.cut]
			r := bytes.NewReader(short)
			h, err := DecodeHeader(r)
			require.NoError(t, err)

			g, err := Decode(r, h)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestDecodeInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int32{{0, 4}, {4, 0}, {-1, 4}, {4, -4}} {
		h := &Header{Width: dims[0], Height: dims[1], PixelOffset: HeaderSize}
		g, err := Decode(bytes.NewReader(make([]byte, 128)), h)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	}
}

func TestDecodeStrideMismatch(t *testing.T) {
	// A header built by hand without the derived row layout
	h := &Header{Width: 2, Height: 2, PixelOffset: HeaderSize}

	var (
		g   *gray.Grid
		err error
	)
	require.NotPanics(t, func() {
		g, err = Decode(bytes.NewReader(make([]byte, 128)), h)
	})
	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDecodeTooLarge(t *testing.T) {
	b := header(HeaderSize, HeaderSize, 1<<15, 1<<14, 0)

	r := bytes.NewReader(b)
	h, err := DecodeHeader(r)
	require.NoError(t, err)

	g, err := Decode(r, h)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, gray.ErrTooLarge)
}

func TestDecodeLengthBeforeAllocation(t *testing.T) {
	// The largest grid allowed, with no pixel data behind the header
	b := header(HeaderSize, HeaderSize, 1, gray.MaxPixels, 0)

	r := bytes.NewReader(b)
	h, err := DecodeHeader(r)
	require.NoError(t, err)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	g, err := Decode(r, h)
	runtime.ReadMemStats(&after)

	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))

	// The pixel array must also fit after a pixel offset past the end
	h.Height = 1
	h.PixelOffset = 1 << 10
	_, err = Decode(bytes.NewReader(b), h)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodePixelOffset(t *testing.T) {
	b := encode(t, 1, 1, func(x, y int) (byte, byte, byte) {
		return 30, 60, 90
	})

	// Move the pixel array further into the file
	gap := []byte{0xde, 0xad, 0xbe, 0xef}
	moved := append(append(append([]byte{}, b[:HeaderSize]...), gap...), b[HeaderSize:]...)
	binary.LittleEndian.PutUint32(moved[offsetPixelOffset:], HeaderSize+uint32(len(gap)))

	r := bytes.NewReader(moved)
	h, err := DecodeHeader(r)
	require.NoError(t, err)
	g, err := Decode(r, h)
	require.NoError(t, err)
	assert.Equal(t, byte(60), g.At(0, 0))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.bmp")
	require.NoError(t, os.WriteFile(file, encode(t, 3, 2, func(x, y int) (byte, byte, byte) {
		return 0, 0, byte(x * 30)
	}), 0o644))

	h, err := DecodeHeaderFile(file)
	require.NoError(t, err)

	g, err := DecodeFile(file, h)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 10, 20}, g.Row(1))

	_, err = DecodeHeaderFile(filepath.Join(dir, "missing.bmp"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = DecodeFile(filepath.Join(dir, "missing.bmp"), h)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeHeaderShort(t *testing.T) {
	_, err := DecodeHeader(bytes.NewReader([]byte("BM1234")))
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = DecodeHeader(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrTruncated)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestDecodeHeaderReadError(t *testing.T) {
	_, err := DecodeHeader(errReader{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.NotErrorIs(t, err, ErrTruncated)
}
