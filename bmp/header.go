package bmp

import (
	"fmt"
	"io"
)

// readUint reads n little-endian bytes from b starting at offset
func readUint(b []byte, offset, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v |= uint32(b[offset+i]) << (8 * uint(i))
	}
	return v
}

// rowStride returns the number of bytes used to store one row of width
// pixels including the padding to a multiple of four
func rowStride(width int32) uint32 {
	return (uint32(width)*bytesPerPixel + 3) &^ 3
}

// Header holds the fields of a BMP header along with the derived row
// layout
type Header struct {
	FileSize    uint32
	PixelOffset uint32
	Width       int32
	Height      int32
	RawSize     uint32

	// Padding is the number of zero bytes at the end of each row
	Padding uint8
	// Stride is the number of bytes used to store each row
	Stride uint32
}

// ParseHeader parses the first HeaderSize bytes of b
func ParseHeader(b []byte) (*Header, error) {
	if len(b) < HeaderSize {
		return nil, ErrTruncated
	}

	if b[0] != signature[0] || b[1] != signature[1] {
		return nil, fmt.Errorf("%w: bad signature %q", ErrInvalidFormat, b[:2])
	}

	h := &Header{
		FileSize:    readUint(b, offsetFileSize, 4),
		PixelOffset: readUint(b, offsetPixelOffset, 4),
		Width:       int32(readUint(b, offsetWidth, 4)),
		Height:      int32(readUint(b, offsetHeight, 4)),
		RawSize:     readUint(b, offsetRawSize, 4),
	}

	if h.Width >= 0 {
		h.Stride = rowStride(h.Width)
		h.Padding = uint8(h.Stride - uint32(h.Width)*bytesPerPixel)
	}

	return h, nil
}

// DecodeHeader reads and parses a BMP header from r
func DecodeHeader(r io.Reader) (*Header, error) {
	var b [HeaderSize]byte
	if err := readFull(r, b[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, ErrTruncated
	}
	return ParseHeader(b[:])
}

// Validate checks the dimensions and row layout are usable for decoding
func (h *Header) Validate() error {
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}
	if int64(h.Stride) != (int64(h.Width)*bytesPerPixel+3)&^3 {
		return fmt.Errorf("%w: stride %d does not match width %d", ErrInvalidFormat, h.Stride, h.Width)
	}
	return nil
}

// RowBytes returns the number of bytes holding pixels in each row
func (h *Header) RowBytes() int {
	return int(h.Width) * bytesPerPixel
}
