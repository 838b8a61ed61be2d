/*
Package bmp implements a decoder for uncompressed 24-bit BMP images that
reduces each pixel to a single luminance value.

The file starts with a 54 byte header holding the "BM" signature followed by
little-endian fields for the file size, the offset to the pixel array, the
width and height in pixels and the size of the raw pixel data. Pixels are
stored as blue, green, red byte triples with the bottom row of the image
first, and each row is padded with zero bytes to a multiple of four bytes.
*/
package bmp

import (
	"errors"
	"fmt"
)

const (
	// HeaderSize is the number of bytes read before the pixel array
	HeaderSize = 54

	offsetFileSize    = 0x02
	offsetPixelOffset = 0x0a
	offsetWidth       = 0x12
	offsetHeight      = 0x16
	offsetRawSize     = 0x22

	bytesPerPixel = 3
)

var signature = [2]byte{'B', 'M'}

var (
	// ErrInvalidFormat is returned when the input is not a BMP image
	ErrInvalidFormat = errors.New("bmp: invalid format")

	// ErrInvalidDimensions is returned for a width or height that is not
	// positive
	ErrInvalidDimensions = fmt.Errorf("%w: image dimensions must be positive", ErrInvalidFormat)

	// ErrTruncated is returned when the input ends before all of the
	// expected data could be read
	ErrTruncated = errors.New("bmp: not enough image data")
)
