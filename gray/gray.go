/*
Package gray implements the luminance grid produced when decoding a BMP
image.

The grid is a single row-major buffer of one byte per pixel with row 0 being
the topmost visual row of the image.
*/
package gray

import (
	"errors"
	"fmt"
)

// MaxPixels is the largest grid that will be allocated
const MaxPixels = 1 << 28

// ErrTooLarge is returned when a grid of the requested dimensions cannot be
// allocated
var ErrTooLarge = errors.New("gray: grid too large")

var errDimensions = errors.New("gray: invalid dimensions")

// Luminance reduces three color channels to a single brightness value. The
// channels are averaged without weighting and the result is truncated, so the
// order of the arguments does not matter.
func Luminance(c0, c1, c2 byte) byte {
	return byte((uint(c0) + uint(c1) + uint(c2)) / 3)
}

// Grid is a two dimensional array of luminance values
type Grid struct {
	Width  int
	Height int
	Pix    []byte
}

// Check reports whether a grid of the given dimensions can be allocated
// without allocating it
func Check(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", errDimensions, width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	return nil
}

// New allocates a zeroed grid of the given dimensions
func New(width, height int) (*Grid, error) {
	if err := Check(width, height); err != nil {
		return nil, err
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height),
	}, nil
}

// Index returns the offset into Pix of the given row and column
func (g *Grid) Index(row, col int) int {
	return row*g.Width + col
}

// At returns the luminance at the given row and column
func (g *Grid) At(row, col int) byte {
	return g.Pix[g.Index(row, col)]
}

// Set stores the luminance at the given row and column
func (g *Grid) Set(row, col int, v byte) {
	g.Pix[g.Index(row, col)] = v
}

// Row returns the slice of Pix backing the given row
func (g *Grid) Row(row int) []byte {
	i := g.Index(row, 0)
	return g.Pix[i : i+g.Width : i+g.Width]
}
