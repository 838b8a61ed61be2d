/*
Package glyph maps luminance values onto characters.

Four fixed ramps are available, one for each supported bit depth, with 2, 4,
8 and 16 entries respectively. Each ramp runs from the densest glyph for the
darkest luminance to blank space for the lightest.
*/
package glyph

import (
	"errors"
	"fmt"
)

const (
	// MinDepth is the smallest supported bit depth
	MinDepth = 1
	// MaxDepth is the largest supported bit depth
	MaxDepth = 4
)

const (
	ramp1 = "# "
	ramp2 = "#6+ "
	ramp3 = "#&$21:- "
	ramp4 = "##&8$62I1|:+-.  "
)

// ErrUnsupportedDepth is returned for a bit depth outside 1 to 4
var ErrUnsupportedDepth = errors.New("glyph: unsupported bit depth")

// Ramp returns the ramp used for the given bit depth
func Ramp(depth int) (string, error) {
	switch depth {
	case 1:
		return ramp1, nil
	case 2:
		return ramp2, nil
	case 3:
		return ramp3, nil
	case 4:
		return ramp4, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}
}

// Mapper selects glyphs from a single ramp
type Mapper struct {
	ramp   string
	width  int
	invert bool
}

// New returns a Mapper for the given bit depth, optionally inverting the
// luminance before lookup
func New(depth int, invert bool) (*Mapper, error) {
	ramp, err := Ramp(depth)
	if err != nil {
		return nil, err
	}
	return &Mapper{
		ramp:   ramp,
		width:  256 / len(ramp),
		invert: invert,
	}, nil
}

// Bucket returns the index into the ramp for the luminance
func (m *Mapper) Bucket(lum byte) int {
	if m.invert {
		lum = 255 - lum
	}
	i := int(lum) / m.width
	if i >= len(m.ramp) {
		i = len(m.ramp) - 1
	}
	return i
}

// Map returns the glyph for the luminance
func (m *Mapper) Map(lum byte) byte {
	return m.ramp[m.Bucket(lum)]
}

// Map returns the glyph for the luminance using the ramp for depth
func Map(lum byte, depth int, invert bool) (byte, error) {
	m, err := New(depth, invert)
	if err != nil {
		return 0, err
	}
	return m.Map(lum), nil
}
