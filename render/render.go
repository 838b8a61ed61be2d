/*
Package render converts a luminance grid into lines of glyphs.

The grid is split into tiles with a 1:2 width to height ratio. The mean
luminance of each tile selects one glyph, and each horizontal band of tiles
produces one line of output. Partial tiles along the right and bottom edges
are dropped.
*/
package render

import (
	"errors"
	"fmt"

	"github.com/bodgit/asciiimage/glyph"
	"github.com/bodgit/asciiimage/gray"
)

// Mode selects how the rendered lines are presented
type Mode int

const (
	// Plain writes newline terminated lines of glyphs
	Plain Mode = iota
	// StyledDocument wraps the lines in an HTML document
	StyledDocument
)

func (m Mode) String() string {
	switch m {
	case Plain:
		return "plain"
	case StyledDocument:
		return "html"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

const (
	// MinSize and MaxSize bound the size level
	MinSize = 1
	MaxSize = 10

	// DefaultSize is used when the size level is out of range
	DefaultSize = 6
	// DefaultDepth is used when the bit depth is out of range
	DefaultDepth = glyph.MaxDepth
)

// ErrInvalidConfig is returned when a Config cannot be used for rendering
var ErrInvalidConfig = errors.New("render: invalid configuration")

// TileWidth returns the tile width in pixels for a size level. A larger level
// produces smaller tiles and so a larger picture. If level is out of range
// the width for DefaultSize is returned along with false.
func TileWidth(level int) (int, bool) {
	ok := true
	if level < MinSize || level > MaxSize {
		level, ok = DefaultSize, false
	}
	if level == MaxSize {
		return 1, ok
	}
	return (MaxSize - level) * 2, ok
}

// Depth returns depth if it is supported, otherwise DefaultDepth and false.
func Depth(depth int) (int, bool) {
	if depth < glyph.MinDepth || depth > glyph.MaxDepth {
		return DefaultDepth, false
	}
	return depth, true
}

// Config controls how a grid is rendered
type Config struct {
	TileWidth int
	Invert    bool
	Depth     int
	Mode      Mode
}

// TileHeight returns the tile height in pixels
func (c Config) TileHeight() int {
	return c.TileWidth * 2
}

// Validate checks the tile width and bit depth
func (c Config) Validate() error {
	if c.TileWidth < 1 {
		return fmt.Errorf("%w: tile width %d", ErrInvalidConfig, c.TileWidth)
	}
	if _, err := glyph.Ramp(c.Depth); err != nil {
		return err
	}
	return nil
}

// Render writes one line per band of tiles in g to s and then finalizes s.
// If an error occurs s is not finalized.
func Render(g *gray.Grid, c Config, s Sink) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: empty grid", ErrInvalidConfig)
	}

	m, err := glyph.New(c.Depth, c.Invert)
	if err != nil {
		return err
	}

	tw, th := c.TileWidth, c.TileHeight()
	samples := tw * th

	line := make([]byte, 0, g.Width/tw)
	for y := 0; y+th <= g.Height; y += th {
		line = line[:0]
		for x := 0; x+tw <= g.Width; x += tw {
			sum := 0
			for row := y; row < y+th; row++ {
				for _, v := range g.Row(row)[x : x+tw] {
					sum += int(v)
				}
			}
			line = append(line, m.Map(byte(sum/samples)))
		}
		if err := s.WriteLine(line); err != nil {
			return err
		}
	}

	return s.Finalize()
}
