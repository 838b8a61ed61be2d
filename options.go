package asciiimage

import (
	"fmt"
	"os"

	"github.com/bodgit/asciiimage/render"
	"gopkg.in/yaml.v2"
)

// Options holds the user facing render settings before they are resolved
// into a render.Config
type Options struct {
	// Size is the size level from 1 to 10, larger is bigger output
	Size int `yaml:"size"`
	// Bits is the glyph bit depth from 1 to 4
	Bits   int  `yaml:"bits"`
	Invert bool `yaml:"invert"`
	HTML   bool `yaml:"html"`
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Size: render.DefaultSize,
		Bits: render.DefaultDepth,
	}
}

// LoadOptions reads options from the YAML file. Keys missing from the file
// keep their default values.
func LoadOptions(file string) (Options, error) {
	o := DefaultOptions()

	b, err := os.ReadFile(file)
	if err != nil {
		return o, err
	}

	if err := yaml.UnmarshalStrict(b, &o); err != nil {
		return o, fmt.Errorf("parse %s: %w", file, err)
	}

	return o, nil
}

// Config resolves o into a render.Config. Out of range values are replaced
// with the defaults and a warning is logged.
func (a *AsciiImage) Config(o Options) render.Config {
	width, ok := render.TileWidth(o.Size)
	if !ok {
		a.logger.Printf("Warning: size must be set [%d - %d], using %d\n", render.MinSize, render.MaxSize, render.DefaultSize)
	}

	depth, ok := render.Depth(o.Bits)
	if !ok {
		a.logger.Printf("Warning: bits must be set to 1, 2, 3 or 4, using %d\n", render.DefaultDepth)
	}

	mode := render.Plain
	if o.HTML {
		mode = render.StyledDocument
	}

	return render.Config{
		TileWidth: width,
		Invert:    o.Invert,
		Depth:     depth,
		Mode:      mode,
	}
}
