/*
Package convert writes images as uncompressed 24-bit BMP files so they can be
rendered.

Any format registered with the image package can be converted. Transparent
pixels are flattened onto a white background and the number of colors can
optionally be reduced first with a median cut quantizer.
*/
package convert

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif" // register formats
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
)

// MaxColors is the largest palette the quantizer will produce
const MaxColors = 256

var errColors = errors.New("convert: colors must be between 0 and 256")

// Encode writes the Image m to w as a 24-bit BMP. If colors is non-zero the
// image is first reduced to at most that many colors.
func Encode(w io.Writer, m image.Image, colors int) error {
	if colors < 0 || colors > MaxColors {
		return errColors
	}

	b := m.Bounds()
	if b.Empty() {
		return errors.New("convert: image is empty")
	}

	var src image.Image = m
	if colors > 0 {
		q := quantize.MedianCutQuantizer{}
		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
		src = pm
	}

	// Adjust image so that top-left corner is at (0, 0) and every pixel is
	// opaque, which makes the encoder use 24 bits per pixel
	rgba := image.NewRGBA(b.Sub(b.Min))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Over)

	return bmp.Encode(w, rgba)
}

// File decodes the image in the file named in and writes it to the file
// named out as a 24-bit BMP.
func File(in, out string, colors int) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	o, err := os.Create(out)
	if err != nil {
		return err
	}
	defer o.Close()

	if err := Encode(o, m, colors); err != nil {
		return err
	}

	return o.Close()
}
