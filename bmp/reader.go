package bmp

import (
	"fmt"
	"io"
	"os"

	"github.com/bodgit/asciiimage/gray"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.ReadSeeker
	h *Header

	grid *gray.Grid

	// One stored row including padding
	line []byte
}

// checkLength makes sure the pixel array fits in the input before anything
// is allocated for it
func (d *decoder) checkLength() error {
	end, err := d.r.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	offset := int64(d.h.PixelOffset)
	need := int64(d.h.Stride) * int64(d.h.Height)
	if end-offset < need {
		return fmt.Errorf("%w: %d bytes of pixel data needed, %d available", ErrTruncated, need, max(end-offset, 0))
	}

	return nil
}

func (d *decoder) decode() error {
	if err := d.h.Validate(); err != nil {
		return err
	}

	if err := gray.Check(int(d.h.Width), int(d.h.Height)); err != nil {
		return err
	}

	if err := d.checkLength(); err != nil {
		return err
	}

	grid, err := gray.New(int(d.h.Width), int(d.h.Height))
	if err != nil {
		return err
	}
	d.grid = grid
	d.line = make([]byte, d.h.Stride)

	if _, err := d.r.Seek(int64(d.h.PixelOffset), io.SeekStart); err != nil {
		return err
	}

	n := d.h.RowBytes()
	for i := 0; i < d.grid.Height; i++ {
		if err := readFull(d.r, d.line); err != nil {
			if err != io.ErrUnexpectedEOF {
				return err
			}
			return fmt.Errorf("%w: scanline %d of %d", ErrTruncated, i, d.grid.Height)
		}

		// The bottom row of the image is stored first
		row := d.grid.Row(d.grid.Height - 1 - i)
		for j, x := 0, 0; j < n; j, x = j+bytesPerPixel, x+1 {
			row[x] = gray.Luminance(d.line[j], d.line[j+1], d.line[j+2])
		}
	}

	return nil
}

// Decode reads the pixel array described by h from r and returns it as a
// grid of luminance values with the top row of the image first.
func Decode(r io.ReadSeeker, h *Header) (*gray.Grid, error) {
	d := decoder{r: r, h: h}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.grid, nil
}

// DecodeFile opens the named file and decodes the pixel array described by
// h.
func DecodeFile(file string, h *Header) (*gray.Grid, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, h)
}

// DecodeHeaderFile reads the header of the named file.
func DecodeHeaderFile(file string) (*Header, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeHeader(f)
}
