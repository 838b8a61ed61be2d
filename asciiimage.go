/*
Package asciiimage is a library for rendering uncompressed 24-bit BMP images
as ASCII art, either as plain text or wrapped in an HTML document.
*/
package asciiimage

import (
	"fmt"
	"io"
	"log"

	"github.com/bodgit/asciiimage/bmp"
	"github.com/bodgit/asciiimage/render"
)

// AsciiImage renders BMP images, optionally caching the results
type AsciiImage struct {
	cache  *Cache
	logger *log.Logger
}

// New returns an AsciiImage. cache may be nil to disable caching.
func New(cache *Cache, logger *log.Logger) *AsciiImage {
	return &AsciiImage{
		cache:  cache,
		logger: logger,
	}
}

// Info writes a summary of the header of file to w
func (a *AsciiImage) Info(file string, w io.Writer) error {
	if err := checkPath(file); err != nil {
		return err
	}

	h, err := bmp.DecodeHeaderFile(file)
	if err != nil {
		return fmt.Errorf("read header of %s: %w", file, err)
	}

	_, err = fmt.Fprintf(w, "-----------------------------------\n"+
		"Image info:\n"+
		" -    file size: %d B\n"+
		" -  image width: %d pixels\n"+
		" - image height: %d pixels\n"+
		" - padded bytes: %d B\n"+
		" - image header: %d B\n"+
		"-----------------------------------\n",
		h.FileSize, h.Width, h.Height, h.Padding, h.PixelOffset)
	return err
}

// Render decodes file and writes the rendered lines to s
func (a *AsciiImage) Render(file string, c render.Config, s render.Sink) error {
	if err := checkPath(file); err != nil {
		return err
	}

	// Reject a bad configuration before touching the file
	if err := c.Validate(); err != nil {
		return err
	}

	var sha string
	if a.cache != nil {
		var err error
		if sha, err = sha1File(file); err != nil {
			return fmt.Errorf("hash %s: %w", file, err)
		}

		lines, ok, err := a.cache.Find(sha, c)
		if err != nil {
			return fmt.Errorf("cache lookup for %s: %w", file, err)
		}
		if ok {
			a.logger.Printf("Using cached render of \"%s\"\n", file)
			return replay(lines, s)
		}
	}

	h, err := bmp.DecodeHeaderFile(file)
	if err != nil {
		return fmt.Errorf("read header of %s: %w", file, err)
	}

	g, err := bmp.DecodeFile(file, h)
	if err != nil {
		return fmt.Errorf("decode %s: %w", file, err)
	}

	if a.cache == nil {
		if err := render.Render(g, c, s); err != nil {
			return fmt.Errorf("render %s: %w", file, err)
		}
		return nil
	}

	rec := &recorder{Sink: s}
	if err := render.Render(g, c, rec); err != nil {
		return fmt.Errorf("render %s: %w", file, err)
	}

	if err := a.cache.Store(sha, c, rec.buf.Bytes()); err != nil {
		return fmt.Errorf("cache store for %s: %w", file, err)
	}

	return nil
}

// RenderFile renders file into the file named by Output and returns that
// name. The output file is only created once rendering has succeeded.
func (a *AsciiImage) RenderFile(file string, c render.Config) (string, error) {
	out := Output(file, c.Mode)

	w := &lazyFile{name: out}
	err := a.Render(file, c, render.NewSink(w, c.Mode))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := w.Remove(); rerr != nil {
			a.logger.Printf("Warning: unable to remove %s: %v\n", out, rerr)
		}
		return "", err
	}

	return out, nil
}
