package asciiimage

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bodgit/asciiimage/render"
)

const maxPathLen = 127

func checkPath(file string) error {
	if len(file) > maxPathLen {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrPathTooLong, file, len(file), maxPathLen)
	}
	return nil
}

// Output returns the name of the file RenderFile writes for file
func Output(file string, m render.Mode) string {
	if m == render.StyledDocument {
		return file + ".html"
	}
	return file + ".txt"
}

// lazyFile creates the named file on the first write
type lazyFile struct {
	name string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.name)
		if err != nil {
			return 0, err
		}
		l.f = f
	}
	return l.f.Write(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}

// Remove deletes the file if it was created
func (l *lazyFile) Remove() error {
	if l.f == nil {
		return nil
	}
	return os.Remove(l.name)
}

// recorder keeps a copy of every line passed to the wrapped sink
type recorder struct {
	render.Sink
	buf bytes.Buffer
}

func (r *recorder) WriteLine(line []byte) error {
	r.buf.Write(line)
	r.buf.WriteByte('\n')
	return r.Sink.WriteLine(line)
}

// replay feeds newline terminated lines to s and finalizes it
func replay(lines []byte, s render.Sink) error {
	for len(lines) > 0 {
		i := bytes.IndexByte(lines, '\n')
		if i < 0 {
			i = len(lines)
		}
		if err := s.WriteLine(lines[:i]); err != nil {
			return err
		}
		if i < len(lines) {
			i++
		}
		lines = lines[i:]
	}
	return s.Finalize()
}
