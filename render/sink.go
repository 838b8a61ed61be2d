package render

import (
	"bufio"
	"bytes"
	"io"
)

// Sink receives rendered lines
type Sink interface {
	// WriteLine is called once per band with the glyphs for that band.
	// The slice is only valid for the duration of the call.
	WriteLine(line []byte) error
	// Finalize is called once after the last line
	Finalize() error
}

// TextSink writes newline terminated lines
type TextSink struct {
	w *bufio.Writer
}

// NewTextSink returns a Sink writing plain lines to w
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{
		w: bufio.NewWriter(w),
	}
}

// WriteLine writes line followed by a newline
func (s *TextSink) WriteLine(line []byte) error {
	if _, err := s.w.Write(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Finalize flushes any buffered output
func (s *TextSink) Finalize() error {
	return s.w.Flush()
}

const (
	htmlWhiteSpace = "white-space: pre;"
	htmlFontFamily = "font-family: Courier, 'Courier New', monospace;"
	htmlFontSize   = "font-size: xx-small;"
	htmlFontWeight = "font-weight: bold;"

	htmlHeader = "<!DOCTYPE html>\n<html>\n<head>\n</head>\n<body>\n<div style=\"" + htmlWhiteSpace + htmlFontFamily + htmlFontSize + htmlFontWeight + "\">\n"
	htmlFooter = "</div>\n</body>\n</html>"
)

// HTMLSink wraps the lines in a minimal HTML document. Nothing is written
// to the underlying writer until Finalize is called, so a render that fails
// part way through never produces a partial document.
type HTMLSink struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewHTMLSink returns a Sink writing an HTML document to w
func NewHTMLSink(w io.Writer) *HTMLSink {
	return &HTMLSink{
		w: w,
	}
}

// WriteLine buffers line
func (s *HTMLSink) WriteLine(line []byte) error {
	s.buf.Write(line)
	s.buf.WriteByte('\n')
	return nil
}

// Finalize writes the complete document
func (s *HTMLSink) Finalize() error {
	b := make([]byte, 0, len(htmlHeader)+s.buf.Len()+len(htmlFooter))
	b = append(b, htmlHeader...)
	b = append(b, s.buf.Bytes()...)
	b = append(b, htmlFooter...)
	s.buf.Reset()

	_, err := s.w.Write(b)
	return err
}

// NewSink returns the Sink for the given mode
func NewSink(w io.Writer, m Mode) Sink {
	if m == StyledDocument {
		return NewHTMLSink(w)
	}
	return NewTextSink(w)
}
