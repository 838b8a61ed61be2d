package asciiimage

import (
	"errors"
	"fmt"
	"os"

	"github.com/bodgit/asciiimage/bmp"
	"github.com/bodgit/asciiimage/glyph"
	"github.com/bodgit/asciiimage/gray"
	"github.com/bodgit/asciiimage/render"
)

// ErrPathTooLong is returned for an input path longer than 127 bytes
var ErrPathTooLong = fmt.Errorf("%w: image path too long", bmp.ErrInvalidFormat)

// Exit codes returned by ExitCode
const (
	ExitOK = iota
	ExitFailure
	ExitInvalidFormat
	ExitIO
	ExitTruncated
	ExitAllocation
	ExitConfiguration
)

// ExitCode maps an error returned by this package to a process exit code
func ExitCode(err error) int {
	var pathErr *os.PathError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, bmp.ErrInvalidFormat):
		return ExitInvalidFormat
	case errors.Is(err, bmp.ErrTruncated):
		return ExitTruncated
	case errors.Is(err, gray.ErrTooLarge):
		return ExitAllocation
	case errors.Is(err, glyph.ErrUnsupportedDepth), errors.Is(err, render.ErrInvalidConfig):
		return ExitConfiguration
	case errors.As(err, &pathErr):
		return ExitIO
	default:
		return ExitFailure
	}
}
