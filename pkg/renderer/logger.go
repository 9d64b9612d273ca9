package renderer

import (
	"fmt"
	"io"

	"github.com/oneweekend/pathtracer/pkg/core"
)

// WriterLogger implements core.Logger on top of an io.Writer
type WriterLogger struct {
	w io.Writer
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
