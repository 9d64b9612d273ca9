package renderer

import (
	"bytes"
	"testing"
)

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf)
	logger.Printf("Tiles remaining: %d\n", 3)

	if buf.String() != "Tiles remaining: 3\n" {
		t.Errorf("Unexpected log output %q", buf.String())
	}

	// NopLogger must accept anything without panicking
	NopLogger{}.Printf("%s %d", "ignored", 1)
}
