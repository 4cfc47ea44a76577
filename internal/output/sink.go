// Package output delivers generated directives to where the operator will
// paste them from.
package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Sink receives the text of a generation.
type Sink interface {
	Write(ctx context.Context, text string) error
}

// WriterSink writes the text to an io.Writer, normally stdout.
type WriterSink struct {
	w io.Writer
}

// Ensure WriterSink implements Sink.
var _ Sink = (*WriterSink)(nil)

// NewWriterSink creates a new WriterSink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write writes text followed by a newline.
func (s *WriterSink) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
