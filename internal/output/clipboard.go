package output

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// ErrClipboard marks a failed clipboard copy. Callers treat it as a warning:
// the output is still available from the other sinks.
var ErrClipboard = errors.New("copy failed")

// ClipboardSink copies the text to the system clipboard.
type ClipboardSink struct{}

// Ensure ClipboardSink implements Sink.
var _ Sink = ClipboardSink{}

// Write copies text to the clipboard.
func (ClipboardSink) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available", ErrClipboard)
	}
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboard, err)
	}
	return nil
}

// Multi writes to every sink in order. A clipboard failure does not stop
// the remaining sinks; it is returned once they have all run.
func Multi(ctx context.Context, text string, sinks ...Sink) error {
	var warn error
	for _, s := range sinks {
		err := s.Write(ctx, text)
		switch {
		case err == nil:
		case errors.Is(err, ErrClipboard):
			warn = err
		default:
			return err
		}
	}
	return warn
}
