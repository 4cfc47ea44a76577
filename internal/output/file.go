package output

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// FileSink writes each generation to a file, replacing its contents.
type FileSink struct {
	filePath string
	logger   *zap.Logger

	mu       sync.Mutex
	checksum string
}

// Ensure FileSink implements Sink.
var _ Sink = (*FileSink)(nil)

// NewFileSink creates a new FileSink.
func NewFileSink(filePath string, logger *zap.Logger) *FileSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{filePath: filePath, logger: logger}
}

// Write replaces the file contents with text.
func (f *FileSink) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data := []byte(text)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	if err := os.WriteFile(f.filePath, data, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	sum := sha256.Sum256(data)
	f.checksum = hex.EncodeToString(sum[:])

	f.logger.Info("output written",
		zap.String("path", f.filePath),
		zap.String("checksum", f.checksum[:12]),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Checksum returns the sha256 of the last write, or "" before any write.
func (f *FileSink) Checksum() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checksum
}
