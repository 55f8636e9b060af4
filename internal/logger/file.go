package logger

import (
	"fmt"
	"io"

	"gopkg.in/lumberjack.v3"
)

// FileConfig controls log file rotation.
type FileConfig struct {
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// DefaultFileConfig returns rotation settings for filename.
func DefaultFileConfig(filename string) FileConfig {
	return FileConfig{
		Filename:   filename,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// NewRotatingFile opens a size-rotated, compressed log file.
func NewRotatingFile(cfg FileConfig) (io.WriteCloser, error) {
	w, err := lumberjack.New(
		lumberjack.WithFileName(cfg.Filename),
		lumberjack.WithMaxBytes(int64(cfg.MaxSize*1024*1024)),
		lumberjack.WithMaxBackups(cfg.MaxBackups),
		lumberjack.WithMaxDays(cfg.MaxAge),
		lumberjack.WithCompress(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	return w, nil
}
