package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger. The terminal belongs to the UI, so
// output goes to LogConfig.File; with no file configured everything is
// discarded. The returned close func is never nil.
func NewLogger(c LogConfig) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, &Error{Key: "log.level", Err: err}
	}

	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
			return nil, nil, &Error{Key: "log.file", Err: fmt.Errorf("mkdir log dir: %w", err)}
		}
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, &Error{Key: "log.file", Err: err}
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "situation",
	})
	return logger, closeFn, nil
}
