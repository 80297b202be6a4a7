package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

// logger receives the tree's structural Debug records. It is replaced by
// setupLogger before any command runs.
var logger = slog.Default()

func setupLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var hopts slog.HandlerOptions
	switch strings.ToLower(level) {
	case "debug":
		hopts.Level = slog.LevelDebug
	case "info", "":
		hopts.Level = slog.LevelInfo
	case "warn":
		hopts.Level = slog.LevelWarn
	case "error":
		hopts.Level = slog.LevelError
	default:
		return nil, errors.Newf("unknown log level: %#v", level)
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text", "":
		handler = slog.NewTextHandler(w, &hopts)
	case "json":
		handler = slog.NewJSONHandler(w, &hopts)
	default:
		return nil, errors.Newf("invalid log format: %#v", format)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
