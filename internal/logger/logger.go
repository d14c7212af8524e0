package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the process logger: JSON to stdout, debug level in the dev env.
func New(env string) *slog.Logger {
	return NewWriter(os.Stdout, env)
}

// NewWriter is New with an explicit destination. The REPL logs to stderr so
// that advisor replies on stdout stay readable.
func NewWriter(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
