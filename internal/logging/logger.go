package logging

import (
	"io"
	"log/slog"
)

// New builds a text logger writing to w. Hosts usually pass os.Stderr so
// bin activity stays out of their stdout stream. Attrs keyed "error" are
// renamed "err" to match the runtime's own log fields.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a logger that discards everything. Bins built without
// WithLogger use it.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
