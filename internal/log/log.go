// Package log wires slog for the converter: a JSON handler with a selectable
// destination, wrapped so that attributes attached to a context travel with
// every record logged under it. Jobs use this to stamp their file path onto
// everything they log without threading a logger around.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sbomkit/vex2pdf/internal/config"
)

type slogKeyT struct{}

var slogKey slogKeyT

// ContextHandler appends attributes stored in the record's context.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(handler slog.Handler) ContextHandler {
	return ContextHandler{
		Handler: handler,
	}
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if a, ok := ctx.Value(slogKey).([]slog.Attr); ok {
		r.AddAttrs(a...)
	}

	return h.Handler.Handle(ctx, r)
}

// ContextAttrs returns a context carrying the given attributes in addition
// to any already present.
func ContextAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	a, ok := ctx.Value(slogKey).([]slog.Attr)
	if !ok || a == nil {
		a = make([]slog.Attr, 0, len(attrs))
	}
	a = append(a, attrs...)
	return context.WithValue(ctx, slogKey, a)
}

// New builds the process logger. dst is one of the config.Log* destinations;
// verbose lowers the level to Debug.
func New(verbose bool, dst string) (*slog.Logger, error) {
	var w io.Writer
	switch dst {
	case config.LogStderr, "":
		w = os.Stderr
	case config.LogStdout:
		w = os.Stdout
	case config.LogDiscard:
		w = io.Discard
	default:
		return nil, fmt.Errorf("unknown log destination %q", dst)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	})
	return slog.New(NewContextHandler(base)), nil
}
