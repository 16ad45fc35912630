// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type ctxKey string

const (
	slogFields ctxKey = "slog_fields"

	logLevelEnvKey     = "LOG_LEVEL"
	logAddSourceEnvKey = "LOG_ADD_SOURCE"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the context handler in the chain
func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the context handler in the chain
func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		attrs := make([]slog.Attr, 0, len(v)+1)
		attrs = append(attrs, v...)
		attrs = append(attrs, attr)
		return context.WithValue(parent, slogFields, attrs)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

func level(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitStructureLogConfig sets the structured JSON logger as the default slog logger
func InitStructureLogConfig() slog.Handler {
	addSource, _ := strconv.ParseBool(os.Getenv(logAddSourceEnvKey))

	opts := &slog.HandlerOptions{
		Level:     level(os.Getenv(logLevelEnvKey)),
		AddSource: addSource,
	}

	h := contextHandler{Handler: slog.NewJSONHandler(os.Stdout, opts)}
	slog.SetDefault(slog.New(h))

	return h
}
