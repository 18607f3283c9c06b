// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the server. Request handlers and workers
// take their logger from the context, so every line carries the trace id or
// worker name attached upstream.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger; use it by pointer.
type Logger struct {
	zerolog.Logger
}

var setupOnce sync.Once

// setup configures zerolog package globals. They are process-wide, so it
// runs once.
func setup() {
	setupOnce.Do(func() {
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

// NewLogger returns a JSON logger on stdout tagged with role.
func NewLogger(role string) *Logger {
	return New(role, os.Stdout)
}

// New returns a JSON logger writing to w. Entries carry role, a timestamp
// and the calling function. The level starts at debug; see [Logger.WithLevel].
func New(role string, w io.Writer) *Logger {
	setup()

	l := zerolog.New(w).
		Level(zerolog.DebugLevel).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// WithLevel returns a copy of l filtered at level ("debug", "info", "warn",
// "error"). An empty level keeps the current one.
func (l *Logger) WithLevel(level string) (*Logger, error) {
	if level == "" {
		return l, nil
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return &Logger{l.Level(lvl)}, nil
}

// Nop discards everything. Tests use it.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest is [FromContext] for r's context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached with WithContext. Without one it
// returns a disabled logger, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// MaskEmail hides the local part of an address for log output:
// "dana.levi@example.org" becomes "d***@example.org". Anything that does not
// look like an address is fully masked.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "***"
	}

	return local[:1] + "***@" + domain
}
