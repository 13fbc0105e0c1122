// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger wraps zerolog for kwallet-extract diagnostics. Log output
// goes to stderr; stdout is reserved for the per-entry progress lines.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger embeds zerolog.Logger so the full zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// New returns a human-readable console logger writing to w. Debug events
// are emitted only when verbose is set.
func New(w io.Writer, verbose bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}
	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{l}
}

// Stderr returns New(os.Stderr, verbose).
func Stderr(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// Nop returns a Logger that discards everything. Use it in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
