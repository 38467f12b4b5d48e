package main

import (
	"io"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"

	"monkey/interpreter-go/pkg/driver"
)

// syncWriter adds the no-op Sync that logger.SyncWriter requires.
type syncWriter struct {
	io.Writer
}

func (syncWriter) Sync() error { return nil }

// newLogger writes to w, dropping messages below level.
func newLogger(w io.Writer, level string) slog.Logger {
	dst, ok := w.(logger.SyncWriter)
	if !ok {
		dst = syncWriter{w}
	}
	base := logger.NewFromOptions(&logger.Options{
		SyncWriter:   dst,
		DepthDelta:   3,
		IncludeDebug: level == driver.LogLevelDebug,
	})
	switch level {
	case driver.LogLevelWarning:
		return quietLogger{Logger: base, dropWarnings: false}
	case driver.LogLevelError:
		return quietLogger{Logger: base, dropWarnings: true}
	default:
		return base
	}
}

// quietLogger suppresses info (and optionally warning) output.
type quietLogger struct {
	slog.Logger
	dropWarnings bool
}

func (q quietLogger) Infof(format string, args ...interface{}) {}

func (q quietLogger) Warningf(format string, args ...interface{}) {
	if !q.dropWarnings {
		q.Logger.Warningf(format, args...)
	}
}
