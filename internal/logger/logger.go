// Package logger provides context-aware structured logging built on logrus.
// Commands attach a logger entry to their context; library packages retrieve
// it with G(ctx) so log fields accumulate along the call path.
package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// G is a convenience alias for GetLogger.
	G = GetLogger
	// L is the global fallback entry when no logger is present in context.
	L = logrus.NewEntry(newLogger())
)

type loggerKey struct{}

// WithLogger attaches a logger entry to the context.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry.WithContext(ctx))
}

// GetLogger returns the logger entry from the context, or the global entry
// when none is attached.
func GetLogger(ctx context.Context) *logrus.Entry {
	entry := ctx.Value(loggerKey{})
	if entry == nil {
		return L.WithContext(ctx)
	}
	return entry.(*logrus.Entry)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Formatter = &logrus.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	}
	// CLI output goes through the ui package; logging is diagnostics only.
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetLevel sets the log level for the global logger.
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	L.Logger.SetLevel(parsed)
	return nil
}

// SetFormat switches the global logger between text and json output.
func SetFormat(format string) {
	switch format {
	case "json":
		L.Logger.Formatter = &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		}
	default:
		L.Logger.Formatter = &logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		}
	}
}
