// Package logging builds the logrus loggers used by the parser and the
// query service.
//
// Usage:
//
//	log := logging.New("query", "info", "json")
//	log.WithField("channels", n).Info("dataset loaded")
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logrus logger for a named component writing to stderr.
// level is any logrus level name (default info); format is "json" or
// "text" (default).
func New(service, level, format string) *logrus.Entry {
	return NewWithWriter(os.Stderr, service, level, format)
}

// NewWithWriter is New with an explicit output.
func NewWithWriter(w io.Writer, service, level, format string) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(w)
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil || level == "" {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log.WithField("service", service)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *logrus.Entry {
	return NewWithWriter(io.Discard, "test", "panic", "text")
}
