// Package logging configures logrus for textseal and provides a small
// helper that carries standard fields. Nothing secret is ever logged:
// callers pass lengths, profile names and entry names only.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. An unknown level falls back
// to warn.
func Setup(level string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	logrus.SetLevel(lvl)
}

// Logger is a logrus entry with package and function fields
type Logger struct {
	fields logrus.Fields
}

// New creates a logger for the given package and function
func New(pkg, function string) *Logger {
	return &Logger{
		fields: logrus.Fields{
			"package":  pkg,
			"function": function,
		},
	}
}

// WithField adds a custom field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	l.fields[key] = value
	return l
}

// WithError adds error information to the logger
func (l *Logger) WithError(err error, operation string) *Logger {
	l.fields["error"] = err.Error()
	l.fields["operation"] = operation
	return l
}

func (l *Logger) Debug(message string) {
	logrus.WithFields(l.fields).Debug(message)
}

func (l *Logger) Info(message string) {
	logrus.WithFields(l.fields).Info(message)
}

func (l *Logger) Warn(message string) {
	logrus.WithFields(l.fields).Warn(message)
}

func (l *Logger) Error(message string) {
	logrus.WithFields(l.fields).Error(message)
}

// Fields returns a copy of the logger's fields
func (l *Logger) Fields() logrus.Fields {
	out := make(logrus.Fields, len(l.fields))
	for k, v := range l.fields {
		out[k] = v
	}
	return out
}
