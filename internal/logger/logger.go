package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	// WithField возвращает логгер, добавляющий поле к каждой записи
	WithField(key string, value interface{}) Logger
}

type logger struct {
	*logrus.Entry
}

func New(level string) Logger {
	return NewWithOutput(level, os.Stdout)
}

func NewWithOutput(level string, out io.Writer) Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(parseLevel(level))

	return &logger{logrus.NewEntry(log)}
}

// Discard используется в тестах, где вывод не нужен.
func Discard() Logger {
	return NewWithOutput("error", io.Discard)
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{l.Entry.WithField(key, value)}
}

func (l *logger) Info(args ...interface{}) {
	l.Entry.Info(args...)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.Entry.Infof(format, args...)
}

func (l *logger) Error(args ...interface{}) {
	l.Entry.Error(args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.Entry.Errorf(format, args...)
}

func (l *logger) Warn(args ...interface{}) {
	l.Entry.Warn(args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.Entry.Warnf(format, args...)
}

func (l *logger) Debug(args ...interface{}) {
	l.Entry.Debug(args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.Entry.Debugf(format, args...)
}

func (l *logger) Fatal(args ...interface{}) {
	l.Entry.Fatal(args...)
}

func (l *logger) Fatalf(format string, args ...interface{}) {
	l.Entry.Fatalf(format, args...)
}
