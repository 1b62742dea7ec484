package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	std    = newDefault()
	output io.WriteCloser
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	// stdout carries answers and the MCP stdio stream, so logs never go there.
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// InitLog configures the process-wide logger. A nil opts keeps the defaults.
func InitLog(opts *Options) error {
	if opts == nil {
		return nil
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	mu.Lock()
	defer mu.Unlock()

	std.SetLevel(level)
	switch opts.Format {
	case FormatJSON:
		std.SetFormatter(&logrus.JSONFormatter{})
	default:
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: opts.DisableColor})
	}

	switch opts.OutputPath {
	case "", "stderr":
		std.SetOutput(os.Stderr)
	default:
		if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %q: %w", opts.OutputPath, err)
		}
		if output != nil {
			_ = output.Close()
		}
		output = f
		std.SetOutput(f)
	}
	return nil
}

// FlushLog releases the log file opened by InitLog, if any.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	if output != nil {
		_ = output.Close()
		output = nil
		std.SetOutput(os.Stderr)
	}
}

// SetOutput redirects log output. Used by tests and the interactive client.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }
func Info(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(format string, args ...interface{}) { std.Errorf(format, args...) }

// DebugX logs with a module field attached.
func DebugX(module, format string, args ...interface{}) {
	std.WithField("module", module).Debugf(format, args...)
}

func InfoX(module, format string, args ...interface{}) {
	std.WithField("module", module).Infof(format, args...)
}

func WarnX(module, format string, args ...interface{}) {
	std.WithField("module", module).Warnf(format, args...)
}

func ErrorX(module, format string, args ...interface{}) {
	std.WithField("module", module).Errorf(format, args...)
}
