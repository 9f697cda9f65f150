// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/XJIeI5/calcengine/internal/config"
	"github.com/sirupsen/logrus"
)

var (
	standardLogger *logrus.Logger
	once           sync.Once
)

// StandardLogger returns the singleton logger instance
func StandardLogger() *logrus.Logger {
	once.Do(func() {
		standardLogger = logrus.New()
		standardLogger.SetFormatter(&logrus.TextFormatter{})
	})
	return standardLogger
}

// Init applies c to the standard logger. The returned func closes the log
// file, if one was opened.
func Init(c *config.Logger) (func(), error) {
	l := StandardLogger()

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	l.SetLevel(level)

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{})
	}

	var file *os.File
	switch c.Output {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "file":
		if c.OutputFile == "" {
			return nil, fmt.Errorf("logger output is file but output_file is empty")
		}
		if err := os.MkdirAll(filepath.Dir(c.OutputFile), 0o755); err != nil {
			return nil, err
		}
		file, err = os.OpenFile(c.OutputFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			return nil, err
		}
		l.SetOutput(file)
	case "discard":
		l.SetOutput(io.Discard)
	default:
		l.SetOutput(os.Stderr)
	}

	return func() {
		if file != nil {
			_ = file.Close()
		}
	}, nil
}
