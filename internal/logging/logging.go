// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mithrel/kbreader/internal/config"
)

// New returns a logger configured by log.level and log.file. When
// toTerminal is false (the TUI owns the screen) and no file is configured,
// it writes to config.DefaultLogPath instead of stderr.
// The returned closer releases the log file, if any.
func New(v *viper.Viper, toTerminal bool) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, nil, fmt.Errorf("log.level: %w", err)
	}
	log.SetLevel(level)

	path := v.GetString("log.file")
	if path == "" && !toTerminal {
		path = config.DefaultLogPath()
	}
	if path == "" {
		log.SetOutput(os.Stderr)
		return log, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	log.SetOutput(f)
	return log, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
