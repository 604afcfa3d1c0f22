// Package logx contains a wrapper for github.com/sirupsen/logrus library.
// Provides named loggers configured from a single place.
//
// Configuration
//
// Call Configure with a Config once at startup. Loggers already handed out
// by Get are reconfigured in place. Without configuration all loggers
// print to stderr with info level.
package logx

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type (
	// Ptr is an alias for *logrus.Logger.
	Ptr = *logrus.Logger

	// V is an alias for logrus.Fields.
	V = logrus.Fields
)

var obj = &internal{
	config:  DefaultConfig,
	loggers: make(map[string]Ptr),
	files:   make(map[string]*os.File),
}

// Get a logger with the specified name.
func Get(name string) Ptr {
	return obj.get(name)
}

// Configure applies the config to all existing and future loggers.
func Configure(config Config) error {
	return obj.configure(config)
}

// Close releases log files opened by the loggers.
func Close() error {
	return obj.close()
}

type internal struct {
	config  Config
	loggers map[string]Ptr
	files   map[string]*os.File
	mu      sync.Mutex
}

func (i *internal) get(name string) Ptr {
	i.mu.Lock()
	defer i.mu.Unlock()
	if logger, ok := i.loggers[name]; ok {
		return logger
	}

	logger := logrus.New()
	if err := i.apply(name, logger); err != nil {
		logger.SetOutput(os.Stderr)
		logger.Warnf("logx: %s", err)
	}

	i.loggers[name] = logger
	return logger
}

func (i *internal) configure(config Config) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.config = config
	for name, logger := range i.loggers {
		if err := i.apply(name, logger); err != nil {
			return errors.Wrapf(err, "configure %s", name)
		}
	}

	return nil
}

func (i *internal) apply(name string, logger Ptr) error {
	config := i.config.get(name)
	level := logrus.InfoLevel
	if config.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(config.Level); err != nil {
			return errors.Wrapf(err, "parse level for %s", name)
		}
	}

	writers := make([]io.Writer, 0, len(config.Output))
	for _, output := range config.Output {
		writer, err := i.open(output)
		if err != nil {
			return errors.Wrapf(err, "open output %s", output)
		}

		writers = append(writers, writer)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(os.Stderr)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	logger.SetLevel(level)
	logger.SetFormatter(&format{name: name, color: config.Color})
	return nil
}

func (i *internal) open(output string) (io.Writer, error) {
	switch output {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	if file, ok := i.files[output]; ok {
		return file, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), os.ModePerm); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	i.files[output] = file
	return file, nil
}

func (i *internal) close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	var first error
	for path, file := range i.files {
		if err := file.Close(); err != nil && first == nil {
			first = err
		}

		delete(i.files, path)
	}

	return first
}
