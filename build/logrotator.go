// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// ErrUnknownSubsystem is returned when setting the level of a subsystem that
// was never registered.
var ErrUnknownSubsystem = errors.New("unknown logging subsystem")

// RotatingLogWriter is a log writer that writes to stdout and, once
// InitLogRotator was called, to a rotating log file. It also keeps track of
// the subsystem loggers created from it so their levels can be changed
// together.
type RotatingLogWriter struct {
	backend *btclog.Backend

	pipe    *io.PipeWriter
	rotator *rotator.Rotator

	mu         sync.Mutex
	subLoggers map[string]btclog.Logger
}

// NewRotatingLogWriter returns a writer that logs to stdout only.
func NewRotatingLogWriter() *RotatingLogWriter {
	w := &RotatingLogWriter{
		subLoggers: make(map[string]btclog.Logger),
	}
	w.backend = btclog.NewBackend(w)
	return w
}

// InitLogRotator initializes the log file rotator to write logs to logFile
// and create roll files in the same directory. It must be called before
// anything is logged.
func (w *RotatingLogWriter) InitLogRotator(logFile string, maxLogFileSizeKB,
	maxLogFiles int) error {

	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return errors.Wrapf(err, "create log directory %s", logDir)
	}

	r, err := rotator.New(logFile, int64(maxLogFileSizeKB), false,
		maxLogFiles)
	if err != nil {
		return errors.Wrap(err, "create file rotator")
	}

	pr, pw := io.Pipe()
	go func() {
		if err := r.Run(pr); err != nil {
			fmt.Fprintf(os.Stderr, "log rotator stopped: %v\n", err)
		}
	}()

	w.rotator = r
	w.pipe = pw
	return nil
}

// Write writes b to stdout and the log file, if one is set up.
func (w *RotatingLogWriter) Write(b []byte) (int, error) {
	os.Stdout.Write(b)
	if w.pipe != nil {
		w.pipe.Write(b)
	}
	return len(b), nil
}

// GenSubLogger returns a logger for subsystem writing to the shared backend
// and registers it.
func (w *RotatingLogWriter) GenSubLogger(subsystem string) btclog.Logger {
	logger := w.backend.Logger(subsystem)
	w.RegisterSubLogger(subsystem, logger)
	return logger
}

// RegisterSubLogger records logger as the logger of subsystem.
func (w *RotatingLogWriter) RegisterSubLogger(subsystem string,
	logger btclog.Logger) {

	w.mu.Lock()
	defer w.mu.Unlock()

	w.subLoggers[subsystem] = logger
}

// SubLoggers returns the registered subsystem tags in sorted order.
func (w *RotatingLogWriter) SubLoggers() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	tags := make([]string, 0, len(w.subLoggers))
	for tag := range w.subLoggers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// SetLogLevel sets the level of one subsystem.
func (w *RotatingLogWriter) SetLogLevel(subsystem, level string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	logger, ok := w.subLoggers[subsystem]
	if !ok {
		return errors.Wrapf(ErrUnknownSubsystem, "%q", subsystem)
	}

	// Defaults to info if the log level is invalid.
	lvl, _ := btclog.LevelFromString(level)
	logger.SetLevel(lvl)
	return nil
}

// SetLogLevels sets the level of all registered subsystems.
func (w *RotatingLogWriter) SetLogLevels(level string) {
	for _, tag := range w.SubLoggers() {
		_ = w.SetLogLevel(tag, level)
	}
}

// Close flushes and closes the log file, if any.
func (w *RotatingLogWriter) Close() error {
	if w.pipe == nil {
		return nil
	}
	if err := w.pipe.Close(); err != nil {
		return err
	}
	return w.rotator.Close()
}
