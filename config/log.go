// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"path/filepath"
	"slices"

	"github.com/btcsuite/btclog"
	"github.com/cellwallet/cellwallet/build"
	"github.com/cellwallet/cellwallet/chain"
	"github.com/cellwallet/cellwallet/dao"
	"github.com/cellwallet/cellwallet/wallet/txauthor"
)

// log is a logger that is initialized with no output filters.  This
// means the package will not perform any logging by default until the caller
// requests it.
var log btclog.Logger

// The default amount of logging is none.
func init() {
	DisableLog()
}

// DisableLog disables all library log output.  Logging output is disabled
// by default until UseLogger is called.
func DisableLog() {
	UseLogger(btclog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// Subsystems are the logging subsystem tags, in the order SetupLoggers
// creates them.
var Subsystems = []string{"CNFG", "TXAU", "DAO", "CHAN"}

func isSubsystem(tag string) bool {
	return slices.Contains(Subsystems, tag)
}

// SetupLoggers creates the logger of every subsystem from w and hands it to
// its package.
func SetupLoggers(w *build.RotatingLogWriter) {
	gen := w.GenSubLogger

	UseLogger(build.NewSubLogger("CNFG", gen))
	txauthor.UseLogger(build.NewSubLogger("TXAU", gen))
	dao.UseLogger(build.NewSubLogger("DAO", gen))
	chain.UseLogger(build.NewSubLogger("CHAN", gen))
}

// InitLogging sets up w according to c: the rotating log file under LogDir,
// when MaxLogFiles is positive, the subsystem loggers and their levels. A
// default config file Load could not read is then logged as a warning.
func (c *Config) InitLogging(w *build.RotatingLogWriter) error {
	if err := c.initLogging(w); err != nil {
		return err
	}

	if c.configFileErr != nil {
		log.Warnf("%v", c.configFileErr)
	}
	return nil
}

func (c *Config) initLogging(w *build.RotatingLogWriter) error {
	if c.MaxLogFiles > 0 {
		err := w.InitLogRotator(
			filepath.Join(c.LogDir, DefaultLogFilename),
			c.MaxLogFileSize*1024, c.MaxLogFiles,
		)
		if err != nil {
			return err
		}
	}

	SetupLoggers(w)

	level, levels, err := parseDebugLevel(c.DebugLevel)
	if err != nil {
		return err
	}
	if level != "" {
		w.SetLogLevels(level)
		return nil
	}

	w.SetLogLevels(DefaultLogLevel)
	for subsysID, logLevel := range levels {
		if err := w.SetLogLevel(subsysID, logLevel); err != nil {
			return err
		}
	}
	return nil
}
