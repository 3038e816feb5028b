// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package config loads the wallet options from a configuration file and the
// command line.
package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/cellwallet/cellwallet/chain"
	"github.com/cellwallet/cellwallet/dao"
	"github.com/cellwallet/cellwallet/internal/cfgutil"
	"github.com/cellwallet/cellwallet/netparams"
	"github.com/cellwallet/cellwallet/wallet/txrules"
	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	DefaultConfigFilename = "cellwallet.conf"
	DefaultLogLevel       = "info"
	DefaultLogDirname     = "logs"
	DefaultLogFilename    = "cellwallet.log"
	DefaultMaxLogFiles    = 3
	DefaultMaxLogFileSize = 10

	// DefaultMaxWithdrawCells leaves room for a change output next to the
	// withdrawal requests.
	DefaultMaxWithdrawCells = txrules.MaxDaoOutputs - 1
)

// DefaultAppDir is the application home directory used when none is given.
var DefaultAppDir = cfgutil.CleanAndExpandPath("~/.cellwallet")

var (
	// ErrInvalidConfig is returned for option values that fail
	// validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNetworkMismatch is returned when a scripts file describes a
	// network other than the one explicitly selected.
	ErrNetworkMismatch = errors.New("scripts file network mismatch")
)

// Config holds the wallet options.
type Config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file (default <appdir>/cellwallet.conf)"`
	AppDir     string `short:"A" long:"appdir" description:"Application home directory"`

	Network     *cfgutil.ExplicitString `long:"network" description:"Network whose well-known scripts are used {mainnet, testnet}"`
	ScriptsFile string                  `long:"scripts" description:"YAML table of the well-known scripts of a custom network; takes precedence over --network"`

	FeeRate          uint64                `long:"feerate" description:"Fee rate in shannons per 1000 bytes"`
	MaxWithdraw      *cfgutil.CapacityFlag `long:"maxwithdraw" description:"Most CKB a single withdrawal request may release (0 for no limit)"`
	MaxWithdrawCells int                   `long:"maxwithdrawcells" description:"Most deposits a single withdrawal request may spend"`

	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogDir         string `long:"logdir" description:"Directory to log output"`
	MaxLogFiles    int    `long:"maxlogfiles" description:"Maximum logfiles to keep (0 to log to stdout only)"`
	MaxLogFileSize int    `long:"maxlogfilesize" description:"Maximum logfile size in MB"`

	PollInterval time.Duration `long:"pollinterval" description:"How often the status of a published transaction is polled"`
	PollTimeout  time.Duration `long:"polltimeout" description:"How long a published transaction may take to commit"`

	// Params are the well-known scripts selected by Network or
	// ScriptsFile. They are set by Load.
	Params *netparams.Params `no-flag:"true"`

	// configFileErr is why the default config file was not read. Load
	// runs before logging is set up, so InitLogging reports it.
	configFileErr error
}

// Default returns a config with default settings.
func Default() *Config {
	return &Config{
		AppDir:           DefaultAppDir,
		Network:          cfgutil.NewExplicitString(netparams.TestNetParams.Name),
		FeeRate:          txrules.DefaultFeeRatePerKB,
		MaxWithdraw:      cfgutil.NewCapacityFlag(0),
		MaxWithdrawCells: DefaultMaxWithdrawCells,
		DebugLevel:       DefaultLogLevel,
		MaxLogFiles:      DefaultMaxLogFiles,
		MaxLogFileSize:   DefaultMaxLogFileSize,
		PollInterval:     chain.DefaultPollInterval,
		PollTimeout:      chain.DefaultPollTimeout,
	}
}

func newParser(cfg *Config) *flags.Parser {
	return flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
}

// Load initializes and parses the config using a config file and the command
// line arguments args.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//  5. Validate the result and resolve the network parameters
//
// A missing config file is only an error when it was named explicitly.
// Command line options always take precedence.
func Load(args []string) (*Config, []string, error) {
	// Pre-parse the command line options to see if an alternative config
	// file or application directory was specified.
	preCfg := Default()
	if _, err := newParser(preCfg).ParseArgs(args); err != nil {
		return nil, nil, err
	}

	configFile := preCfg.ConfigFile
	if configFile == "" {
		configFile = filepath.Join(preCfg.AppDir, DefaultConfigFilename)
	}
	configFile = cfgutil.CleanAndExpandPath(configFile)

	// Load additional config from file.
	cfg := Default()
	parser := newParser(cfg)
	var configFileError error
	err := flags.NewIniParser(parser).ParseFile(configFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) || preCfg.ConfigFile != "" {
			return nil, nil, errors.Wrapf(err, "config file %s",
				configFile)
		}
		configFileError = err
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	// Keep the missing config file for InitLogging only once the final
	// command line parse succeeds.  This prevents the warning on help
	// messages and invalid options.
	cfg.configFileErr = configFileError

	return cfg, remainingArgs, nil
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	_, ok := btclog.LevelFromString(logLevel)
	return ok
}

// parseDebugLevel splits a debug level option into a level for all
// subsystems, when it has no delimiters, or per subsystem levels.
func parseDebugLevel(debugLevel string) (string, map[string]string,
	error) {

	if !strings.ContainsAny(debugLevel, ",=") {
		if !validLogLevel(debugLevel) {
			return "", nil, errors.Wrapf(ErrInvalidConfig, "the "+
				"specified debug level [%v] is invalid",
				debugLevel)
		}
		return debugLevel, nil, nil
	}

	levels := make(map[string]string)
	for _, pair := range strings.Split(debugLevel, ",") {
		subsysID, logLevel, found := strings.Cut(pair, "=")
		if !found {
			return "", nil, errors.Wrapf(ErrInvalidConfig, "the "+
				"specified debug level contains an invalid "+
				"subsystem/level pair [%v]", pair)
		}

		if !isSubsystem(subsysID) {
			return "", nil, errors.Wrapf(ErrInvalidConfig, "the "+
				"specified subsystem [%v] is invalid -- "+
				"supported subsystems %v", subsysID, Subsystems)
		}

		if !validLogLevel(logLevel) {
			return "", nil, errors.Wrapf(ErrInvalidConfig, "the "+
				"specified debug level [%v] is invalid",
				logLevel)
		}
		levels[subsysID] = logLevel
	}
	return "", levels, nil
}

// resolveParams selects the network parameters. A scripts file wins over the
// built in tables, but must describe the explicitly selected network if one
// was given.
func (c *Config) resolveParams() (*netparams.Params, error) {
	if c.ScriptsFile == "" {
		return netparams.ForNetwork(c.Network.Value)
	}

	params, err := netparams.LoadScripts(
		cfgutil.CleanAndExpandPath(c.ScriptsFile),
	)
	if err != nil {
		return nil, err
	}
	if c.Network.ExplicitlySet() && params.Name != c.Network.Value {
		return nil, errors.Wrapf(ErrNetworkMismatch, "scripts file "+
			"describes %q, network is %q", params.Name,
			c.Network.Value)
	}
	return params, nil
}

func (c *Config) validate() error {
	params, err := c.resolveParams()
	if err != nil {
		return err
	}
	c.Params = params

	if _, _, err := parseDebugLevel(c.DebugLevel); err != nil {
		return err
	}

	if c.MaxWithdrawCells < 1 ||
		c.MaxWithdrawCells >= txrules.MaxDaoOutputs {

		return errors.Wrapf(ErrInvalidConfig, "maxwithdrawcells %d "+
			"outside [1, %d]", c.MaxWithdrawCells,
			txrules.MaxDaoOutputs-1)
	}

	if c.PollInterval <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "pollinterval %v must "+
			"be positive", c.PollInterval)
	}
	if c.PollTimeout < c.PollInterval {
		return errors.Wrapf(ErrInvalidConfig, "polltimeout %v below "+
			"pollinterval %v", c.PollTimeout, c.PollInterval)
	}

	if c.MaxLogFiles < 0 {
		return errors.Wrapf(ErrInvalidConfig, "maxlogfiles %d is "+
			"negative", c.MaxLogFiles)
	}
	if c.MaxLogFileSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "maxlogfilesize %d must "+
			"be positive", c.MaxLogFileSize)
	}

	// Append the network name to the log directory so it is
	// "namespaced" per network.
	c.AppDir = cfgutil.CleanAndExpandPath(c.AppDir)
	if c.LogDir == "" {
		c.LogDir = filepath.Join(c.AppDir, DefaultLogDirname)
	}
	c.LogDir = filepath.Join(cfgutil.CleanAndExpandPath(c.LogDir),
		c.Params.Name)

	return nil
}

// Selection returns the deposit selection bounds of withdrawal requests.
func (c *Config) Selection() dao.Selection {
	maxAmount := c.MaxWithdraw.Shannons
	if maxAmount == 0 {
		maxAmount = math.MaxUint64
	}
	return dao.Selection{
		MaxAmount: maxAmount,
		MaxCells:  c.MaxWithdrawCells,
	}
}

// PublisherConfig returns the publisher settings for backend.
func (c *Config) PublisherConfig(backend chain.Backend) chain.PublisherConfig {
	return chain.PublisherConfig{
		Backend:      backend,
		PollInterval: c.PollInterval,
		Timeout:      c.PollTimeout,
	}
}
