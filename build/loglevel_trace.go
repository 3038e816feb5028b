//go:build trace && !debug && !nolog
// +build trace,!debug,!nolog

package build

// LogLevel specifies a trace log level.
var LogLevel = "trace"
