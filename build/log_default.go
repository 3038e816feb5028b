//go:build !nolog && !stdlog
// +build !nolog,!stdlog

package build

// LoggingType is a log type that writes to the shared log backend.
const LoggingType = LogTypeDefault
