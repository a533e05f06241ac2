// Package log prints optional diagnostics about pool sizing and dispatch.
// It is silent unless verbose logging is enabled.
package log

import (
	"log"
	"sync/atomic"
)

var verbose atomic.Bool

// EnableVerbose enables the printing of verbose diagnostics for the rest of
// the process lifetime.
func EnableVerbose() {
	verbose.Store(true)
}

// Verbosef prints to the standard logger provided by the log package if
// verbose logging is enabled. Otherwise, it does nothing.
func Verbosef(fmt string, v ...any) {
	if verbose.Load() {
		log.Printf(fmt, v...)
	}
}
