package ai

import "sync/atomic"

// debugLoggingEnabled gates the per-tick debug logs of the engine.
// Checked with an atomic load so hot paths skip building log attributes.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging toggles engine debug logs. Called once from main after
// the log level is known.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether engine debug logs are on:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("attack started", "kind", kind)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
