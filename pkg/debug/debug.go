// Package debug provides conditional debug logging for lifeos.
//
// Debug logging is enabled by setting the LIFEOS_DEBUG environment
// variable. When enabled, messages are written to stderr with timestamps;
// when disabled (default), all debug functions are no-ops.
package debug

import (
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("LIFEOS_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[LIFEOS_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[LIFEOS_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming records how long an operation took.
func LogTiming(op string, elapsed time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %s", op, elapsed)
}
