// Package logger writes verbose diagnostics for siteassist.
// Nothing is printed unless --verbose is set, which keeps the TUI's
// alternate screen clean; with it, each backend round trip is traced
// to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log lines. Tests use it to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// logf writes one line under the read lock when verbose.
func logf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, format, args...)
}

// Debug traces internal steps such as config paths and extraction sizes.
func Debug(format string, args ...any) {
	logf("[DEBUG] "+format+"\n", args...)
}

// Info reports a notable but expected event.
func Info(format string, args ...any) {
	logf("[INFO] "+format+"\n", args...)
}

// Warn reports a degraded path the command recovered from, like an
// unavailable activity log.
func Warn(format string, args ...any) {
	logf("[WARN] "+format+"\n", args...)
}

// Section opens a titled group of related lines.
func Section(name string) {
	logf("\n=== %s ===\n", name)
}

// Request logs one completed backend call. status is 0 when no response
// was received.
func Request(method, path string, status int, elapsed time.Duration) {
	elapsed = elapsed.Round(time.Millisecond)
	if status == 0 {
		logf("[HTTP] %s %s failed after %s\n", method, path, elapsed)
		return
	}
	logf("[HTTP] %s %s -> %d (%s)\n", method, path, status, elapsed)
}
