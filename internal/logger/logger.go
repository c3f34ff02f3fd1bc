// Package logger provides verbose logging for the se2460 CLI.
// When verbose mode is enabled via the --verbose flag, request and
// configuration diagnostics are printed to stderr. Normal command output
// never goes through this package.
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

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("DEBUG", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("INFO", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("WARN", format, args...)
}

// Request logs an outgoing HTTP request.
func Request(requestID, method, url string, authenticated bool) {
	auth := "anonymous"
	if authenticated {
		auth = "with credential"
	}
	logf("HTTP", "%s %s %s (%s)", requestID, method, url, auth)
}

// Response logs the status of an HTTP response.
func Response(requestID string, status, size int, elapsed time.Duration) {
	logf("HTTP", "%s <- %d, %d bytes in %s", requestID, status, size, elapsed.Round(time.Millisecond))
}

// Mask shortens a secret for display, keeping only its ends.
func Mask(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
