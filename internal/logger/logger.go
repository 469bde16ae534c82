// Package logger writes diagnostics for gemctl to stderr.
//
// Debug, Info and Warn are only printed with --verbose. Progress and Error
// are always printed; they carry the messages a user waiting on a
// long-running operation needs to see. Command results never go through
// this package, so stdout stays machine readable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
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

// SetOutput sets the writer for all log lines. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Output returns the current log writer.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

func emit(always bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !always && !verbose {
		return
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}

// Debug prints request-level detail.
func Debug(format string, args ...any) {
	emit(false, "[DEBUG] ", format, args...)
}

// Section prints a section header.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints workflow milestones such as a started operation.
func Info(format string, args ...any) {
	emit(false, "[INFO] ", format, args...)
}

// Warn prints recoverable problems.
func Warn(format string, args ...any) {
	emit(false, "[WARN] ", format, args...)
}

// Progress prints a status line regardless of verbosity.
func Progress(format string, args ...any) {
	emit(true, "", format, args...)
}

// Error prints an error line regardless of verbosity.
func Error(format string, args ...any) {
	emit(true, "Error: ", format, args...)
}
