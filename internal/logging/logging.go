package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const defaultLogFile = "assetgrid.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	verbose      bool
	logPath      = defaultLogFile
	out          io.Writer
	closer       io.Closer
	logger       *zerolog.Logger
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	if l := current(); l != nil {
		l.Error().Err(err).Msg("error")
	}
}

// Warn records a warning with optional structured fields.
func Warn(msg string, fields map[string]interface{}) {
	if l := current(); l != nil {
		l.Warn().Fields(fields).Msg(msg)
	}
}

// Info records an informational entry. Entries are dropped unless verbose
// logging is enabled.
func Info(msg string, fields map[string]interface{}) {
	if l := current(); l != nil {
		l.Info().Fields(fields).Msg(msg)
	}
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace calls are recorded.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// SetVerbose lowers the log level to include informational entries.
func SetVerbose(enabled bool) {
	mu.Lock()
	verbose = enabled
	logger = nil
	mu.Unlock()
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	l := current()
	if l == nil {
		return
	}
	entry := l.Log().Str("event", event)
	if payload != nil {
		entry = entry.Interface("payload", payload)
	}
	entry.Msg("")
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput redirects log entries to w instead of the log file. Passing nil
// restores file output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
	out = w
}

// Close releases the log file handle.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
}

func resetLocked() {
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	out = nil
	logger = nil
}

func current() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return logger
	}
	if out == nil {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
			return nil
		}
		out = f
		closer = f
	}
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	logger = &l
	return logger
}
