// Package logging provides the shared diagnostic sink. Errors and trace
// events are appended to a log file as structured JSON entries; nothing is
// ever surfaced on the display region itself.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "echoline.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logger       *logrus.Logger
)

func sink() *logrus.Logger {
	if logger != nil {
		return logger
	}
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		l.SetOutput(os.Stderr)
	} else {
		l.SetOutput(f)
	}
	logger = l
	return l
}

// Error writes an error to the shared log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	sink().WithField("event", "error").Error(err.Error())
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload map[string]interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}
	sink().WithField("event", event).WithFields(logrus.Fields(payload)).Info("trace")
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	logger = nil
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
