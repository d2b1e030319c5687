// Package report writes the timestamped divergence log that
// accompanies each processing run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
)

// Ensure LogFile implements the interface.
var _ driven.ReportSink = (*LogFile)(nil)

// LogFile appends timestamped lines to a plain-text log file, one
// message per line: "[2006-01-02 15:04:05] message".
type LogFile struct {
	mu   sync.Mutex
	file *os.File

	// now is overridable for tests.
	now func() time.Time
}

// Open opens (or creates) the log file for appending.
func Open(path string) (*LogFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &LogFile{file: f, now: time.Now}, nil
}

// Log appends one timestamped message.
func (l *LogFile) Log(message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] %s\n", l.now().Format("2006-01-02 15:04:05"), message)
	if _, err := l.file.WriteString(line); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *LogFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
