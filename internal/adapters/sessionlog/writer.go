package sessionlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// Writer appends records to the file of the record's day. The open file is
// kept until a record for another day arrives.
type Writer struct {
	dir string

	mu   sync.Mutex
	day  string
	file *os.File
}

// Ensure Writer implements ports.SessionLogger.
var _ ports.SessionLogger = (*Writer)(nil)

// NewWriter creates a writer for the log directory. The directory is
// created on the first append.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Append writes one record as a single line.
func (w *Writer) Append(ctx context.Context, entry domain.LogEntry) error {
	line, err := json.Marshal(toRecord(entry))
	if err != nil {
		return fmt.Errorf("failed to encode log record: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.fileForLocked(entry)
	if err != nil {
		return err
	}
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("failed to write log record: %w", err)
	}
	return nil
}

// Close closes the open day file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) fileForLocked(entry domain.LogEntry) (*os.File, error) {
	day := entry.Day()
	if w.file != nil && w.day == day {
		return w.file, nil
	}
	if err := w.closeLocked(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(PathFor(w.dir, entry.Timestamp), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	w.file = f
	w.day = day
	return f, nil
}

func (w *Writer) closeLocked() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.day = ""
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
