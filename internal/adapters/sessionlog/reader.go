package sessionlog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// Reader reads day files back. Lines that cannot be decoded are skipped.
type Reader struct {
	dir    string
	logger *slog.Logger
}

// Ensure Reader implements ports.SessionLogReader.
var _ ports.SessionLogReader = (*Reader)(nil)

// NewReader creates a reader for the log directory. logger may be nil.
func NewReader(dir string, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{dir: dir, logger: logger}
}

// ReadDay returns the records of one day in file order. A day without a
// file has no records.
func (r *Reader) ReadDay(ctx context.Context, day time.Time) ([]domain.LogEntry, error) {
	path := PathFor(r.dir, day)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []domain.LogEntry
	br := bufio.NewReader(f)
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, tooLong, readErr := readLine(br, maxLineSize)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read log file: %w", readErr)
		}
		lineNo++

		line := strings.TrimSpace(string(raw))
		switch {
		case tooLong:
			r.logger.Warn("skipping oversized log line", "path", path, "line", lineNo, "limit", maxLineSize)
		case line != "":
			if entry, err := decodeLine(line, day.Location()); err != nil {
				r.logger.Warn("skipping malformed log line", "path", path, "line", lineNo, "error", err)
			} else {
				entries = append(entries, entry)
			}
		}

		if readErr != nil {
			return entries, nil
		}
	}
}

// maxLineSize bounds one record; longer lines are skipped, not fatal.
const maxLineSize = 1 << 20

func decodeLine(line string, loc *time.Location) (domain.LogEntry, error) {
	var rec record
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return domain.LogEntry{}, err
	}
	return rec.entry(loc)
}

// readLine returns the next line. A line longer than limit is consumed and
// reported through tooLong with no content.
func readLine(br *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		var chunk []byte
		chunk, err = br.ReadSlice('\n')
		if !tooLong && len(line)+len(chunk) > limit {
			tooLong = true
			line = nil
		}
		if !tooLong {
			line = append(line, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, err
	}
}

// Days lists the days that have a log file, oldest first.
func (r *Reader) Days(loc *time.Location) ([]time.Time, error) {
	matches, err := filepath.Glob(filepath.Join(r.dir, "log_*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}

	var days []time.Time
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), "log_"), ".jsonl")
		day, err := time.ParseInLocation(domain.DayLayout, name, loc)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}
