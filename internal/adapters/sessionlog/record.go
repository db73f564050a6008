// Package sessionlog writes and reads the append-only daily session log:
// one JSON object per line, one file per calendar day.
package sessionlog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
)

// record is the on-disk layout of one log line.
type record struct {
	Timestamp       string `json:"timestamp"`
	Task            string `json:"task"`
	Action          string `json:"action"`
	DurationSeconds int    `json:"duration_seconds"`
}

func toRecord(e domain.LogEntry) record {
	return record{
		Timestamp:       e.Timestamp.Format(domain.TimestampLayout),
		Task:            e.Task,
		Action:          string(e.Action),
		DurationSeconds: e.DurationSeconds,
	}
}

func (r record) entry(loc *time.Location) (domain.LogEntry, error) {
	ts, err := time.ParseInLocation(domain.TimestampLayout, r.Timestamp, loc)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("invalid timestamp %q: %w", r.Timestamp, err)
	}
	return domain.LogEntry{
		Timestamp:       ts,
		Task:            r.Task,
		Action:          domain.Action(r.Action),
		DurationSeconds: r.DurationSeconds,
	}, nil
}

// FileName returns the log file name for a day.
func FileName(day time.Time) string {
	return "log_" + day.Format(domain.DayLayout) + ".jsonl"
}

// PathFor returns the log file path for a day under dir.
func PathFor(dir string, day time.Time) string {
	return filepath.Join(dir, FileName(day))
}
