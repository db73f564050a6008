package domain

import "time"

// TimestampLayout is the local-time layout used in session log records.
const TimestampLayout = "2006-01-02T15:04:05"

// DayLayout names a session log day.
const DayLayout = "2006-01-02"

// LogEntry is one session log record.
type LogEntry struct {
	Timestamp       time.Time
	Task            string
	Action          Action
	DurationSeconds int
}

// NewLogEntry creates a record stamped at the given time, truncated to the second.
func NewLogEntry(at time.Time, task string, action Action, durationSeconds int) LogEntry {
	return LogEntry{
		Timestamp:       at.Truncate(time.Second),
		Task:            task,
		Action:          action,
		DurationSeconds: durationSeconds,
	}
}

// Day returns the calendar day the record belongs to.
func (e LogEntry) Day() string {
	return e.Timestamp.Format(DayLayout)
}
