package domain

import (
	"fmt"
	"time"
)

// DailyStats holds the work and break totals folded from one day's log.
type DailyStats struct {
	Date         time.Time
	WorkSeconds  int
	BreakSeconds int
	Entries      int
}

// WorkTotal formats the work total as HH:MM:SS.
func (d DailyStats) WorkTotal() string {
	return FormatTotal(d.WorkSeconds)
}

// BreakTotal formats the break total as HH:MM:SS.
func (d DailyStats) BreakTotal() string {
	return FormatTotal(d.BreakSeconds)
}

type statsCursor int

const (
	cursorUnknown statsCursor = iota
	cursorWork
	cursorBreak
)

// Aggregate folds an ordered list of log entries into work and break totals.
// A START action opens a work or break interval; END_WORK, PAUSE and RESET
// close an open work interval and END_BREAK closes an open break interval.
// Closing adds the record's duration to the matching total. END_LONG_BREAK
// closes nothing, so long breaks are not part of the break total.
func Aggregate(entries []LogEntry) (workSeconds, breakSeconds int) {
	cursor := cursorUnknown
	for _, e := range entries {
		switch e.Action {
		case ActionStartWork:
			cursor = cursorWork
		case ActionStartBreak, ActionStartLongBreak:
			cursor = cursorBreak
		case ActionEndWork, ActionPause, ActionReset:
			if cursor == cursorWork {
				workSeconds += e.DurationSeconds
				cursor = cursorUnknown
			}
		case ActionEndBreak:
			if cursor == cursorBreak {
				breakSeconds += e.DurationSeconds
				cursor = cursorUnknown
			}
		}
	}
	return workSeconds, breakSeconds
}

// AggregateDay folds one day's entries into DailyStats.
func AggregateDay(day time.Time, entries []LogEntry) DailyStats {
	work, brk := Aggregate(entries)
	return DailyStats{
		Date:         day,
		WorkSeconds:  work,
		BreakSeconds: brk,
		Entries:      len(entries),
	}
}

// FormatClock formats seconds as MM:SS, or HH:MM:SS from one hour up.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatTotal formats seconds as HH:MM:SS.
func FormatTotal(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
