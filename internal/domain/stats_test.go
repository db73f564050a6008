package domain

import (
	"testing"
	"time"
)

func entries(actions ...interface{}) []LogEntry {
	var out []LogEntry
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	for i := 0; i < len(actions); i += 2 {
		out = append(out, NewLogEntry(at, "Task", actions[i].(Action), actions[i+1].(int)))
		at = at.Add(time.Minute)
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		entries   []LogEntry
		wantWork  int
		wantBreak int
	}{
		{
			name:      "work then break",
			entries:   entries(ActionStartWork, 0, ActionEndWork, 1500, ActionStartBreak, 0, ActionEndBreak, 300),
			wantWork:  1500,
			wantBreak: 300,
		},
		{
			name:     "pause closes work interval",
			entries:  entries(ActionStartWork, 0, ActionPause, 600, ActionResume, 600, ActionEndWork, 1500),
			wantWork: 600,
		},
		{
			name:     "reset closes work interval",
			entries:  entries(ActionStartWork, 0, ActionReset, 0),
			wantWork: 0,
		},
		{
			name:    "long break is not counted",
			entries: entries(ActionStartLongBreak, 0, ActionEndLongBreak, 900),
		},
		{
			name:      "short break after long break",
			entries:   entries(ActionStartLongBreak, 0, ActionEndLongBreak, 900, ActionStartWork, 0, ActionEndWork, 1500, ActionStartBreak, 0, ActionEndBreak, 300),
			wantWork:  1500,
			wantBreak: 300,
		},
		{
			name:    "end without start is ignored",
			entries: entries(ActionEndWork, 1500, ActionEndBreak, 300),
		},
		{
			name:     "updates are ignored",
			entries:  entries(ActionStartWork, 0, ActionUpdateTask, 0, ActionUpdateSettings, 0, ActionEndWork, 60),
			wantWork: 60,
		},
		{
			name:    "end break does not close work",
			entries: entries(ActionStartWork, 0, ActionEndBreak, 300),
		},
		{
			name:    "empty log",
			entries: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work, brk := Aggregate(tt.entries)
			if work != tt.wantWork {
				t.Errorf("work = %d, want %d", work, tt.wantWork)
			}
			if brk != tt.wantBreak {
				t.Errorf("break = %d, want %d", brk, tt.wantBreak)
			}
		})
	}
}

func TestAggregateDay_Formatting(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	stats := AggregateDay(day, entries(ActionStartWork, 0, ActionEndWork, 1500, ActionStartBreak, 0, ActionEndBreak, 300))

	if got := stats.WorkTotal(); got != "00:25:00" {
		t.Errorf("WorkTotal() = %q, want 00:25:00", got)
	}
	if got := stats.BreakTotal(); got != "00:05:00" {
		t.Errorf("BreakTotal() = %q, want 00:05:00", got)
	}
	if stats.Entries != 4 {
		t.Errorf("Entries = %d, want 4", stats.Entries)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{1500, "25:00"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatTotal(t *testing.T) {
	if got := FormatTotal(300); got != "00:05:00" {
		t.Errorf("FormatTotal(300) = %q", got)
	}
	if got := FormatTotal(90061); got != "25:01:01" {
		t.Errorf("FormatTotal(90061) = %q", got)
	}
}
