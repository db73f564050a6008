package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
)

func at(d, h, m int) time.Time {
	return time.Date(2026, 5, d, h, m, 0, 0, time.Local)
}

func TestNewMemory(t *testing.T) {
	archive, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = archive.Close() }()

	if archive == nil {
		t.Error("NewMemory() returned nil archive")
	}
}

func TestArchive_AppendAndRange(t *testing.T) {
	archive, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = archive.Close() }()

	ctx := context.Background()
	records := []domain.LogEntry{
		domain.NewLogEntry(at(1, 9, 0), "Task 1", domain.ActionStartWork, 0),
		domain.NewLogEntry(at(1, 9, 25), "Task 1", domain.ActionEndWork, 1500),
		domain.NewLogEntry(at(1, 9, 25), "Task 1", domain.ActionStartBreak, 0),
		domain.NewLogEntry(at(2, 10, 0), "Task 2", domain.ActionStartWork, 0),
	}
	for _, r := range records {
		if err := archive.Append(ctx, r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	tests := []struct {
		name    string
		from    time.Time
		to      time.Time
		actions []domain.Action
	}{
		{"whole first day", at(1, 0, 0), at(2, 0, 0), []domain.Action{domain.ActionStartWork, domain.ActionEndWork, domain.ActionStartBreak}},
		{"end is exclusive", at(1, 9, 0), at(1, 9, 25), []domain.Action{domain.ActionStartWork}},
		{"second day", at(2, 0, 0), at(3, 0, 0), []domain.Action{domain.ActionStartWork}},
		{"empty", at(4, 0, 0), at(5, 0, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := archive.Range(ctx, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Range() error = %v", err)
			}
			if len(got) != len(tt.actions) {
				t.Fatalf("Range() returned %d events, want %d", len(got), len(tt.actions))
			}
			for i, want := range tt.actions {
				if got[i].Action != want {
					t.Errorf("event %d action = %v, want %v", i, got[i].Action, want)
				}
			}
		})
	}
}

func TestArchive_PreservesFields(t *testing.T) {
	archive, _ := NewMemory()
	defer func() { _ = archive.Close() }()
	ctx := context.Background()

	want := domain.NewLogEntry(at(3, 14, 5), "Deep work", domain.ActionPause, 421)
	if err := archive.Append(ctx, want); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := archive.Range(ctx, at(3, 0, 0), at(4, 0, 0))
	if err != nil || len(got) != 1 {
		t.Fatalf("Range() = %v, %v", got, err)
	}
	if !got[0].Timestamp.Equal(want.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got[0].Timestamp, want.Timestamp)
	}
	if got[0].Task != want.Task || got[0].DurationSeconds != want.DurationSeconds {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestArchive_OpenEndedRangeKeepsZone(t *testing.T) {
	archive, _ := NewMemory()
	defer func() { _ = archive.Close() }()
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*60*60)
	recorded := time.Date(2026, 10, 18, 1, 30, 0, 0, tokyo)
	if err := archive.Append(ctx, domain.NewLogEntry(recorded, "Focus", domain.ActionStartWork, 0)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := archive.Range(ctx, time.Time{}, time.Date(2026, 10, 19, 0, 0, 0, 0, tokyo))
	if err != nil || len(got) != 1 {
		t.Fatalf("Range() = %v, %v", got, err)
	}
	if day := got[0].Day(); day != "2026-10-18" {
		t.Errorf("Day() = %s, want 2026-10-18", day)
	}
	if clock := got[0].Timestamp.Format("15:04"); clock != "01:30" {
		t.Errorf("clock time = %s, want 01:30", clock)
	}
}

func TestArchive_IDCollisionIsRetried(t *testing.T) {
	archive, err := open(":memory:")
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	defer func() { _ = archive.Close() }()

	ids := []string{"same", "same", "other"}
	archive.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := archive.Append(ctx, domain.NewLogEntry(at(1, 8, i), "A", domain.ActionReset, 0)); err != nil {
			t.Fatalf("Append() #%d error = %v", i, err)
		}
	}

	got, _ := archive.Range(ctx, at(1, 0, 0), at(2, 0, 0))
	if len(got) != 2 {
		t.Errorf("Range() returned %d events, want 2", len(got))
	}
}

func TestArchive_ReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	ctx := context.Background()

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := first.Append(ctx, domain.NewLogEntry(at(6, 7, 0), "A", domain.ActionStartWork, 0)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	_ = first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer func() { _ = second.Close() }()

	got, _ := second.Range(ctx, at(6, 0, 0), at(7, 0, 0))
	if len(got) != 1 {
		t.Errorf("Range() after reopen returned %d events, want 1", len(got))
	}
}
