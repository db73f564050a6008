package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
)

// memoryStore is an in-memory ports.SettingsStore.
type memoryStore struct {
	mu      sync.Mutex
	current domain.Settings
	saves   int
	err     error
}

func newMemoryStore(s domain.Settings) *memoryStore {
	return &memoryStore{current: s.Clone()}
}

func (m *memoryStore) Load() domain.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

func (m *memoryStore) Save(s domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.current = s.Clone()
	m.saves++
	return nil
}

func (m *memoryStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// recordingLog is an in-memory ports.SessionLogger and ports.SessionLogReader.
type recordingLog struct {
	mu      sync.Mutex
	entries []domain.LogEntry
	err     error
}

func (r *recordingLog) Append(ctx context.Context, e domain.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingLog) ReadDay(ctx context.Context, day time.Time) ([]domain.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.LogEntry
	for _, e := range r.entries {
		if e.Day() == day.Format(domain.DayLayout) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *recordingLog) all() []domain.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.LogEntry(nil), r.entries...)
}

func (r *recordingLog) actions() []domain.Action {
	var out []domain.Action
	for _, e := range r.all() {
		out = append(out, e.Action)
	}
	return out
}

func (r *recordingLog) count(action domain.Action) int {
	n := 0
	for _, a := range r.actions() {
		if a == action {
			n++
		}
	}
	return n
}

// recordingAlerter keeps every alert it receives.
type recordingAlerter struct {
	mu     sync.Mutex
	alerts []domain.Alert
}

func (r *recordingAlerter) Alert(a domain.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
}

func (r *recordingAlerter) all() []domain.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Alert(nil), r.alerts...)
}

var errDiskFull = errors.New("disk full")

func settingsWith(work, brk, long, cycles int) domain.Settings {
	return domain.Settings{
		Tasks: []domain.Task{
			{Name: "Focus", WorkDuration: work, BreakDuration: brk},
			{Name: "Review", WorkDuration: work * 2, BreakDuration: brk},
		},
		Pomodoro: domain.PomodoroSettings{CyclesBeforeLongBreak: cycles, LongBreakDuration: long},
	}
}

type engineFixture struct {
	engine  *Engine
	log     *recordingLog
	store   *memoryStore
	alerter *recordingAlerter
}

func newEngineFixture(t *testing.T, s domain.Settings) engineFixture {
	t.Helper()
	f := engineFixture{
		log:     &recordingLog{},
		store:   newMemoryStore(s),
		alerter: &recordingAlerter{},
	}
	f.engine = NewEngine(s, f.store, f.log)
	f.engine.SetAlerter(f.alerter)
	clock := time.Date(2026, 4, 2, 9, 0, 0, 0, time.Local)
	f.engine.SetClock(func() time.Time { return clock })
	t.Cleanup(f.engine.Close)
	return f
}

func (f engineFixture) tick(n int) {
	for i := 0; i < n; i++ {
		f.engine.Tick(context.Background())
	}
}
