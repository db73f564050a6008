// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// Engine owns the Pomodoro cycle: the countdown, the transition policy and
// the command handlers. Ticks and commands are serialized by one mutex, so a
// phase transition or a command always runs to completion before the next
// tick is processed.
//
// Only validation errors are returned to callers. Failures to write the
// session log or to persist settings go to the diagnostic logger.
type Engine struct {
	mu          sync.Mutex
	settings    domain.Settings
	state       domain.CycleState
	store       ports.SettingsStore
	sessionLog  ports.SessionLogger
	alerter     ports.Alerter
	logger      *slog.Logger
	now         func() time.Time
	subscribers []chan domain.Snapshot
	started     bool
	closed      bool
}

// Ensure Engine implements ports.TimerControl.
var _ ports.TimerControl = (*Engine)(nil)

// NewEngine creates an engine positioned at the start of a work period.
// store and sessionLog may be nil.
func NewEngine(settings domain.Settings, store ports.SettingsStore, sessionLog ports.SessionLogger) *Engine {
	settings = settings.Clone()
	settings.Normalize()
	return &Engine{
		settings:   settings,
		state:      domain.NewCycleState(settings),
		store:      store,
		sessionLog: sessionLog,
		alerter:    nopAlerter{},
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
}

// SetAlerter sets the receiver of notification and sound requests.
func (e *Engine) SetAlerter(alerter ports.Alerter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if alerter == nil {
		alerter = nopAlerter{}
	}
	e.alerter = alerter
}

// SetLogger sets the diagnostic logger.
func (e *Engine) SetLogger(logger *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if logger != nil {
		e.logger = logger
	}
}

// SetClock replaces the clock used to stamp log records.
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// Subscribe registers a new observer channel. Sends never block: an
// observer that falls behind misses snapshots. The channel is closed by Close.
func (e *Engine) Subscribe(buffer int) <-chan domain.Snapshot {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan domain.Snapshot, buffer)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch
	}
	e.subscribers = append(e.subscribers, ch)
	return ch
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Start records and announces the opening work period. Calling it again is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if e.started {
		return nil
	}
	e.started = true
	e.appendLocked(ctx, e.state.Period.StartAction(), 0)
	e.alerter.Alert(domain.PeriodStartAlert("", e.state.Period, e.settings))
	e.logger.Info("engine started", "task", e.settings.CurrentTask().Name, "period", e.state.Period)
	e.emitLocked()
	return nil
}

// Tick advances the countdown by one second. A paused engine ignores it.
// When the countdown runs out the phase-end transition runs before Tick returns.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state.Paused {
		return
	}
	if e.state.Tick() {
		e.endPeriodLocked(ctx)
	}
	e.emitLocked()
}

// endPeriodLocked logs the finished period, moves to the next one, logs its
// start and requests the alert for it.
func (e *Engine) endPeriodLocked(ctx context.Context) {
	ended := e.state.Period
	e.appendLocked(ctx, ended.EndAction(), e.state.ElapsedSeconds)

	started := e.state.Advance(e.settings)
	e.appendLocked(ctx, started.StartAction(), 0)
	e.alerter.Alert(domain.PeriodStartAlert(ended, started, e.settings))

	e.logger.Info("period changed",
		"from", ended,
		"to", started,
		"cycle_count", e.state.PomodoroCycleCount,
	)
}

// TogglePause pauses or resumes the countdown and returns the new paused flag.
func (e *Engine) TogglePause(ctx context.Context) (bool, error) {
	if err := e.lockOpen(); err != nil {
		return false, err
	}
	defer e.mu.Unlock()

	e.state.Paused = !e.state.Paused
	action := domain.ActionResume
	if e.state.Paused {
		action = domain.ActionPause
	}
	e.appendLocked(ctx, action, e.state.ElapsedSeconds)
	e.alerter.Alert(domain.PauseAlert(e.state.Paused))
	e.emitLocked()
	return e.state.Paused, nil
}

// Reset rewinds the current period to its full length and unpauses.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	e.state.Restart(e.settings)
	e.state.Paused = false
	e.appendLocked(ctx, domain.ActionReset, 0)
	e.alerter.Alert(domain.ResetAlert())
	e.persistLocked()
	e.emitLocked()
	return nil
}

// ChangeTask selects the task with the given name. When no task has that
// name, the current task is renamed instead.
func (e *Engine) ChangeTask(ctx context.Context, name string) error {
	name, err := domain.NormalizeTaskName(name)
	if err != nil {
		return err
	}
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if idx := e.settings.TaskIndex(name); idx >= 0 {
		e.selectLocked(ctx, idx)
		return nil
	}

	e.settings.Tasks[e.settings.CurrentTaskIndex].Name = name
	e.appendLocked(ctx, domain.ActionUpdateTaskName, 0)
	e.alerter.Alert(domain.TaskAlert(name))
	e.persistLocked()
	e.emitLocked()
	return nil
}

// SelectTask selects a task by its position in the task list.
func (e *Engine) SelectTask(ctx context.Context, index int) error {
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.settings.Tasks) {
		return domain.ErrTaskNotFound
	}
	e.selectLocked(ctx, index)
	return nil
}

func (e *Engine) selectLocked(ctx context.Context, index int) {
	before := e.settings.PhaseSeconds(e.state.Period)
	e.settings.CurrentTaskIndex = index
	e.restartIfChangedLocked(before)

	e.appendLocked(ctx, domain.ActionUpdateTask, 0)
	e.alerter.Alert(domain.TaskAlert(e.settings.CurrentTask().Name))
	e.persistLocked()
	e.emitLocked()
}

// SetWorkDuration changes the current task's work duration. A running work
// period restarts at the new length.
func (e *Engine) SetWorkDuration(ctx context.Context, minutes int) error {
	if err := domain.CheckPositive(minutes); err != nil {
		return err
	}
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	e.settings.Tasks[e.settings.CurrentTaskIndex].WorkDuration = minutes
	if e.state.Period == domain.PeriodWork {
		e.state.Restart(e.settings)
	}
	e.appendLocked(ctx, domain.ActionUpdateWorkDuration, 0)
	e.alerter.Alert(domain.WorkDurationAlert(minutes))
	e.persistLocked()
	e.emitLocked()
	return nil
}

// SetBreakDuration changes the current task's break duration. A running
// short break restarts at the new length.
func (e *Engine) SetBreakDuration(ctx context.Context, minutes int) error {
	if err := domain.CheckPositive(minutes); err != nil {
		return err
	}
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	e.settings.Tasks[e.settings.CurrentTaskIndex].BreakDuration = minutes
	if e.state.Period == domain.PeriodShortBreak {
		e.state.Restart(e.settings)
	}
	e.appendLocked(ctx, domain.ActionUpdateBreakDuration, 0)
	e.alerter.Alert(domain.BreakDurationAlert(minutes))
	e.persistLocked()
	e.emitLocked()
	return nil
}

// SetLongBreakDuration changes the long break length. A long break already
// in progress keeps its countdown.
func (e *Engine) SetLongBreakDuration(ctx context.Context, minutes int) error {
	if err := domain.CheckPositive(minutes); err != nil {
		return err
	}
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	e.settings.Pomodoro.LongBreakDuration = minutes
	e.appendLocked(ctx, domain.ActionUpdateLongBreakDuration, 0)
	e.alerter.Alert(domain.LongBreakDurationAlert(minutes))
	e.persistLocked()
	e.emitLocked()
	return nil
}

// SetCyclesBeforeLongBreak changes the long-break threshold. The completed
// cycle count is kept and compared against the new threshold at the next
// work period end.
func (e *Engine) SetCyclesBeforeLongBreak(ctx context.Context, cycles int) error {
	if err := domain.CheckPositive(cycles); err != nil {
		return err
	}
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	e.settings.Pomodoro.CyclesBeforeLongBreak = cycles
	e.appendLocked(ctx, domain.ActionUpdateCyclesBeforeLongBreak, 0)
	e.alerter.Alert(domain.CyclesAlert(cycles))
	e.persistLocked()
	e.emitLocked()
	return nil
}

// UpdateSettings renames the current task and sets both of its durations.
// The active work or short break restarts only if its length changed.
func (e *Engine) UpdateSettings(ctx context.Context, name string, workMinutes, breakMinutes int) error {
	task, err := domain.NewTask(name, workMinutes, breakMinutes)
	if err != nil {
		return err
	}
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if idx := e.settings.TaskIndex(task.Name); idx >= 0 && idx != e.settings.CurrentTaskIndex {
		return domain.ErrDuplicateTask
	}

	before := e.settings.PhaseSeconds(e.state.Period)
	e.settings.Tasks[e.settings.CurrentTaskIndex] = task
	e.restartIfChangedLocked(before)

	e.appendLocked(ctx, domain.ActionUpdateSettings, 0)
	e.alerter.Alert(domain.SettingsAlert())
	e.persistLocked()
	e.emitLocked()
	return nil
}

// AddTask appends a task to the list without selecting it. It is not
// recorded in the session log.
func (e *Engine) AddTask(ctx context.Context, name string, workMinutes, breakMinutes int) error {
	task, err := domain.NewTask(name, workMinutes, breakMinutes)
	if err != nil {
		return err
	}
	if err := e.lockOpen(); err != nil {
		return err
	}
	defer e.mu.Unlock()

	if e.settings.TaskIndex(task.Name) >= 0 {
		return domain.ErrDuplicateTask
	}
	e.settings.Tasks = append(e.settings.Tasks, task)
	e.alerter.Alert(domain.TaskAddedAlert(task.Name))
	e.persistLocked()
	e.emitLocked()
	return nil
}

// AnnounceStats sends a notification carrying the given totals.
func (e *Engine) AnnounceStats(stats domain.DailyStats) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.alerter.Alert(domain.StatsAlert(stats))
}

// Close stops accepting ticks and commands and closes all observer channels.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for _, ch := range e.subscribers {
		close(ch)
	}
	e.subscribers = nil
	e.logger.Info("engine closed")
}

// lockOpen takes the lock, or returns ErrEngineClosed without holding it.
func (e *Engine) lockOpen() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return domain.ErrEngineClosed
	}
	return nil
}

// restartIfChangedLocked restarts the active period when its configured
// length differs from before.
func (e *Engine) restartIfChangedLocked(before int) {
	if e.settings.PhaseSeconds(e.state.Period) != before {
		e.state.Restart(e.settings)
	}
}

func (e *Engine) appendLocked(ctx context.Context, action domain.Action, durationSeconds int) {
	if e.sessionLog == nil {
		return
	}
	entry := domain.NewLogEntry(e.now(), e.settings.CurrentTask().Name, action, durationSeconds)
	if err := e.sessionLog.Append(ctx, entry); err != nil {
		e.logger.Warn("failed to append session log", "action", action, "error", err)
	}
}

func (e *Engine) persistLocked() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.settings.Clone()); err != nil {
		e.logger.Warn("failed to save settings", "error", err)
	}
}

func (e *Engine) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		State:    e.state,
		Task:     e.settings.CurrentTask(),
		Settings: e.settings.Clone(),
		Closed:   e.closed,
	}
}

func (e *Engine) emitLocked() {
	if len(e.subscribers) == 0 {
		return
	}
	snap := e.snapshotLocked()
	for _, ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

type nopAlerter struct{}

func (nopAlerter) Alert(domain.Alert) {}
