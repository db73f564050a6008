package ports

import (
	"context"

	"github.com/xvierd/pomotray/internal/domain"
)

// TimerControl is the command surface of the running cycle engine.
// This is a driving port (called by the TUI and the MCP server).
type TimerControl interface {
	// Snapshot returns a copy of the current engine state.
	Snapshot() domain.Snapshot

	// Subscribe returns a channel receiving a snapshot after every change.
	Subscribe(buffer int) <-chan domain.Snapshot

	// TogglePause pauses or resumes the countdown and reports the new paused flag.
	TogglePause(ctx context.Context) (bool, error)

	// Reset restarts the current period.
	Reset(ctx context.Context) error

	// ChangeTask selects the task with the given name, or renames the
	// current task when no such task exists.
	ChangeTask(ctx context.Context, name string) error

	// SelectTask selects a task by its position in the task list.
	SelectTask(ctx context.Context, index int) error

	SetWorkDuration(ctx context.Context, minutes int) error
	SetBreakDuration(ctx context.Context, minutes int) error
	SetLongBreakDuration(ctx context.Context, minutes int) error
	SetCyclesBeforeLongBreak(ctx context.Context, cycles int) error

	// UpdateSettings renames the current task and sets both of its durations.
	UpdateSettings(ctx context.Context, name string, workMinutes, breakMinutes int) error

	// AddTask appends a task without selecting it.
	AddTask(ctx context.Context, name string, workMinutes, breakMinutes int) error

	// AnnounceStats sends a notification with the given totals.
	AnnounceStats(stats domain.DailyStats)
}

// StatsProvider computes session statistics from the log.
// This is a driven port (implemented by services).
type StatsProvider interface {
	// Today returns the totals of the current day.
	Today(ctx context.Context) (domain.DailyStats, error)
}

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}
