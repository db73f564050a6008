package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomotray/internal/ports"
)

// Timer runs the full-screen timer screen with Bubbletea.
type Timer struct {
	control ports.TimerControl
	opts    Options
	program *tea.Program
	mu      sync.Mutex
	wg      sync.WaitGroup
	extra   []tea.ProgramOption
}

// NewTimer creates a new TUI timer for the given engine.
func NewTimer(control ports.TimerControl, opts Options) *Timer {
	return &Timer{control: control, opts: opts}
}

// Run shows the timer and blocks until the user quits, the engine is
// closed or ctx is cancelled.
func (t *Timer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, t.control, t.opts)
	options := append([]tea.ProgramOption{tea.WithAltScreen()}, t.extra...)

	t.mu.Lock()
	t.program = tea.NewProgram(model, options...)
	program := t.program
	t.mu.Unlock()

	// Handle context cancellation
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		<-ctx.Done()
		program.Quit()
	}()

	_, err := program.Run()
	cancel()
	t.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop asks a running timer screen to exit.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.program != nil {
		t.program.Quit()
	}
}
