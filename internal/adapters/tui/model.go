// Package tui provides the terminal user interface of the timer
// using the Bubbletea framework.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomotray/internal/config"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// errNoStats is shown when the statistics key is pressed without a provider.
var errNoStats = errors.New("statistics are not available")

// snapshotMsg carries a snapshot received from the engine.
type snapshotMsg domain.Snapshot

// closedMsg is sent when the engine closed the subscription.
type closedMsg struct{}

// statsMsg carries the result of a statistics fetch.
type statsMsg struct {
	stats domain.DailyStats
	err   error
}

type overlay int

const (
	overlayNone overlay = iota
	overlayPrompt
	overlayPicker
	overlayStats
)

// Options configures a Model.
type Options struct {
	Theme        *config.ThemeConfig
	WorkPresets  []int
	BreakPresets []int
	Stats        ports.StatsProvider
}

// Model represents the TUI state.
type Model struct {
	ctx          context.Context
	control      ports.TimerControl
	stats        ports.StatsProvider
	updates      <-chan domain.Snapshot
	snap         domain.Snapshot
	theme        config.ThemeConfig
	styles       styles
	workPresets  []int
	breakPresets []int
	width        int
	height       int
	overlay      overlay
	prompt       prompt
	picker       picker
	today        domain.DailyStats
	status       string
	err          error
}

// NewModel creates a model that drives control and redraws on every
// snapshot it publishes.
func NewModel(ctx context.Context, control ports.TimerControl, opts Options) Model {
	theme := resolveTheme(opts.Theme)
	return Model{
		ctx:          ctx,
		control:      control,
		stats:        opts.Stats,
		updates:      control.Subscribe(16),
		snap:         control.Snapshot(),
		theme:        theme,
		styles:       newStyles(theme),
		workPresets:  opts.WorkPresets,
		breakPresets: opts.BreakPresets,
	}
}

// Init starts listening for engine snapshots.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

// waitForSnapshot returns a tea.Cmd that blocks until the next snapshot.
func waitForSnapshot(ch <-chan domain.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(snap)
	}
}

// fetchStatsCmd returns a tea.Cmd that computes today's totals.
func fetchStatsCmd(ctx context.Context, provider ports.StatsProvider) tea.Cmd {
	return func() tea.Msg {
		stats, err := provider.Today(ctx)
		return statsMsg{stats: stats, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.snap = domain.Snapshot(msg)
		return m, waitForSnapshot(m.updates)

	case closedMsg:
		return m, tea.Quit

	case statsMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to compute statistics: %w", msg.err)
			return m, nil
		}
		m.today = msg.stats
		m.overlay = overlayStats
		m.control.AnnounceStats(msg.stats)
		return m, nil

	case tea.KeyMsg:
		switch m.overlay {
		case overlayPrompt:
			return m.updatePrompt(msg)
		case overlayPicker:
			return m.updatePicker(msg)
		case overlayStats:
			m.overlay = overlayNone
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	}

	// cursor blinks and other input messages
	if m.overlay == overlayPrompt {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey dispatches a key pressed on the main timer screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	settings := m.snap.Settings
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "p", " ":
		paused, err := m.control.TogglePause(m.ctx)
		if paused {
			m.report(err, "Timer paused.")
		} else {
			m.report(err, "Timer resumed.")
		}
	case "r":
		m.report(m.control.Reset(m.ctx), "Timer reset.")
	case "t":
		m.picker = newTaskPicker(settings)
		m.overlay = overlayPicker
	case "m":
		if len(m.workPresets)+len(m.breakPresets) > 0 {
			m.picker = newPresetPicker(m.workPresets, m.breakPresets)
			m.overlay = overlayPicker
		}
	case "a":
		return m.openPrompt(newTaskPrompt(promptAddTask, "Add task", domain.Task{}))
	case "e":
		return m.openPrompt(newTaskPrompt(promptEditTask, "Edit current task", m.snap.Task))
	case "w":
		return m.openPrompt(newNumberPrompt(promptWork, "Set work time", "Minutes", m.snap.Task.WorkDuration))
	case "b":
		return m.openPrompt(newNumberPrompt(promptBreak, "Set break time", "Minutes", m.snap.Task.BreakDuration))
	case "l":
		return m.openPrompt(newNumberPrompt(promptLongBreak, "Set long break time", "Minutes", settings.Pomodoro.LongBreakDuration))
	case "c":
		return m.openPrompt(newNumberPrompt(promptCycles, "Set cycles before long break", "Cycles", settings.Pomodoro.CyclesBeforeLongBreak))
	case "s":
		if m.stats == nil {
			m.err = errNoStats
			return m, nil
		}
		return m, fetchStatsCmd(m.ctx, m.stats)
	}
	return m, nil
}

func (m Model) openPrompt(p prompt) (tea.Model, tea.Cmd) {
	m.prompt = p
	m.overlay = overlayPrompt
	m.err = nil
	return m, p.input.Cursor.BlinkCmd()
}

func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	cancelled, cmd := m.prompt.update(msg)
	if cancelled {
		m.overlay = overlayNone
		return m, nil
	}
	if m.prompt.done {
		m.overlay = overlayNone
		m.applyPrompt()
	}
	return m, cmd
}

// applyPrompt sends the values of a completed prompt to the engine.
func (m *Model) applyPrompt() {
	p := m.prompt
	switch p.kind {
	case promptAddTask, promptEditTask:
		t, err := p.task()
		if err != nil {
			m.report(err, "")
			return
		}
		if p.kind == promptAddTask {
			m.report(m.control.AddTask(m.ctx, t.Name, t.WorkDuration, t.BreakDuration), "Task added: "+t.Name)
		} else {
			m.report(m.control.UpdateSettings(m.ctx, t.Name, t.WorkDuration, t.BreakDuration), "Settings updated.")
		}
	default:
		n, err := p.number()
		if err != nil {
			m.report(err, "")
			return
		}
		switch p.kind {
		case promptWork:
			m.report(m.control.SetWorkDuration(m.ctx, n), fmt.Sprintf("New work time: %d minutes", n))
		case promptBreak:
			m.report(m.control.SetBreakDuration(m.ctx, n), fmt.Sprintf("New break time: %d minutes", n))
		case promptLongBreak:
			m.report(m.control.SetLongBreakDuration(m.ctx, n), fmt.Sprintf("New long break time: %d minutes", n))
		case promptCycles:
			m.report(m.control.SetCyclesBeforeLongBreak(m.ctx, n), fmt.Sprintf("Long break every %d cycles", n))
		}
	}
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	run, done, cmd := m.picker.update(msg)
	if !done {
		return m, cmd
	}
	m.overlay = overlayNone
	if run != nil {
		m.report(run(m.ctx, m.control), "")
	}
	return m, nil
}

// report records the outcome of an engine command and refreshes the
// snapshot so the screen reflects it before the next tick.
func (m *Model) report(err error, status string) {
	if err != nil {
		m.err = err
		m.status = ""
	} else {
		m.err = nil
		m.status = status
	}
	m.snap = m.control.Snapshot()
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	st := m.snap.State
	accent := periodColor(m.theme, st)
	s := m.styles

	var sections []string
	sections = append(sections, s.title.Render(fmt.Sprintf("%s Pomodoro", m.theme.IconApp)))
	sections = append(sections, s.task.Render(fmt.Sprintf("%s Task: %s", m.theme.IconTask, m.snap.Task.Name)))

	periodLine := st.Period.Label()
	if st.Period == domain.PeriodWork {
		periodLine += fmt.Sprintf(" · long break in %d", m.snap.CyclesUntilLongBreak())
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(accent).Render(periodLine))

	sections = append(sections, "")
	sections = append(sections, renderBigClock(domain.FormatClock(st.RemainingSeconds), accent, m.width))
	sections = append(sections, s.help.Render(m.snap.Display()))

	if st.Paused {
		sections = append(sections, "")
		sections = append(sections, s.badge.Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused)))
	}

	sections = append(sections, "")
	sections = append(sections, progressBar(m.theme, st, m.width).ViewAs(m.snap.Progress()))

	if m.err != nil {
		sections = append(sections, s.err.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		sections = append(sections, s.help.Render(m.status))
	}

	switch m.overlay {
	case overlayPrompt:
		sections = append(sections, "", s.panel.Render(lipgloss.JoinVertical(lipgloss.Left, m.prompt.view(s)...)))
	case overlayPicker:
		sections = append(sections, "", s.panel.Render(lipgloss.JoinVertical(lipgloss.Left, m.picker.view(s, accent)...)))
	case overlayStats:
		sections = append(sections, "", s.panel.Render(m.statsView()))
	default:
		sections = append(sections, "", s.help.Render(m.helpText()))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) statsView() string {
	s := m.styles
	return lipgloss.JoinVertical(lipgloss.Left,
		s.task.Render(fmt.Sprintf("%s Today's statistics", m.theme.IconStats)),
		fmt.Sprintf("Work:   %s", m.today.WorkTotal()),
		fmt.Sprintf("Breaks: %s", m.today.BreakTotal()),
		s.help.Render("press any key to close"),
	)
}

func (m Model) helpText() string {
	pause := "[p]ause"
	if m.snap.State.Paused {
		pause = "[p]resume"
	}
	text := fmt.Sprintf("%s  [r]eset  [t]ask  [a]dd  [e]dit  [s]tats  [q]uit", pause)
	text += "\n[w]ork  [b]reak  [l]ong break  [c]ycles"
	if len(m.workPresets)+len(m.breakPresets) > 0 {
		text += "  [m] presets"
	}
	return text
}
