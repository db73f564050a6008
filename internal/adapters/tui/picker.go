package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// action is a command a picker item runs against the engine.
type action func(ctx context.Context, control ports.TimerControl) error

// pickerItem represents one option in the picker.
type pickerItem struct {
	label string
	desc  string
	run   action
}

// picker is an arrow-key list, optionally narrowed by a fuzzy filter.
type picker struct {
	title    string
	items    []pickerItem
	visible  []pickerItem
	cursor   int
	filter   *textinput.Model
	// fallback runs when the filter matches nothing; nil disables it.
	fallback func(query string) action
}

// newTaskPicker lists the tasks of s. Typing filters the list; entering a
// name that matches nothing renames the current task to it.
func newTaskPicker(s domain.Settings) picker {
	items := make([]pickerItem, len(s.Tasks))
	for i, t := range s.Tasks {
		desc := fmt.Sprintf("%d/%d min", t.WorkDuration, t.BreakDuration)
		if i == s.CurrentTaskIndex {
			desc += "  (current)"
		}
		items[i] = pickerItem{
			label: t.Name,
			desc:  desc,
			run: func(ctx context.Context, c ports.TimerControl) error {
				return c.SelectTask(ctx, i)
			},
		}
	}

	ti := textinput.New()
	ti.Placeholder = "filter or new name"
	ti.CharLimit = 60
	ti.Width = 30
	ti.Focus()

	p := picker{
		title:  "Switch task",
		items:  items,
		filter: &ti,
		fallback: func(query string) action {
			return func(ctx context.Context, c ports.TimerControl) error {
				return c.ChangeTask(ctx, query)
			}
		},
	}
	p.cursor = s.CurrentTaskIndex
	p.refresh()
	return p
}

// newPresetPicker lists the preset work and break lengths.
func newPresetPicker(work, brk []int) picker {
	var items []pickerItem
	for _, minutes := range work {
		items = append(items, pickerItem{
			label: fmt.Sprintf("Work %d min", minutes),
			run: func(ctx context.Context, c ports.TimerControl) error {
				return c.SetWorkDuration(ctx, minutes)
			},
		})
	}
	for _, minutes := range brk {
		items = append(items, pickerItem{
			label: fmt.Sprintf("Break %d min", minutes),
			run: func(ctx context.Context, c ports.TimerControl) error {
				return c.SetBreakDuration(ctx, minutes)
			},
		})
	}
	p := picker{title: "Presets", items: items}
	p.refresh()
	return p
}

// query returns the trimmed filter text.
func (p picker) query() string {
	if p.filter == nil {
		return ""
	}
	return strings.TrimSpace(p.filter.Value())
}

// refresh recomputes the visible items from the filter.
func (p *picker) refresh() {
	q := p.query()
	if q == "" {
		p.visible = p.items
	} else {
		labels := make([]string, len(p.items))
		for i, it := range p.items {
			labels[i] = it.label
		}
		p.visible = nil
		for _, match := range fuzzy.Find(q, labels) {
			p.visible = append(p.visible, p.items[match.Index])
		}
	}
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// update handles a key. It returns the chosen action, or done with a nil
// action when the picker was dismissed.
func (p *picker) update(msg tea.Msg) (chosen action, done bool, cmd tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false, nil
	}
	switch k.String() {
	case "esc", "ctrl+c":
		return nil, true, nil
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, false, nil
	case "down", "ctrl+n":
		if p.cursor < len(p.visible)-1 {
			p.cursor++
		}
		return nil, false, nil
	case "enter":
		if len(p.visible) > 0 {
			return p.visible[p.cursor].run, true, nil
		}
		if q := p.query(); q != "" && p.fallback != nil {
			return p.fallback(q), true, nil
		}
		return nil, false, nil
	}

	if p.filter == nil {
		switch k.String() {
		case "k":
			return p.update(tea.KeyMsg{Type: tea.KeyUp})
		case "j":
			return p.update(tea.KeyMsg{Type: tea.KeyDown})
		}
		return nil, false, nil
	}
	before := p.filter.Value()
	*p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.cursor = 0
		p.refresh()
	}
	return nil, false, cmd
}

func (p picker) view(s styles, accent lipgloss.Color) []string {
	lines := []string{s.task.Render(p.title)}
	if p.filter != nil {
		lines = append(lines, p.filter.View())
	}
	active := lipgloss.NewStyle().Foreground(accent).Bold(true)
	for i, it := range p.visible {
		text := fmt.Sprintf("%-20s %s", it.label, it.desc)
		if i == p.cursor {
			lines = append(lines, active.Render("▸ "+text))
		} else {
			lines = append(lines, s.help.Render("  "+text))
		}
	}
	if len(p.visible) == 0 {
		if q := p.query(); q != "" && p.fallback != nil {
			lines = append(lines, s.help.Render(fmt.Sprintf("enter rename current task to %q", q)))
		} else {
			lines = append(lines, s.help.Render("no matches"))
		}
	}
	lines = append(lines, s.help.Render("↑/↓ navigate · enter select · esc back"))
	return lines
}
