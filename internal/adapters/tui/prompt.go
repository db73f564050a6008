package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomotray/internal/domain"
)

type promptKind int

const (
	promptWork promptKind = iota
	promptBreak
	promptLongBreak
	promptCycles
	promptAddTask
	promptEditTask
)

// field is one step of a prompt. validate checks the raw input of the step.
type field struct {
	label    string
	value    string
	validate func(string) error
}

// prompt collects one or more text fields, one at a time.
type prompt struct {
	kind   promptKind
	title  string
	fields []field
	step   int
	input  textinput.Model
	err    error
	done   bool
}

func validName(s string) error {
	_, err := domain.NormalizeTaskName(s)
	return err
}

func validPositive(s string) error {
	_, err := domain.ParsePositive(s)
	return err
}

// blankZero renders n for an input field, leaving zero empty.
func blankZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// newNumberPrompt asks for a single positive whole number.
func newNumberPrompt(kind promptKind, title, label string, current int) prompt {
	return newPrompt(kind, title, []field{
		{label: label, value: blankZero(current), validate: validPositive},
	})
}

// newTaskPrompt asks for a name and both durations. The fields start
// with the given task, which is the zero Task for a new one.
func newTaskPrompt(kind promptKind, title string, t domain.Task) prompt {
	return newPrompt(kind, title, []field{
		{label: "Name", value: t.Name, validate: validName},
		{label: "Work minutes", value: blankZero(t.WorkDuration), validate: validPositive},
		{label: "Break minutes", value: blankZero(t.BreakDuration), validate: validPositive},
	})
}

func newPrompt(kind promptKind, title string, fields []field) prompt {
	ti := textinput.New()
	ti.CharLimit = 60
	ti.Width = 30
	p := prompt{kind: kind, title: title, fields: fields, input: ti}
	p.load()
	return p
}

// load puts the current step's value into the input.
func (p *prompt) load() {
	p.input.SetValue(p.fields[p.step].value)
	p.input.Placeholder = p.fields[p.step].label
	p.input.CursorEnd()
	p.input.Focus()
}

// update handles a key. It returns true when the prompt was cancelled.
func (p *prompt) update(msg tea.Msg) (cancelled bool, cmd tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return true, nil
		case tea.KeyEnter:
			p.submit()
			return false, nil
		}
	}
	p.input, cmd = p.input.Update(msg)
	return false, cmd
}

// submit validates the current step and moves to the next one. The
// prompt is done after the last step validates.
func (p *prompt) submit() {
	f := &p.fields[p.step]
	f.value = strings.TrimSpace(p.input.Value())
	if f.validate != nil {
		if err := f.validate(f.value); err != nil {
			p.err = err
			return
		}
	}
	p.err = nil
	if p.step == len(p.fields)-1 {
		p.done = true
		return
	}
	p.step++
	p.load()
}

// number returns the parsed value of a single-field prompt.
func (p prompt) number() (int, error) {
	return domain.ParsePositive(p.fields[0].value)
}

// task returns the validated task of a three-field prompt.
func (p prompt) task() (domain.Task, error) {
	return domain.ParseTask(p.fields[0].value, p.fields[1].value, p.fields[2].value)
}

func (p prompt) view(s styles) []string {
	lines := []string{s.task.Render(p.title)}
	if len(p.fields) > 1 {
		lines = append(lines, s.help.Render(fmt.Sprintf("%s (%d/%d)", p.fields[p.step].label, p.step+1, len(p.fields))))
	}
	lines = append(lines, p.input.View())
	if p.err != nil {
		lines = append(lines, s.err.Render(p.err.Error()))
	}
	lines = append(lines, s.help.Render("enter confirm · esc cancel"))
	return lines
}
