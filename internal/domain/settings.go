package domain

import "strings"

// Default durations, in minutes.
const (
	DefaultWorkMinutes           = 25
	DefaultBreakMinutes          = 5
	DefaultLongBreakMinutes      = 15
	DefaultCyclesBeforeLongBreak = 4
)

// Task is a named pair of work and break durations, in minutes.
type Task struct {
	Name          string `json:"name"`
	WorkDuration  int    `json:"workDuration"`
	BreakDuration int    `json:"breakDuration"`
}

// PomodoroSettings holds the cycle-wide thresholds shared by all tasks.
type PomodoroSettings struct {
	CyclesBeforeLongBreak int `json:"cyclesBeforeLongBreak"`
	LongBreakDuration     int `json:"longBreakDuration"`
}

// Settings is the persisted, user-configurable state: the task list,
// the selected task and the long-break thresholds.
type Settings struct {
	Tasks            []Task           `json:"tasks"`
	CurrentTaskIndex int              `json:"currentTaskIndex"`
	Pomodoro         PomodoroSettings `json:"pomodoroSettings"`
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() Settings {
	return Settings{
		Tasks: []Task{
			{Name: "Task 1", WorkDuration: DefaultWorkMinutes, BreakDuration: DefaultBreakMinutes},
			{Name: "Task 2", WorkDuration: 30, BreakDuration: 10},
		},
		CurrentTaskIndex: 0,
		Pomodoro: PomodoroSettings{
			CyclesBeforeLongBreak: DefaultCyclesBeforeLongBreak,
			LongBreakDuration:     DefaultLongBreakMinutes,
		},
	}
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	c := s
	c.Tasks = append([]Task(nil), s.Tasks...)
	return c
}

// Normalize repairs values a hand-edited or truncated file may carry.
// It returns true if anything was changed.
func (s *Settings) Normalize() bool {
	changed := false
	if len(s.Tasks) == 0 {
		s.Tasks = DefaultSettings().Tasks
		changed = true
	}
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if strings.TrimSpace(t.Name) == "" {
			t.Name = DefaultSettings().Tasks[0].Name
			changed = true
		}
		if t.WorkDuration <= 0 {
			t.WorkDuration = DefaultWorkMinutes
			changed = true
		}
		if t.BreakDuration <= 0 {
			t.BreakDuration = DefaultBreakMinutes
			changed = true
		}
	}
	if s.CurrentTaskIndex < 0 || s.CurrentTaskIndex >= len(s.Tasks) {
		s.CurrentTaskIndex = 0
		changed = true
	}
	if s.Pomodoro.CyclesBeforeLongBreak <= 0 {
		s.Pomodoro.CyclesBeforeLongBreak = DefaultCyclesBeforeLongBreak
		changed = true
	}
	if s.Pomodoro.LongBreakDuration <= 0 {
		s.Pomodoro.LongBreakDuration = DefaultLongBreakMinutes
		changed = true
	}
	return changed
}

// CurrentTask returns the selected task, falling back to the first one
// when the index is out of range.
func (s Settings) CurrentTask() Task {
	if s.CurrentTaskIndex >= 0 && s.CurrentTaskIndex < len(s.Tasks) {
		return s.Tasks[s.CurrentTaskIndex]
	}
	if len(s.Tasks) > 0 {
		return s.Tasks[0]
	}
	return DefaultSettings().Tasks[0]
}

// TaskIndex returns the index of the task with the given name, or -1.
func (s Settings) TaskIndex(name string) int {
	for i, t := range s.Tasks {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// TaskNames returns the names of all tasks in order.
func (s Settings) TaskNames() []string {
	names := make([]string, len(s.Tasks))
	for i, t := range s.Tasks {
		names[i] = t.Name
	}
	return names
}

// PhaseMinutes returns the configured length of a period in minutes.
func (s Settings) PhaseMinutes(p TimerPeriod) int {
	switch p {
	case PeriodShortBreak:
		return s.CurrentTask().BreakDuration
	case PeriodLongBreak:
		return s.Pomodoro.LongBreakDuration
	default:
		return s.CurrentTask().WorkDuration
	}
}

// PhaseSeconds returns the configured length of a period in seconds.
func (s Settings) PhaseSeconds(p TimerPeriod) int {
	return s.PhaseMinutes(p) * 60
}
