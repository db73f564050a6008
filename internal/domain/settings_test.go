package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Len(t, s.Tasks, 2)
	assert.Equal(t, "Task 1", s.CurrentTask().Name)
	assert.Equal(t, 25*60, s.PhaseSeconds(PeriodWork))
	assert.Equal(t, 5*60, s.PhaseSeconds(PeriodShortBreak))
	assert.Equal(t, 15*60, s.PhaseSeconds(PeriodLongBreak))
	assert.Equal(t, 4, s.Pomodoro.CyclesBeforeLongBreak)
	c := s.Clone()
	assert.False(t, c.Normalize(), "defaults should already be normal")
}

func TestSettings_Normalize(t *testing.T) {
	tests := []struct {
		name  string
		input Settings
		check func(t *testing.T, s Settings)
	}{
		{
			name:  "empty task list gets defaults",
			input: Settings{Pomodoro: PomodoroSettings{CyclesBeforeLongBreak: 2, LongBreakDuration: 20}},
			check: func(t *testing.T, s Settings) {
				assert.Len(t, s.Tasks, 2)
				assert.Equal(t, 2, s.Pomodoro.CyclesBeforeLongBreak)
			},
		},
		{
			name: "index out of range resets to zero",
			input: Settings{
				Tasks:            []Task{{Name: "A", WorkDuration: 10, BreakDuration: 2}},
				CurrentTaskIndex: 5,
				Pomodoro:         PomodoroSettings{CyclesBeforeLongBreak: 4, LongBreakDuration: 15},
			},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, 0, s.CurrentTaskIndex)
			},
		},
		{
			name: "non-positive values get defaults",
			input: Settings{
				Tasks: []Task{{Name: "A", WorkDuration: 0, BreakDuration: -1}},
			},
			check: func(t *testing.T, s Settings) {
				assert.Equal(t, DefaultWorkMinutes, s.Tasks[0].WorkDuration)
				assert.Equal(t, DefaultBreakMinutes, s.Tasks[0].BreakDuration)
				assert.Equal(t, DefaultCyclesBeforeLongBreak, s.Pomodoro.CyclesBeforeLongBreak)
				assert.Equal(t, DefaultLongBreakMinutes, s.Pomodoro.LongBreakDuration)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.input
			if !s.Normalize() {
				t.Fatal("Normalize() = false, want true")
			}
			tt.check(t, s)
		})
	}
}

func TestSettings_CloneIsDeep(t *testing.T) {
	s := DefaultSettings()
	c := s.Clone()
	c.Tasks[0].Name = "Changed"

	assert.Equal(t, "Task 1", s.Tasks[0].Name)
}

func TestSettings_TaskLookup(t *testing.T) {
	s := DefaultSettings()
	s.CurrentTaskIndex = 1

	assert.Equal(t, "Task 2", s.CurrentTask().Name)
	assert.Equal(t, 30*60, s.PhaseSeconds(PeriodWork))
	assert.Equal(t, 1, s.TaskIndex("Task 2"))
	assert.Equal(t, -1, s.TaskIndex("missing"))
	assert.Equal(t, []string{"Task 1", "Task 2"}, s.TaskNames())
}

func TestPeriodStartAlert(t *testing.T) {
	s := DefaultSettings()

	a := PeriodStartAlert(PeriodWork, PeriodShortBreak, s)
	assert.Equal(t, []SoundCue{CueEndWork, CueStartBreak}, a.Cues)
	assert.Equal(t, "Break started: 5 minutes.", a.Message)

	a = PeriodStartAlert("", PeriodWork, s)
	assert.Equal(t, []SoundCue{CueStartWork}, a.Cues)
	assert.Equal(t, "Task started: Task 1. Work time: 25 minutes.", a.Message)

	a = PeriodStartAlert(PeriodWork, PeriodLongBreak, s)
	assert.Equal(t, "Long break started: 15 minutes.", a.Message)
}
