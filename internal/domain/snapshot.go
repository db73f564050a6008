package domain

import "fmt"

// Snapshot is a read-only copy of the engine state handed to
// presentation layers.
type Snapshot struct {
	State    CycleState
	Task     Task
	Settings Settings
	Closed   bool
}

// PhaseSeconds returns the full length of the active period.
func (s Snapshot) PhaseSeconds() int {
	return s.Settings.PhaseSeconds(s.State.Period)
}

// Progress returns the completed fraction of the active period.
func (s Snapshot) Progress() float64 {
	return s.State.Progress()
}

// Display renders the elapsed and remaining clocks, e.g. "03:10 / 21:50".
func (s Snapshot) Display() string {
	return fmt.Sprintf("%s / %s", FormatClock(s.State.ElapsedSeconds), FormatClock(s.State.RemainingSeconds))
}

// CyclesUntilLongBreak returns how many work periods remain before the next long break.
func (s Snapshot) CyclesUntilLongBreak() int {
	n := s.Settings.Pomodoro.CyclesBeforeLongBreak - s.State.PomodoroCycleCount
	if n < 0 {
		return 0
	}
	return n
}
