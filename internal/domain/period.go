// Package domain contains the core types of the Pomodoro cycle engine.
// These types describe timer periods, the cycle state machine, the persisted
// settings and the session log vocabulary, and are independent of any
// files, clocks or terminals.
package domain

// TimerPeriod is one phase of the Pomodoro cycle.
type TimerPeriod string

const (
	PeriodWork       TimerPeriod = "work"
	PeriodShortBreak TimerPeriod = "short_break"
	PeriodLongBreak  TimerPeriod = "long_break"
)

// Label returns a human-readable label for the period.
func (p TimerPeriod) Label() string {
	switch p {
	case PeriodWork:
		return "Work"
	case PeriodShortBreak:
		return "Short Break"
	case PeriodLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak returns true for both break periods.
func (p TimerPeriod) IsBreak() bool {
	return p == PeriodShortBreak || p == PeriodLongBreak
}

// StartAction returns the log action emitted when the period begins.
func (p TimerPeriod) StartAction() Action {
	switch p {
	case PeriodShortBreak:
		return ActionStartBreak
	case PeriodLongBreak:
		return ActionStartLongBreak
	default:
		return ActionStartWork
	}
}

// EndAction returns the log action emitted when the period's countdown runs out.
func (p TimerPeriod) EndAction() Action {
	switch p {
	case PeriodShortBreak:
		return ActionEndBreak
	case PeriodLongBreak:
		return ActionEndLongBreak
	default:
		return ActionEndWork
	}
}

// StartCue returns the sound played when the period begins.
func (p TimerPeriod) StartCue() SoundCue {
	switch p {
	case PeriodShortBreak:
		return CueStartBreak
	case PeriodLongBreak:
		return CueStartLongBreak
	default:
		return CueStartWork
	}
}

// EndCue returns the sound played when the period ends.
func (p TimerPeriod) EndCue() SoundCue {
	switch p {
	case PeriodShortBreak:
		return CueEndBreak
	case PeriodLongBreak:
		return CueEndLongBreak
	default:
		return CueEndWork
	}
}
