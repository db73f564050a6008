package domain

import "fmt"

// Alert is one user-facing side effect: a notification plus the cues
// played before it, in order.
type Alert struct {
	Title   string
	Message string
	Cues    []SoundCue
}

// PeriodStartAlert announces the start of a period. When ended is non-empty
// its end cue is played first.
func PeriodStartAlert(ended, started TimerPeriod, s Settings) Alert {
	var cues []SoundCue
	if ended != "" {
		cues = append(cues, ended.EndCue())
	}
	cues = append(cues, started.StartCue())

	minutes := s.PhaseMinutes(started)
	switch started {
	case PeriodShortBreak:
		return Alert{Title: "Break", Message: fmt.Sprintf("Break started: %d minutes.", minutes), Cues: cues}
	case PeriodLongBreak:
		return Alert{Title: "Long Break", Message: fmt.Sprintf("Long break started: %d minutes.", minutes), Cues: cues}
	default:
		return Alert{
			Title:   "Work Started",
			Message: fmt.Sprintf("Task started: %s. Work time: %d minutes.", s.CurrentTask().Name, minutes),
			Cues:    cues,
		}
	}
}

// PauseAlert announces a pause or a resume.
func PauseAlert(paused bool) Alert {
	if paused {
		return Alert{Title: "Paused", Message: "Timer paused.", Cues: []SoundCue{CuePause}}
	}
	return Alert{Title: "Resumed", Message: "Timer resumed.", Cues: []SoundCue{CueResume}}
}

// ResetAlert announces a countdown reset.
func ResetAlert() Alert {
	return Alert{Title: "Reset", Message: "Timer reset.", Cues: []SoundCue{CueReset}}
}

// SettingsAlert announces a combined settings update.
func SettingsAlert() Alert {
	return settingsAlert("Settings", "Settings updated.")
}

// TaskAlert announces a change of the current task.
func TaskAlert(name string) Alert {
	return settingsAlert("Task Updated", "Current task: "+name)
}

// TaskAddedAlert announces a new task in the list.
func TaskAddedAlert(name string) Alert {
	return settingsAlert("Task Added", "New task: "+name)
}

// WorkDurationAlert announces a new work duration.
func WorkDurationAlert(minutes int) Alert {
	return settingsAlert("Work Time Updated", fmt.Sprintf("New work time: %d minutes", minutes))
}

// BreakDurationAlert announces a new break duration.
func BreakDurationAlert(minutes int) Alert {
	return settingsAlert("Break Time Updated", fmt.Sprintf("New break time: %d minutes", minutes))
}

// LongBreakDurationAlert announces a new long break duration.
func LongBreakDurationAlert(minutes int) Alert {
	return settingsAlert("Long Break Updated", fmt.Sprintf("New long break time: %d minutes", minutes))
}

// CyclesAlert announces a new long-break threshold.
func CyclesAlert(cycles int) Alert {
	return settingsAlert("Cycles Updated", fmt.Sprintf("Long break after %d work periods", cycles))
}

// StatsAlert announces a day's totals. It plays no cue.
func StatsAlert(stats DailyStats) Alert {
	return Alert{
		Title:   "Today's Statistics",
		Message: fmt.Sprintf("Work time: %s\nBreak time: %s", stats.WorkTotal(), stats.BreakTotal()),
	}
}

func settingsAlert(title, message string) Alert {
	return Alert{Title: title, Message: message, Cues: []SoundCue{CueSettings}}
}
