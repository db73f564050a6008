package domain

// Action tags a session log record.
type Action string

const (
	ActionStartWork                   Action = "START_WORK"
	ActionEndWork                     Action = "END_WORK"
	ActionStartBreak                  Action = "START_BREAK"
	ActionEndBreak                    Action = "END_BREAK"
	ActionStartLongBreak              Action = "START_LONG_BREAK"
	ActionEndLongBreak                Action = "END_LONG_BREAK"
	ActionPause                       Action = "PAUSE"
	ActionResume                      Action = "RESUME"
	ActionReset                       Action = "RESET"
	ActionUpdateTask                  Action = "UPDATE_TASK"
	ActionUpdateTaskName              Action = "UPDATE_TASK_NAME"
	ActionUpdateWorkDuration          Action = "UPDATE_WORK_DURATION"
	ActionUpdateBreakDuration         Action = "UPDATE_BREAK_DURATION"
	ActionUpdateLongBreakDuration     Action = "UPDATE_LONG_BREAK_DURATION"
	ActionUpdateCyclesBeforeLongBreak Action = "UPDATE_CYCLES_BEFORE_LONG_BREAK"
	ActionUpdateSettings              Action = "UPDATE_SETTINGS"
)

// SoundCue identifies a short audio cue.
type SoundCue string

const (
	CueEndWork        SoundCue = "end_work"
	CueEndBreak       SoundCue = "end_break"
	CueEndLongBreak   SoundCue = "end_long_break"
	CueStartWork      SoundCue = "start_work"
	CueStartBreak     SoundCue = "start_break"
	CueStartLongBreak SoundCue = "start_long_break"
	CuePause          SoundCue = "pause"
	CueResume         SoundCue = "resume"
	CueReset          SoundCue = "reset"
	CueSettings       SoundCue = "settings"
)

// FileName returns the file the cue is played from.
func (c SoundCue) FileName() string {
	return string(c) + ".wav"
}
