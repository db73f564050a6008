package domain

// CycleState is the engine's mutable countdown record.
// RemainingSeconds + ElapsedSeconds equals the active period's length
// except between a tick and the phase-end transition it triggers.
type CycleState struct {
	Period             TimerPeriod
	ElapsedSeconds     int
	RemainingSeconds   int
	Paused             bool
	PomodoroCycleCount int
}

// NewCycleState returns the state a freshly started engine begins in.
func NewCycleState(s Settings) CycleState {
	return CycleState{
		Period:           PeriodWork,
		RemainingSeconds: s.PhaseSeconds(PeriodWork),
	}
}

// Tick advances the countdown by one second unless paused.
// It returns true when the countdown has run out.
func (c *CycleState) Tick() bool {
	if c.Paused {
		return false
	}
	c.RemainingSeconds--
	c.ElapsedSeconds++
	return c.RemainingSeconds <= 0
}

// Advance moves to the period that follows the current one and returns it.
// A finished work period counts toward the long-break threshold; reaching it
// selects a long break and clears the count.
func (c *CycleState) Advance(s Settings) TimerPeriod {
	next := PeriodWork
	if c.Period == PeriodWork {
		c.PomodoroCycleCount++
		if c.PomodoroCycleCount >= s.Pomodoro.CyclesBeforeLongBreak {
			next = PeriodLongBreak
			c.PomodoroCycleCount = 0
		} else {
			next = PeriodShortBreak
		}
	}
	c.Period = next
	c.Restart(s)
	return next
}

// Restart rewinds the current period to its full configured length.
func (c *CycleState) Restart(s Settings) {
	c.ElapsedSeconds = 0
	c.RemainingSeconds = s.PhaseSeconds(c.Period)
}

// Progress returns the completed fraction of the current period (0.0 to 1.0).
func (c CycleState) Progress() float64 {
	total := c.ElapsedSeconds + c.RemainingSeconds
	if total <= 0 {
		return 0
	}
	p := float64(c.ElapsedSeconds) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}
