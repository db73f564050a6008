package services

import (
	"context"
	"time"
)

// DefaultTickInterval is one wall-clock second.
const DefaultTickInterval = time.Second

// tickTarget is what a Ticker drives.
type tickTarget interface {
	Tick(ctx context.Context)
}

// Ticker calls Tick on its target once per interval until the context is
// cancelled. Each call returns before the next one starts.
type Ticker struct {
	target   tickTarget
	interval time.Duration
}

// NewTicker creates a tick driver. A non-positive interval means one second.
func NewTicker(target tickTarget, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{target: target, interval: interval}
}

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Run blocks until ctx is cancelled.
func (t *Ticker) Run(ctx context.Context) {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			t.target.Tick(ctx)
		}
	}
}
