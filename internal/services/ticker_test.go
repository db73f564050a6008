package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xvierd/pomotray/internal/domain"
)

type countingTarget struct {
	mu    sync.Mutex
	ticks int
}

func (c *countingTarget) Tick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
}

func (c *countingTarget) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

func TestNewTicker_DefaultInterval(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, time.Second},
		{-5 * time.Millisecond, time.Second},
		{250 * time.Millisecond, 250 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := NewTicker(&countingTarget{}, tt.in).Interval(); got != tt.want {
			t.Errorf("NewTicker(%v).Interval() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTicker_RunTicksUntilCancelled(t *testing.T) {
	target := &countingTarget{}
	ticker := NewTicker(target, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		ticker.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return target.count() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	stopped := target.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, target.count())
}

func TestTicker_DrivesEngine(t *testing.T) {
	f := newEngineFixture(t, settingsWith(1, 1, 1, 4))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go NewTicker(f.engine, time.Millisecond).Run(ctx)

	assert.Eventually(t, func() bool {
		return f.log.count(domain.ActionEndWork) == 1
	}, 2*time.Second, time.Millisecond)
}
