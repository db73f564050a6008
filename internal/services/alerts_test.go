package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomotray/internal/domain"
)

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
	delay time.Duration
}

func (f *fakeNotifier) Notify(title, message string) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, title+": "+message)
	return f.err
}

func (f *fakeNotifier) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeSounds struct {
	mu     sync.Mutex
	played []domain.SoundCue
	err    error
}

func (f *fakeSounds) Play(ctx context.Context, cue domain.SoundCue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, cue)
	return f.err
}

func (f *fakeSounds) all() []domain.SoundCue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.SoundCue(nil), f.played...)
}

func TestAlertDispatcher_DeliversInOrder(t *testing.T) {
	notifier := &fakeNotifier{}
	sounds := &fakeSounds{}
	d := NewAlertDispatcher(notifier, sounds, time.Second, nil)

	d.Alert(domain.Alert{Title: "Work Ended", Message: "one", Cues: []domain.SoundCue{domain.CueEndWork, domain.CueStartBreak}})
	d.Alert(domain.Alert{Title: "Paused", Message: "two", Cues: []domain.SoundCue{domain.CuePause}})
	d.Close()

	assert.Equal(t, []string{"Work Ended: one", "Paused: two"}, notifier.all())
	assert.Equal(t, []domain.SoundCue{domain.CueEndWork, domain.CueStartBreak, domain.CuePause}, sounds.all())
}

func TestAlertDispatcher_FailuresAreNotFatal(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("no notification daemon")}
	sounds := &fakeSounds{err: errors.New("no audio device")}
	d := NewAlertDispatcher(notifier, sounds, time.Second, nil)

	d.Alert(domain.ResetAlert())
	d.Alert(domain.ResetAlert())
	d.Close()

	assert.Len(t, notifier.all(), 2)
	assert.Len(t, sounds.all(), 2)
}

func TestAlertDispatcher_TimeoutBoundsSlowNotifier(t *testing.T) {
	notifier := &fakeNotifier{delay: 200 * time.Millisecond}
	d := NewAlertDispatcher(notifier, nil, 10*time.Millisecond, nil)

	start := time.Now()
	d.Alert(domain.Alert{Title: "a"})
	d.Alert(domain.Alert{Title: "b"})
	d.Close()

	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestAlertDispatcher_AlertNeverBlocks(t *testing.T) {
	notifier := &fakeNotifier{delay: 20 * time.Millisecond}
	d := NewAlertDispatcher(notifier, nil, time.Second, nil)
	defer d.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < alertQueueSize*4; i++ {
			d.Alert(domain.Alert{Title: "flood"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Alert blocked on a full queue")
	}
}

func TestAlertDispatcher_StatsAlertHasNoSound(t *testing.T) {
	notifier := &fakeNotifier{}
	sounds := &fakeSounds{}
	d := NewAlertDispatcher(notifier, sounds, time.Second, nil)

	d.Alert(domain.StatsAlert(domain.DailyStats{WorkSeconds: 1500, BreakSeconds: 300}))
	d.Close()
	d.Close()
	d.Alert(domain.ResetAlert())

	require.Len(t, notifier.all(), 1)
	assert.Contains(t, notifier.all()[0], "00:25:00")
	assert.Empty(t, sounds.all())
}
