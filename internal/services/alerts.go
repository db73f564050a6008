package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

const (
	// DefaultAlertTimeout bounds the delivery of one alert.
	DefaultAlertTimeout = 3 * time.Second

	alertQueueSize = 16
)

// AlertDispatcher delivers engine alerts off the engine's lock. Alerts are
// queued and handled one at a time in order: cues are played first, then the
// notification is shown. Every delivery is bounded by a timeout and failures
// are only logged.
type AlertDispatcher struct {
	notifier ports.Notifier
	sounds   ports.SoundPlayer
	timeout  time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	queue  chan domain.Alert
	done   chan struct{}
	closed bool
}

// Ensure AlertDispatcher implements ports.Alerter.
var _ ports.Alerter = (*AlertDispatcher)(nil)

// NewAlertDispatcher creates a dispatcher and starts its worker.
// notifier, sounds and logger may be nil.
func NewAlertDispatcher(notifier ports.Notifier, sounds ports.SoundPlayer, timeout time.Duration, logger *slog.Logger) *AlertDispatcher {
	if timeout <= 0 {
		timeout = DefaultAlertTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &AlertDispatcher{
		notifier: notifier,
		sounds:   sounds,
		timeout:  timeout,
		logger:   logger,
		queue:    make(chan domain.Alert, alertQueueSize),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

// Alert queues an alert. It never blocks; when the queue is full the alert
// is dropped.
func (d *AlertDispatcher) Alert(alert domain.Alert) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- alert:
	default:
		d.logger.Warn("alert dropped", "title", alert.Title)
	}
}

// Close stops accepting alerts and waits for the queued ones to finish.
func (d *AlertDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	<-d.done
}

func (d *AlertDispatcher) run() {
	defer close(d.done)
	for alert := range d.queue {
		d.deliver(alert)
	}
}

func (d *AlertDispatcher) deliver(alert domain.Alert) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if d.sounds != nil {
		for _, cue := range alert.Cues {
			if err := d.sounds.Play(ctx, cue); err != nil {
				d.logger.Warn("failed to play sound", "cue", cue, "error", err)
			}
		}
	}

	if d.notifier == nil || alert.Title == "" {
		return
	}

	result := make(chan error, 1)
	go func() {
		result <- d.notifier.Notify(alert.Title, alert.Message)
	}()
	select {
	case err := <-result:
		if err != nil {
			d.logger.Warn("failed to send notification", "title", alert.Title, "error", err)
		}
	case <-ctx.Done():
		d.logger.Warn("notification timed out", "title", alert.Title, "timeout", d.timeout)
	}
}
