package ports

import (
	"context"

	"github.com/xvierd/pomotray/internal/domain"
)

// Notifier delivers desktop notifications.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// Notify shows a notification. Delivery is best effort.
	Notify(title, message string) error
}

// SoundPlayer plays short audio cues.
// This is a driven port (implemented by adapters).
type SoundPlayer interface {
	// Play plays the cue and returns when playback finished or ctx expired.
	Play(ctx context.Context, cue domain.SoundCue) error
}

// Alerter accepts alerts from the cycle engine. Alert must not block
// and never reports failure back to the caller.
// This is a driven port (implemented by services).
type Alerter interface {
	Alert(alert domain.Alert)
}
