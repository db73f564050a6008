// Package ports defines the interfaces (driven and driving ports)
// of the Pomodoro timer following hexagonal architecture principles.
// These interfaces define the contracts between the cycle engine and
// the files, processes and terminals around it.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
)

// SettingsStore defines the interface for settings persistence.
// This is a driven port (implemented by adapters).
type SettingsStore interface {
	// Load returns the stored settings. A missing, unreadable or corrupt
	// document yields the defaults; Load never fails.
	Load() domain.Settings

	// Save persists the settings, replacing the stored document.
	Save(settings domain.Settings) error
}

// SessionLogger defines the interface for the append-only session log.
// This is a driven port (implemented by adapters).
type SessionLogger interface {
	// Append writes one self-contained record. Records are kept in call order.
	Append(ctx context.Context, entry domain.LogEntry) error
}

// SessionLogReader reads back the session log.
// This is a driven port (implemented by adapters).
type SessionLogReader interface {
	// ReadDay returns the records of one calendar day in write order.
	ReadDay(ctx context.Context, day time.Time) ([]domain.LogEntry, error)
}

// EventArchive is a queryable copy of the session log.
// This is a driven port (implemented by adapters).
type EventArchive interface {
	SessionLogger

	// Range returns the records with from <= timestamp < to, oldest first,
	// with timestamps in to's location. A zero from means no lower bound.
	Range(ctx context.Context, from, to time.Time) ([]domain.LogEntry, error)

	// Close closes the archive.
	Close() error
}
