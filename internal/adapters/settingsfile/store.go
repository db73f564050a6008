// Package settingsfile stores the task and duration settings as a
// pretty-printed JSON document.
package settingsfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// Store implements ports.SettingsStore on a single JSON file.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// Ensure Store implements ports.SettingsStore.
var _ ports.SettingsStore = (*Store)(nil)

// New creates a store for the file at path. logger may be nil.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing file is created with the defaults.
// An unreadable or corrupt file is left untouched and the defaults are
// returned. Out-of-range values are repaired in the returned copy only.
func (s *Store) Load() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		settings := domain.DefaultSettings()
		if err := s.writeLocked(settings); err != nil {
			s.logger.Warn("failed to create settings file", "path", s.path, "error", err)
		}
		return settings
	}
	if err != nil {
		s.logger.Warn("failed to read settings file, using defaults", "path", s.path, "error", err)
		return domain.DefaultSettings()
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn("corrupt settings file, using defaults", "path", s.path, "error", err)
		return domain.DefaultSettings()
	}
	if settings.Normalize() {
		s.logger.Warn("settings file had invalid values, repaired in memory", "path", s.path)
	}
	return settings
}

// Save replaces the settings file. The document is written to a temporary
// file in the same directory and renamed over the old one.
func (s *Store) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(settings)
}

func (s *Store) writeLocked(settings domain.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
