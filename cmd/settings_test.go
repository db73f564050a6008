package cmd

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomotray/internal/domain"
)

func TestSettingsShow(t *testing.T) {
	env := newTestEnv(t)
	stdout, _, err := env.run(t, "settings", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Task 1")
	assert.Contains(t, stdout, "25 min")
	assert.Contains(t, stdout, "15 min")
	assert.Contains(t, stdout, "settings.json")
}

func TestSettingsSet(t *testing.T) {
	tests := []struct {
		name  string
		value string
		check func(t *testing.T, s domain.Settings)
	}{
		{"work", "50", func(t *testing.T, s domain.Settings) { assert.Equal(t, 50, s.Tasks[0].WorkDuration) }},
		{"break", "7", func(t *testing.T, s domain.Settings) { assert.Equal(t, 7, s.Tasks[0].BreakDuration) }},
		{"long-break", "20", func(t *testing.T, s domain.Settings) { assert.Equal(t, 20, s.Pomodoro.LongBreakDuration) }},
		{"cycles", "3", func(t *testing.T, s domain.Settings) { assert.Equal(t, 3, s.Pomodoro.CyclesBeforeLongBreak) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			stdout, _, err := env.run(t, "settings", "set", tt.name, tt.value)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.name+" set to "+tt.value)

			stdout, _, err = env.run(t, "settings", "show", "--json")
			require.NoError(t, err)
			var got domain.Settings
			require.NoError(t, json.Unmarshal([]byte(stdout), &got))
			tt.check(t, got)
		})
	}
}

func TestSettingsSet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"not a number", []string{"work", "abc"}, domain.ErrInvalidNumber},
		{"fraction", []string{"break", "1.5"}, domain.ErrInvalidNumber},
		{"zero", []string{"cycles", "0"}, domain.ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, _, err := env.run(t, append([]string{"settings", "set"}, tt.args...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("settings set %v error = %v, want %v", tt.args, err, tt.wantErr)
			}
		})
	}

	env := newTestEnv(t)
	_, _, err := env.run(t, "settings", "set", "volume", "3")
	assert.ErrorContains(t, err, "unknown setting")
}
