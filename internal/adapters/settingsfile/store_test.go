package settingsfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomotray/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "settings.json"), nil)
}

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	store := newTestStore(t)

	got := store.Load()
	assert.Equal(t, domain.DefaultSettings(), got)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "tasks")
	assert.Contains(t, raw, "currentTaskIndex")
	assert.Contains(t, raw, "pomodoroSettings")

	pomodoro := raw["pomodoroSettings"].(map[string]interface{})
	assert.EqualValues(t, 4, pomodoro["cyclesBeforeLongBreak"])
	assert.EqualValues(t, 15, pomodoro["longBreakDuration"])
}

func TestLoad_Idempotent(t *testing.T) {
	store := newTestStore(t)

	first := store.Load()
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	second := store.Load()
	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, string(before), string(after))
}

func TestSaveThenLoad(t *testing.T) {
	store := newTestStore(t)
	settings := domain.Settings{
		Tasks: []domain.Task{
			{Name: "Write", WorkDuration: 50, BreakDuration: 10},
			{Name: "Read", WorkDuration: 20, BreakDuration: 5},
		},
		CurrentTaskIndex: 1,
		Pomodoro:         domain.PomodoroSettings{CyclesBeforeLongBreak: 3, LongBreakDuration: 25},
	}

	require.NoError(t, store.Save(settings))
	assert.Equal(t, settings, store.Load())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"tasks\": [")
	assert.Contains(t, string(data), `"workDuration": 50`)

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestLoad_CorruptFileFallsBackWithoutOverwriting(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `{"tasks": [{"name": "A"`},
		{"wrong type", `{"tasks": "nope"}`},
		{"not json", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.content), 0644))

			got := store.Load()
			if len(got.Tasks) != 2 || got.Tasks[0].Name != "Task 1" {
				t.Errorf("Load() = %+v, want defaults", got)
			}

			data, err := os.ReadFile(store.Path())
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestLoad_RepairsInvalidValues(t *testing.T) {
	store := newTestStore(t)
	content := `{
  "tasks": [{"name": "Deep", "workDuration": -5, "breakDuration": 7}],
  "currentTaskIndex": 9,
  "pomodoroSettings": {"cyclesBeforeLongBreak": 0, "longBreakDuration": 20}
}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

	got := store.Load()
	assert.Equal(t, "Deep", got.Tasks[0].Name)
	assert.Equal(t, domain.DefaultWorkMinutes, got.Tasks[0].WorkDuration)
	assert.Equal(t, 7, got.Tasks[0].BreakDuration)
	assert.Equal(t, 0, got.CurrentTaskIndex)
	assert.Equal(t, domain.DefaultCyclesBeforeLongBreak, got.Pomodoro.CyclesBeforeLongBreak)
	assert.Equal(t, 20, got.Pomodoro.LongBreakDuration)
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")
	store := New(path, nil)

	require.NoError(t, store.Save(domain.DefaultSettings()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
