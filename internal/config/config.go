// Package config provides configuration management for pomo.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const defaultDataDir = "~/.pomo"

// Config holds the application configuration. Tasks and durations are not
// part of it: they live in the settings file under the data directory.
type Config struct {
	Storage       StorageConfig      `mapstructure:"storage"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Sounds        SoundConfig        `mapstructure:"sounds"`
	Log           LogConfig          `mapstructure:"log"`
	Archive       ArchiveConfig      `mapstructure:"archive"`
	Timer         TimerConfig        `mapstructure:"timer"`
	Presets       PresetConfig       `mapstructure:"presets"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Sound   bool     `mapstructure:"sound"`
	Timeout Duration `mapstructure:"timeout"`
}

// SoundConfig points at the directory holding the cue files.
// An empty Dir means <data_dir>/sounds.
type SoundConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ArchiveConfig controls the SQLite copy of the session log.
type ArchiveConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TimerConfig holds tick driver settings.
type TimerConfig struct {
	TickInterval Duration `mapstructure:"tick_interval"`
}

// PresetConfig holds the quick-pick minute values offered by the timer screen.
type PresetConfig struct {
	Work  []int `mapstructure:"work"`
	Break []int `mapstructure:"break"`
}

// WorkMinutes returns the positive work presets.
func (p PresetConfig) WorkMinutes() []int {
	return positive(p.Work, []int{15, 25, 50})
}

// BreakMinutes returns the positive break presets.
func (p PresetConfig) BreakMinutes() []int {
	return positive(p.Break, []int{5, 10, 15})
}

func positive(values, fallback []int) []int {
	var out []int
	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorWork           string `mapstructure:"color_work"`
	ColorBreak          string `mapstructure:"color_break"`
	ColorLongBreak      string `mapstructure:"color_long_break"`
	ColorPaused         string `mapstructure:"color_paused"`
	ColorTitle          string `mapstructure:"color_title"`
	ColorTask           string `mapstructure:"color_task"`
	ColorHelp           string `mapstructure:"color_help"`
	ColorError          string `mapstructure:"color_error"`
	WorkGradientStart   string `mapstructure:"work_gradient_start"`
	WorkGradientEnd     string `mapstructure:"work_gradient_end"`
	BreakGradientStart  string `mapstructure:"break_gradient_start"`
	BreakGradientEnd    string `mapstructure:"break_gradient_end"`
	PausedGradientStart string `mapstructure:"paused_gradient_start"`
	PausedGradientEnd   string `mapstructure:"paused_gradient_end"`
	IconApp             string `mapstructure:"icon_app"`
	IconTask            string `mapstructure:"icon_task"`
	IconStats           string `mapstructure:"icon_stats"`
	IconPaused          string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:           "#E0605A",
		ColorBreak:          "#4ECDC4",
		ColorLongBreak:      "#2ECC71",
		ColorPaused:         "#6B7280",
		ColorTitle:          "#6B7280",
		ColorTask:           "#A0AEC0",
		ColorHelp:           "#95A5A6",
		ColorError:          "#E74C3C",
		WorkGradientStart:   "#E0605A",
		WorkGradientEnd:     "#F5A623",
		BreakGradientStart:  "#4ECDC4",
		BreakGradientEnd:    "#2ECC71",
		PausedGradientStart: "#6B7280",
		PausedGradientEnd:   "#4B5563",
		IconApp:             "🍅",
		IconTask:            "📋",
		IconStats:           "📊",
		IconPaused:          "⏸",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
			Timeout: Duration(3 * time.Second),
		},
		Log: LogConfig{
			Level: "info",
		},
		Archive: ArchiveConfig{
			Enabled: true,
		},
		Timer: TimerConfig{
			TickInterval: Duration(time.Second),
		},
		Presets: PresetConfig{
			Work:  []int{15, 25, 50},
			Break: []int{5, 10, 15},
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath, creating the file with
// defaults if it does not exist.
func LoadFrom(configPath string) (*Config, error) {
	v := newViper(configPath)

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := SaveTo(DefaultConfig(), configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := ExpandPath(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir
	return &cfg, nil
}

// Resolved returns a copy of the defaults with the data directory expanded.
// It is what the commands fall back to when the config file is unusable.
func Resolved() *Config {
	cfg := DefaultConfig()
	if dir, err := ExpandPath(cfg.Storage.DataDir); err == nil {
		cfg.Storage.DataDir = dir
	}
	return cfg
}

// SaveTo writes the configuration to configPath.
func SaveTo(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("notifications.timeout", cfg.Notifications.Timeout.String())
	v.Set("sounds.dir", cfg.Sounds.Dir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("archive.enabled", cfg.Archive.Enabled)
	v.Set("timer.tick_interval", cfg.Timer.TickInterval.String())
	v.Set("presets.work", cfg.Presets.Work)
	v.Set("presets.break", cfg.Presets.Break)
	v.Set("mcp.enabled", cfg.MCP.Enabled)
	v.Set("theme.color_work", cfg.Theme.ColorWork)
	v.Set("theme.color_break", cfg.Theme.ColorBreak)
	v.Set("theme.color_long_break", cfg.Theme.ColorLongBreak)
	v.Set("theme.color_paused", cfg.Theme.ColorPaused)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_task", cfg.Theme.ColorTask)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.color_error", cfg.Theme.ColorError)
	v.Set("theme.work_gradient_start", cfg.Theme.WorkGradientStart)
	v.Set("theme.work_gradient_end", cfg.Theme.WorkGradientEnd)
	v.Set("theme.break_gradient_start", cfg.Theme.BreakGradientStart)
	v.Set("theme.break_gradient_end", cfg.Theme.BreakGradientEnd)
	v.Set("theme.paused_gradient_start", cfg.Theme.PausedGradientStart)
	v.Set("theme.paused_gradient_end", cfg.Theme.PausedGradientEnd)
	v.Set("theme.icon_app", cfg.Theme.IconApp)
	v.Set("theme.icon_task", cfg.Theme.IconTask)
	v.Set("theme.icon_stats", cfg.Theme.IconStats)
	v.Set("theme.icon_paused", cfg.Theme.IconPaused)

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

// ExpandPath expands a leading ~ and fills in the default data directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		path = defaultDataDir
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// GetSettingsPath returns the path to the tasks and durations file.
func GetSettingsPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "settings.json")
}

// GetLogDir returns the directory of the daily session log files.
func GetLogDir(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "logs")
}

// GetDBPath returns the path to the archive database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomo.db")
}

// GetDiagnosticLogPath returns the path of the diagnostic log.
func GetDiagnosticLogPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomo.log")
}

// GetSoundsDir returns the directory of the cue files.
func GetSoundsDir(cfg *Config) string {
	if cfg.Sounds.Dir != "" {
		if dir, err := ExpandPath(cfg.Sounds.Dir); err == nil {
			return dir
		}
	}
	return filepath.Join(cfg.Storage.DataDir, "sounds")
}

// TickInterval returns the tick period, one second when unset.
func (c *Config) TickInterval() time.Duration {
	if d := time.Duration(c.Timer.TickInterval); d > 0 {
		return d
	}
	return time.Second
}

// NotificationTimeout returns the alert delivery bound, three seconds when unset.
func (c *Config) NotificationTimeout() time.Duration {
	if d := time.Duration(c.Notifications.Timeout); d > 0 {
		return d
	}
	return 3 * time.Second
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("storage.data_dir", defaults.Storage.DataDir)
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("notifications.sound", defaults.Notifications.Sound)
	v.SetDefault("notifications.timeout", defaults.Notifications.Timeout.String())
	v.SetDefault("sounds.dir", "")
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("archive.enabled", defaults.Archive.Enabled)
	v.SetDefault("timer.tick_interval", defaults.Timer.TickInterval.String())
	v.SetDefault("presets.work", defaults.Presets.Work)
	v.SetDefault("presets.break", defaults.Presets.Break)
	v.SetDefault("mcp.enabled", defaults.MCP.Enabled)

	// Theme defaults
	theme := defaults.Theme
	v.SetDefault("theme.color_work", theme.ColorWork)
	v.SetDefault("theme.color_break", theme.ColorBreak)
	v.SetDefault("theme.color_long_break", theme.ColorLongBreak)
	v.SetDefault("theme.color_paused", theme.ColorPaused)
	v.SetDefault("theme.color_title", theme.ColorTitle)
	v.SetDefault("theme.color_task", theme.ColorTask)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.color_error", theme.ColorError)
	v.SetDefault("theme.work_gradient_start", theme.WorkGradientStart)
	v.SetDefault("theme.work_gradient_end", theme.WorkGradientEnd)
	v.SetDefault("theme.break_gradient_start", theme.BreakGradientStart)
	v.SetDefault("theme.break_gradient_end", theme.BreakGradientEnd)
	v.SetDefault("theme.paused_gradient_start", theme.PausedGradientStart)
	v.SetDefault("theme.paused_gradient_end", theme.PausedGradientEnd)
	v.SetDefault("theme.icon_app", theme.IconApp)
	v.SetDefault("theme.icon_task", theme.IconTask)
	v.SetDefault("theme.icon_stats", theme.IconStats)
	v.SetDefault("theme.icon_paused", theme.IconPaused)
}
