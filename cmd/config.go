package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration and where it is stored",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := configEntries(app.config)
		out := cmd.OutOrStdout()

		if jsonOutput {
			values := make(map[string]string, len(entries))
			for _, e := range entries {
				values[e.key] = e.value
			}
			return printJSON(out, values)
		}

		if app.configErr != nil {
			fmt.Fprintf(out, "⚠️  Config file could not be loaded, showing defaults: %v\n\n", app.configErr)
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%-28s %s\n", e.key, e.value)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and data paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]string{
				"config":   path,
				"data_dir": app.config.Storage.DataDir,
				"settings": config.GetSettingsPath(app.config),
				"logs":     config.GetLogDir(app.config),
				"archive":  config.GetDBPath(app.config),
			})
		}

		fmt.Fprintf(out, "Config:    %s\n", path)
		fmt.Fprintf(out, "Data dir:  %s\n", app.config.Storage.DataDir)
		fmt.Fprintf(out, "Settings:  %s\n", config.GetSettingsPath(app.config))
		fmt.Fprintf(out, "Logs:      %s\n", config.GetLogDir(app.config))
		fmt.Fprintf(out, "Archive:   %s\n", config.GetDBPath(app.config))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return config.ExpandPath(configPath)
	}
	return config.GetConfigPath()
}

type configEntry struct {
	key   string
	value string
}

// configEntries lists the settings that change behavior, keyed as in the
// config file. Theme colors are left out.
func configEntries(cfg *config.Config) []configEntry {
	return []configEntry{
		{"storage.data_dir", cfg.Storage.DataDir},
		{"notifications.enabled", strconv.FormatBool(cfg.Notifications.Enabled)},
		{"notifications.sound", strconv.FormatBool(cfg.Notifications.Sound)},
		{"notifications.timeout", cfg.NotificationTimeout().String()},
		{"sounds.dir", config.GetSoundsDir(cfg)},
		{"log.level", cfg.Log.Level},
		{"archive.enabled", strconv.FormatBool(cfg.Archive.Enabled)},
		{"timer.tick_interval", cfg.TickInterval().String()},
		{"presets.work", joinInts(cfg.Presets.WorkMinutes())},
		{"presets.break", joinInts(cfg.Presets.BreakMinutes())},
		{"mcp.enabled", strconv.FormatBool(cfg.MCP.Enabled)},
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
