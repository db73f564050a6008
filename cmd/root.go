// Package cmd provides the CLI commands for the pomo timer.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath string
	dataDir    string
	jsonOutput bool

	// isInteractive reports whether stdin and stdout are terminals.
	isInteractive = func() bool {
		return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
	}
)

// errNotInteractive is returned when the timer screen is started without a terminal.
var errNotInteractive = errors.New("the timer needs an interactive terminal; use a subcommand or \"pomo mcp\" instead")

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "pomo - a Pomodoro timer for the terminal",
	Long: `pomo runs a Pomodoro cycle of work periods, short breaks and long breaks.
Each task carries its own work and break length; every transition is written
to a daily log that the stats, history and export commands read back.

Run "pomo" with no arguments to open the timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.pomo/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for settings, logs and the archive (overrides storage.data_dir)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// runTimer opens the full-screen timer for the bare "pomo" command.
func runTimer(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return errNotInteractive
	}

	ctx, cancel := setupSignalHandler(cmd.Context())
	defer cancel()

	engine, err := startEngine(ctx)
	if err != nil {
		return err
	}

	timer := tui.NewTimer(engine, tui.Options{
		Theme:        &app.config.Theme,
		WorkPresets:  app.config.Presets.WorkMinutes(),
		BreakPresets: app.config.Presets.BreakMinutes(),
		Stats:        app.stats,
	})
	if err := timer.Run(ctx); err != nil {
		return fmt.Errorf("timer error: %w", err)
	}
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
