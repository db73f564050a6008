package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change durations and the long-break threshold",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := app.settings.Load()
		out := cmd.OutOrStdout()

		if jsonOutput {
			return printJSON(out, settings)
		}

		task := settings.CurrentTask()
		fmt.Fprintln(out, "⚙️  Settings")
		fmt.Fprintf(out, "   Current task:               %s\n", task.Name)
		fmt.Fprintf(out, "   Work time:                  %d min\n", task.WorkDuration)
		fmt.Fprintf(out, "   Break time:                 %d min\n", task.BreakDuration)
		fmt.Fprintf(out, "   Long break time:            %d min\n", settings.Pomodoro.LongBreakDuration)
		fmt.Fprintf(out, "   Cycles before long break:   %d\n", settings.Pomodoro.CyclesBeforeLongBreak)
		fmt.Fprintf(out, "   Tasks:                      %d\n", len(settings.Tasks))
		fmt.Fprintf(out, "   File:                       %s\n", app.settings.Path())
		return nil
	},
}

// settingSetters maps a setting name to the engine command that changes it.
var settingSetters = map[string]func(*services.Engine, context.Context, int) error{
	"work":       (*services.Engine).SetWorkDuration,
	"break":      (*services.Engine).SetBreakDuration,
	"long-break": (*services.Engine).SetLongBreakDuration,
	"cycles":     (*services.Engine).SetCyclesBeforeLongBreak,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <work|break|long-break|cycles> <n>",
	Short: "Change a duration (minutes) or the number of cycles before a long break",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(strings.TrimSpace(args[0]))
		set, ok := settingSetters[name]
		if !ok {
			return fmt.Errorf("unknown setting %q (want work, break, long-break or cycles)", args[0])
		}
		n, err := domain.ParsePositive(args[1])
		if err != nil {
			return err
		}

		if err := set(newEngine(), cmd.Context(), n); err != nil {
			return fmt.Errorf("failed to update %s: %w", name, err)
		}

		unit := "min"
		if name == "cycles" {
			unit = "cycles"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %s set to %d %s\n", name, n, unit)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
