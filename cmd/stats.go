package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/domain"
)

var statsDate string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the work and break totals of a day",
	Long: `Fold a day's session log into total work and break time.
Without --date the current day is shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if statsDate != "" {
			parsed, err := time.ParseInLocation(domain.DayLayout, statsDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", statsDate, err)
			}
			day = parsed
		}

		stats, err := app.stats.ForDate(cmd.Context(), day)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, statsJSON(stats))
		}

		icon := app.config.Theme.IconStats
		if icon == "" {
			icon = "📊"
		}
		fmt.Fprintf(out, "%s Statistics for %s\n", icon, stats.Date.Format(domain.DayLayout))
		fmt.Fprintf(out, "   Work:   %s\n", stats.WorkTotal())
		fmt.Fprintf(out, "   Break:  %s\n", stats.BreakTotal())
		if stats.Entries == 0 {
			fmt.Fprintln(out, "\n   No sessions recorded.")
		}
		return nil
	},
}

// statsJSON is the --json shape shared by stats and history.
func statsJSON(s domain.DailyStats) map[string]interface{} {
	return map[string]interface{}{
		"date":          s.Date.Format(domain.DayLayout),
		"work_seconds":  s.WorkSeconds,
		"break_seconds": s.BreakSeconds,
		"work":          s.WorkTotal(),
		"break":         s.BreakTotal(),
		"entries":       s.Entries,
	}
}

func init() {
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Day to show (YYYY-MM-DD, default today)")
}
