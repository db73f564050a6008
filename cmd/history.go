package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/domain"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show daily work and break totals for the last days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyDays < 1 {
			return fmt.Errorf("--days must be at least 1, got %d", historyDays)
		}

		history, err := app.stats.History(cmd.Context(), historyDays)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			days := make([]map[string]interface{}, len(history))
			for i, d := range history {
				days[i] = statsJSON(d)
			}
			return printJSON(out, map[string]interface{}{
				"days":  days,
				"count": len(days),
			})
		}

		renderHistory(out, history, terminalWidth())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 7, "Number of days to show, today included")
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func renderHistory(out io.Writer, history []domain.DailyStats, width int) {
	theme := app.config.Theme
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp))
	workBar := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorWork))
	breakBar := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorBreak))

	fmt.Fprintf(out, "  %s\n", titleStyle.Render(fmt.Sprintf("Last %d days", len(history))))
	fmt.Fprintf(out, "  %s\n", dimStyle.Render(strings.Repeat("─", 40)))

	maxSeconds, totalWork, totalBreak := 0, 0, 0
	for _, d := range history {
		maxSeconds = max(maxSeconds, d.WorkSeconds+d.BreakSeconds)
		totalWork += d.WorkSeconds
		totalBreak += d.BreakSeconds
	}

	// date, two totals and the gaps take about 40 columns
	maxBarWidth := max(width-44, 10)
	for _, d := range history {
		work := scaleBar(d.WorkSeconds, maxSeconds, maxBarWidth)
		brk := scaleBar(d.BreakSeconds, maxSeconds, maxBarWidth)
		fmt.Fprintf(out, "  %s  %s  %s %s%s\n",
			dimStyle.Render(d.Date.Format("Mon 01-02")),
			d.WorkTotal(),
			d.BreakTotal(),
			workBar.Render(buildBar(work)),
			breakBar.Render(buildBar(brk)),
		)
	}

	fmt.Fprintf(out, "  %s\n", dimStyle.Render(strings.Repeat("─", 40)))
	fmt.Fprintf(out, "  Total      %s  %s\n", domain.FormatTotal(totalWork), domain.FormatTotal(totalBreak))
}

// scaleBar returns the bar width for value relative to maxValue; any
// non-zero value gets at least one cell.
func scaleBar(value, maxValue, maxWidth int) int {
	if value <= 0 || maxValue <= 0 {
		return 0
	}
	w := int(math.Round(float64(value) / float64(maxValue) * float64(maxWidth)))
	return max(w, 1)
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}
