package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomotray/internal/domain"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportPeriod string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session log",
	Long:  "Export the session log records of a period as markdown, CSV or YAML.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		from, err := exportSince(exportPeriod, now)
		if err != nil {
			return err
		}
		y, m, d := now.Date()
		to := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())

		entries, err := app.stats.Entries(cmd.Context(), from, to)
		if err != nil {
			return fmt.Errorf("failed to read session log: %w", err)
		}

		out := cmd.OutOrStdout()
		switch exportFormat {
		case "csv":
			return exportCSV(out, entries)
		case "yaml", "yml":
			return exportYAML(out, entries, now)
		case "md", "markdown":
			return exportMarkdown(out, entries, now)
		default:
			return fmt.Errorf("unknown format %q (want md, csv or yaml)", exportFormat)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md, csv or yaml")
	exportCmd.Flags().StringVar(&exportPeriod, "period", "week", "Time period: day, week, month, or all")
}

// exportSince returns the start of the export period. The zero time means
// since the first record.
func exportSince(period string, now time.Time) (time.Time, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch period {
	case "day":
		return today, nil
	case "week":
		return today.AddDate(0, 0, -6), nil
	case "month":
		return today.AddDate(0, -1, 0), nil
	case "all":
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q (want day, week, month or all)", period)
	}
}

// groupByDay splits entries, already in order, into per-day totals.
func groupByDay(entries []domain.LogEntry) ([]domain.DailyStats, map[string][]domain.LogEntry) {
	byDay := make(map[string][]domain.LogEntry)
	var days []domain.DailyStats
	for _, e := range entries {
		key := e.Day()
		if _, ok := byDay[key]; !ok {
			y, m, d := e.Timestamp.Date()
			days = append(days, domain.DailyStats{Date: time.Date(y, m, d, 0, 0, 0, 0, e.Timestamp.Location())})
		}
		byDay[key] = append(byDay[key], e)
	}
	for i, d := range days {
		days[i] = domain.AggregateDay(d.Date, byDay[d.Date.Format(domain.DayLayout)])
	}
	return days, byDay
}

func exportMarkdown(w io.Writer, entries []domain.LogEntry, now time.Time) error {
	fmt.Fprintf(w, "# Pomodoro Session Export\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", now.Format("2006-01-02 15:04"))

	if len(entries) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}

	days, byDay := groupByDay(entries)
	for _, d := range days {
		key := d.Date.Format(domain.DayLayout)
		fmt.Fprintf(w, "## %s\n\n", key)
		fmt.Fprintf(w, "- Work: %s\n", d.WorkTotal())
		fmt.Fprintf(w, "- Break: %s\n\n", d.BreakTotal())
		fmt.Fprintln(w, "| Time | Task | Action | Duration |")
		fmt.Fprintln(w, "|------|------|--------|----------|")
		for _, e := range byDay[key] {
			duration := ""
			if e.DurationSeconds > 0 {
				duration = domain.FormatTotal(e.DurationSeconds)
			}
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", e.Timestamp.Format("15:04:05"), e.Task, e.Action, duration)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func exportCSV(w io.Writer, entries []domain.LogEntry) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{"timestamp", "task", "action", "duration_seconds"})
	for _, e := range entries {
		_ = cw.Write([]string{
			e.Timestamp.Format(domain.TimestampLayout),
			e.Task,
			string(e.Action),
			strconv.Itoa(e.DurationSeconds),
		})
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

type yamlExport struct {
	Generated string          `yaml:"generated"`
	Days      []yamlExportDay `yaml:"days"`
}

type yamlExportDay struct {
	Date         string            `yaml:"date"`
	WorkSeconds  int               `yaml:"work_seconds"`
	BreakSeconds int               `yaml:"break_seconds"`
	Entries      []yamlExportEntry `yaml:"entries"`
}

type yamlExportEntry struct {
	Timestamp       string `yaml:"timestamp"`
	Task            string `yaml:"task"`
	Action          string `yaml:"action"`
	DurationSeconds int    `yaml:"duration_seconds,omitempty"`
}

func exportYAML(w io.Writer, entries []domain.LogEntry, now time.Time) error {
	doc := yamlExport{
		Generated: now.Format(domain.TimestampLayout),
		Days:      []yamlExportDay{},
	}

	days, byDay := groupByDay(entries)
	for _, d := range days {
		key := d.Date.Format(domain.DayLayout)
		day := yamlExportDay{
			Date:         key,
			WorkSeconds:  d.WorkSeconds,
			BreakSeconds: d.BreakSeconds,
		}
		for _, e := range byDay[key] {
			day.Entries = append(day.Entries, yamlExportEntry{
				Timestamp:       e.Timestamp.Format(domain.TimestampLayout),
				Task:            e.Task,
				Action:          string(e.Action),
				DurationSeconds: e.DurationSeconds,
			})
		}
		doc.Days = append(doc.Days, day)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
