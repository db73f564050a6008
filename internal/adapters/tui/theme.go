package tui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomotray/internal/config"
	"github.com/xvierd/pomotray/internal/domain"
)

// resolveTheme fills the empty fields of theme with the defaults.
// A nil theme yields the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// styles holds the lipgloss styles derived from a theme.
type styles struct {
	title lipgloss.Style
	task  lipgloss.Style
	help  lipgloss.Style
	err   lipgloss.Style
	badge lipgloss.Style
	panel lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)).MarginBottom(1),
		task:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorTask)),
		help:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorError)),
		badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(theme.ColorPaused)).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.ColorHelp)).
			Padding(0, 2),
	}
}

// periodColor returns the accent colour of a period, grey while paused.
func periodColor(theme config.ThemeConfig, state domain.CycleState) lipgloss.Color {
	switch {
	case state.Paused:
		return lipgloss.Color(theme.ColorPaused)
	case state.Period == domain.PeriodLongBreak:
		return lipgloss.Color(theme.ColorLongBreak)
	case state.Period.IsBreak():
		return lipgloss.Color(theme.ColorBreak)
	default:
		return lipgloss.Color(theme.ColorWork)
	}
}

// progressBar builds a bar with the gradient matching the period.
func progressBar(theme config.ThemeConfig, state domain.CycleState, width int) progress.Model {
	var bar progress.Model
	switch {
	case state.Paused:
		bar = progress.New(progress.WithGradient(theme.PausedGradientStart, theme.PausedGradientEnd))
	case state.Period.IsBreak():
		bar = progress.New(progress.WithGradient(theme.BreakGradientStart, theme.BreakGradientEnd))
	default:
		bar = progress.New(progress.WithGradient(theme.WorkGradientStart, theme.WorkGradientEnd))
	}
	if width > 4 {
		bar.Width = width - 4
	}
	return bar
}
