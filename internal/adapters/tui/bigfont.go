package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphs maps each clock character to three rows of half-block art.
// Digits are three cells wide, the colon one.
var glyphs = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▀█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {"▄", "▄", " "},
}

// minBigClockWidth is the narrowest terminal that gets the large clock.
const minBigClockWidth = 40

// renderBigClock draws a clock string such as "24:59" or "01:02:03" in
// large glyphs. Narrow terminals and unknown characters get a single
// bold line instead.
func renderBigClock(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minBigClockWidth {
		return style.Render(clock)
	}

	var rows [3][]string
	for _, ch := range clock {
		g, ok := glyphs[ch]
		if !ok {
			return style.Render(clock)
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = style.Render(strings.Join(r, " "))
	}
	return strings.Join(lines, "\n")
}
