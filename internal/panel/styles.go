package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00aaaa")).
			Bold(true)

	presetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#333344")).
			Padding(0, 1)

	activePresetStyle = presetStyle.
				Foreground(lipgloss.Color("#ffffff")).
				BorderForeground(lipgloss.Color("#00ffff")).
				Bold(true)

	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0, 0, 0)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)

	modeStyles = map[string]lipgloss.Style{
		"EDIT":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#888899")),
		"PLAYING": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
		"PAUSED":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
	}

	easingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff66cc"))

	sliderFill  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))
	sliderTrack = lipgloss.NewStyle().Foreground(lipgloss.Color("#333344"))
)

// slider renders v within [lo, hi] as a bar of the given width.
func slider(v, lo, hi float64, width int) string {
	frac := 0.0
	if hi > lo {
		frac = (v - lo) / (hi - lo)
	}
	filled := int(frac*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return sliderFill.Render(strings.Repeat("█", filled)) + sliderTrack.Render(strings.Repeat("░", width-filled))
}

func hint(key, what string) string {
	return keyStyle.Render(key) + subtle.Render(" "+what+"  ")
}
