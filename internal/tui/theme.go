package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colors used by the TUI. Views reference theme fields,
// never raw color values.
type Theme struct {
	Accent lipgloss.Color // cyan — active tab, titles
	Fg     lipgloss.Color // default foreground
	Muted  lipgloss.Color // gray — hints, separators
	Border lipgloss.Color // dark gray
	Header lipgloss.Color // red — table header
	Sum    lipgloss.Color // green — numeric aggregates
	Uniq   lipgloss.Color // yellow — distinct counts
}

// DefaultTheme returns the default theme using standard terminal colors.
func DefaultTheme() Theme {
	return Theme{
		Accent: lipgloss.Color("14"),
		Fg:     lipgloss.Color("15"),
		Muted:  lipgloss.Color("8"),
		Border: lipgloss.Color("240"),
		Header: lipgloss.Color("9"),
		Sum:    lipgloss.Color("10"),
		Uniq:   lipgloss.Color("11"),
	}
}

func mutedStyle(t *Theme) lipgloss.Style  { return lipgloss.NewStyle().Foreground(t.Muted) }
func accentStyle(t *Theme) lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Accent) }
func borderStyle(t *Theme) lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Border) }
