// Package themes holds the color schemes of the run browser.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	RoundedBox  lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Long        lipgloss.Color
	Inverse     lipgloss.Color
	Commodity   lipgloss.Color
}

func build(fg, muted, border, primary, selectedFg, errColor, info, long, inverse, commodity string) Theme {
	return Theme{
		Primary:   lipgloss.Color(primary),
		Muted:     lipgloss.Color(muted),
		Border:    lipgloss.Color(border),
		Long:      lipgloss.Color(long),
		Inverse:   lipgloss.Color(inverse),
		Commodity: lipgloss.Color(commodity),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fg)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fg)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(primary)).
			Foreground(lipgloss.Color(selectedFg)).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(errColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(info)).
			Bold(true),
	}
}

// Default is the default theme.
var Default = build("#fafafa", "#737373", "#404040", "#7c3aed", "#fafafa", "#ef4444", "#3b82f6", "#10b981", "#ef4444", "#f59e0b")

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build("#cdd6f4", "#6c7086", "#45475a", "#cba6f7", "#1e1e2e", "#f38ba8", "#89dceb", "#a6e3a1", "#f38ba8", "#f9e2af")

// ByName returns the named theme, or Default.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
