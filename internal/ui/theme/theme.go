package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette for the VenusAR brand: rose and gold on a night background.
var (
	Primary   = lipgloss.Color("#E11D74") // Venus rose
	Secondary = lipgloss.Color("#F5B942") // Gold
	Accent    = lipgloss.Color("#A78BFA") // Lavender
	Success   = lipgloss.Color("#34D399") // Emerald
	Error     = lipgloss.Color("#F43F5E") // Red rose
	Warning   = lipgloss.Color("#FBBF24") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#9CA3AF") // Gray
	BgDark    = lipgloss.Color("#0B0714") // Night
	BgCard    = lipgloss.Color("#1A1025") // Plum
	Border    = lipgloss.Color("#3B2A4D") // Dusk
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Alert = lipgloss.NewStyle().
		Foreground(Error).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Error).
		Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	Tag = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Secondary).
		Padding(0, 1)
)

// DifficultyColor returns the accent used for a difficulty level, 0 being easiest.
func DifficultyColor(level int) lipgloss.Style {
	switch level {
	case 0:
		return lipgloss.NewStyle().Foreground(Success)
	case 1:
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return lipgloss.NewStyle().Foreground(Error)
	}
}
