package theme

import "github.com/charmbracelet/lipgloss"

// Café palette: dark roast backgrounds, crema text, a few warm accents.
var (
	Roast    = lipgloss.Color("#1f1612")
	Espresso = lipgloss.Color("#2b1f1a")
	Mocha    = lipgloss.Color("#4a3228")
	Crema    = lipgloss.Color("#f3e5d0")
	Foam     = lipgloss.Color("#bfae98")
	Caramel  = lipgloss.Color("#e0a458")
	Cinnamon = lipgloss.Color("#d2691e")
	Matcha   = lipgloss.Color("#9bbf6a")
	Berry    = lipgloss.Color("#c5587a")

	App = lipgloss.NewStyle().
		Background(Roast).
		Foreground(Crema).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Mocha).
		Background(Espresso).
		Foreground(Crema).
		Padding(0, 1)

	Banner = lipgloss.NewStyle().
		Foreground(Roast).
		Background(Caramel).
		Bold(true).
		Padding(0, 2)

	Title  = lipgloss.NewStyle().Foreground(Caramel).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Foam)
	Hot    = lipgloss.NewStyle().Foreground(Cinnamon).Bold(true)
	Good   = lipgloss.NewStyle().Foreground(Matcha)
	Warn   = lipgloss.NewStyle().Foreground(Berry).Bold(true)
	Locked = lipgloss.NewStyle().Foreground(Mocha)
)
