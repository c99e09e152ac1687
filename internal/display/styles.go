package display

import "github.com/charmbracelet/lipgloss"

// Soft palette with large, high-contrast text where it matters.
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f4f4f5"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	listeningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	advisoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			PaddingLeft(2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("#f4f4f5"))

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#71717a"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#fca5a5")).
			Padding(1, 3).
			Width(52)

	dotOn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f4f4f5")).Render("●")
	dotOff = lipgloss.NewStyle().Foreground(lipgloss.Color("#52525b")).Render("○")
)

// accent maps a condition color tag to a terminal color.
func accent(tag string) lipgloss.Style {
	c := map[string]string{
		"blue":   "#93c5fd",
		"green":  "#86efac",
		"yellow": "#fde68a",
		"red":    "#fca5a5",
		"purple": "#d8b4fe",
	}[tag]
	if c == "" {
		c = "#d4d4d8"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
}
