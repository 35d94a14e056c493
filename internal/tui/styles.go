package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds every style the table view renders with
type Styles struct {
	Header    lipgloss.Style
	Label     lipgloss.Style
	Score     lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
	Win       lipgloss.Style
	Lose      lipgloss.Style
	Draw      lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Pane      lipgloss.Style
}

// NewStyles builds styles for a theme rendering to out. The "plain" theme
// forces an ASCII colour profile so no escape codes are emitted.
func NewStyles(theme string, out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	if theme == "plain" {
		r.SetColorProfile(termenv.Ascii)
	}

	black := lipgloss.Color("#000000")
	cardBg := lipgloss.Color("#FAFAFA")
	if theme == "dark" {
		black = lipgloss.Color("#E0E0E0")
		cardBg = lipgloss.Color("#303030")
	}

	card := r.NewStyle().
		Background(cardBg).
		Padding(0, 1).
		MarginRight(1).
		Bold(true)

	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Score: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		RedCard:   card.Foreground(lipgloss.Color("#FF6B6B")),
		BlackCard: card.Foreground(black),
		Hidden: card.
			Foreground(lipgloss.Color("#626262")).
			Background(lipgloss.Color("#7D56F4")),
		Win: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Lose: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Draw: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Pane: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1),
	}
}
