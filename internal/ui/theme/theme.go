package theme

import (
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
)

// Color palette, kid-friendly, bright but not garish
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Up = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Down = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)
)

// intentColors maps recommendation intents to accent colors.
var intentColors = map[string]lipgloss.Style{
	"reinforce": lipgloss.NewStyle().Foreground(Accent).Bold(true),
	"deepen":    lipgloss.NewStyle().Foreground(Primary).Bold(true),
	"apply":     lipgloss.NewStyle().Foreground(Secondary).Bold(true),
	"bridge":    lipgloss.NewStyle().Foreground(Success).Bold(true),
}

// Plain disables styling. It defaults to true when stdout is not a terminal
// or NO_COLOR is set.
var Plain = os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd())

// Render applies style to s unless Plain is set.
func Render(style lipgloss.Style, s string) string {
	if Plain {
		return s
	}
	return style.Render(s)
}

// Intent renders an intent label in its accent color.
func Intent(name string) string {
	style, ok := intentColors[name]
	if !ok {
		style = Body
	}
	return Render(style, name)
}

// Delta renders a signed rating change with one decimal, green when positive
// and red when negative.
func Delta(d float64) string {
	s := fmt.Sprintf("%+.1f", d)
	switch {
	case d > 0:
		return Render(Up, s)
	case d < 0:
		return Render(Down, s)
	default:
		return s
	}
}
