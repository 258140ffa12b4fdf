package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/storyquest/internal/ui/theme"
)

// ProgressBar displays a horizontal mastery bar in plain text cells.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Render(theme.Body, p.Label))
		b.WriteString("  ")
	}

	barWidth := max(p.Width, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	b.WriteString(theme.Render(theme.Up, strings.Repeat("█", filled)))
	b.WriteString(theme.Render(theme.Locked, strings.Repeat("░", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(theme.Render(theme.Hint, fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}

	return b.String()
}
