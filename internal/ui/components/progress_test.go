package components

import (
	"strings"
	"testing"

	"github.com/abhisek/storyquest/internal/ui/theme"
)

func TestProgressBar_View(t *testing.T) {
	old := theme.Plain
	theme.Plain = true
	defer func() { theme.Plain = old }()

	tests := []struct {
		percent float64
		filled  int
		suffix  string
	}{
		{0, 0, "  0%"},
		{0.5, 5, "  50%"},
		{1, 10, "  100%"},
		{1.7, 10, "  170%"},
		{-0.2, 0, "  -20%"},
	}
	for _, tt := range tests {
		got := NewProgressBar("", tt.percent, true, 10).View()
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("percent %.1f: %d filled cells, want %d", tt.percent, n, tt.filled)
		}
		if n := strings.Count(got, "░"); n != 10-tt.filled {
			t.Errorf("percent %.1f: %d empty cells, want %d", tt.percent, n, 10-tt.filled)
		}
		if !strings.HasSuffix(got, tt.suffix) {
			t.Errorf("percent %.1f: %q missing suffix %q", tt.percent, got, tt.suffix)
		}
	}
}

func TestProgressBar_Label(t *testing.T) {
	old := theme.Plain
	theme.Plain = true
	defer func() { theme.Plain = old }()

	got := NewProgressBar("Sharp Eyes", 0.25, false, 2).View()
	if got != "Sharp Eyes  █░░░" {
		t.Errorf("View = %q", got)
	}
}
