package theme

import "testing"

func TestRender_Plain(t *testing.T) {
	old := Plain
	defer func() { Plain = old }()

	Plain = true
	if got := Render(Title, "Skills"); got != "Skills" {
		t.Errorf("Render in plain mode = %q, want unstyled text", got)
	}
	if got := Intent("deepen"); got != "deepen" {
		t.Errorf("Intent in plain mode = %q", got)
	}
	if got := Delta(12.34); got != "+12.3" {
		t.Errorf("Delta(12.34) = %q, want +12.3", got)
	}
	if got := Delta(-0.05); got != "-0.1" {
		t.Errorf("Delta(-0.05) = %q, want -0.1", got)
	}
}
