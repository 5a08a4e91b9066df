package ui

import "fmt"

// ANSI256 color codes.
const (
	colorOK     = 71  // green
	colorWarn   = 178 // amber
	colorErr    = 167 // red
	colorMuted  = 245 // medium gray
	colorAccent = 74  // blue
)

var noColor bool

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderOK returns s in green.
func RenderOK(s string) string { return render(colorOK, s) }

// RenderWarn returns s in amber.
func RenderWarn(s string) string { return render(colorWarn, s) }

// RenderErr returns s in red.
func RenderErr(s string) string { return render(colorErr, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return render(colorMuted, s) }

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return render(colorAccent, s) }

// RenderState colors a mutation state by severity.
func RenderState(state string) string {
	switch state {
	case "succeeded":
		return RenderOK(state)
	case "noop", "rejected":
		return RenderWarn(state)
	default:
		return RenderErr(state)
	}
}
