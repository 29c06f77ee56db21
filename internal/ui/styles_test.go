package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStyles(t *testing.T) {
	// Force color profile for testing
	lipgloss.SetColorProfile(termenv.ANSI256)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	out := StyleSuccess.Render("Test")
	assert.Contains(t, out, "Test")
	assert.NotEqual(t, "Test", out, "Style should add ANSI codes when forced")
}

func TestIcon(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)
	defer lipgloss.SetColorProfile(termenv.Ascii)

	out := Icon("✓", StylePrefixDone)
	assert.Contains(t, out, "✓")
	assert.NotEqual(t, "✓", out)
}
