package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ritmoapp/ritmo/internal/task"
)

// Color definitions for consistent styling across the UI.
var (
	// Work: bold cyan for focus
	colorWork = color.New(color.FgCyan, color.Bold)

	// Wellness: green for rest and recovery
	colorWellness = color.New(color.FgGreen)

	// Fitness: magenta for movement
	colorFitness = color.New(color.FgMagenta)

	// Growth: yellow for learning
	colorGrowth = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Warnings and conflicts: red to make them pop
	colorWarn = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// separator returns a horizontal rule sized to the terminal.
func separator() string {
	return strings.Repeat("─", separatorWidth(termWidth()))
}

// separatorWidth clamps a terminal width so rules stay readable on
// very narrow or very wide terminals.
func separatorWidth(w int) int {
	switch {
	case w < 20:
		return 20
	case w > 100:
		return 100
	default:
		return w
	}
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// categoryColor returns the color for a task category.
func categoryColor(c task.Category) *color.Color {
	switch c {
	case task.CategoryWork:
		return colorWork
	case task.CategoryWellness:
		return colorWellness
	case task.CategoryFitness:
		return colorFitness
	case task.CategoryGrowth:
		return colorGrowth
	default:
		return colorMuted
	}
}

// formatCategory formats the bracketed category tag, e.g. "[work]".
func formatCategory(c task.Category) string {
	return categoryColor(c).Sprintf("[%s]", c)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatWarn formats text for conflict warnings.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
