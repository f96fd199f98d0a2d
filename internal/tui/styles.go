package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ritmoapp/ritmo/internal/task"
)

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	Title      lipgloss.Style
	TimeColumn lipgloss.Style
	Cursor     lipgloss.Style
	NowMarker  lipgloss.Style
	Empty      lipgloss.Style
	Completed  lipgloss.Style
	Status     lipgloss.Style
	Warning    lipgloss.Style
	Help       lipgloss.Style
	FormBox    lipgloss.Style
	FormLabel  lipgloss.Style
	FormFocus  lipgloss.Style

	categories map[task.Category]lipgloss.Style
}

// NewStyles builds the default style set.
func NewStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true),
		TimeColumn: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Cursor:     lipgloss.NewStyle().Reverse(true),
		NowMarker:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Completed:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2),
		FormLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		FormFocus: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),

		categories: map[task.Category]lipgloss.Style{
			task.CategoryWork:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
			task.CategoryWellness: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			task.CategoryFitness:  lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
			task.CategoryGrowth:   lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
			task.CategoryGeneral:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		},
	}
}

// Category returns the style for a task category.
func (s Styles) Category(c task.Category) lipgloss.Style {
	if st, ok := s.categories[c]; ok {
		return st
	}
	return s.categories[task.CategoryGeneral]
}
