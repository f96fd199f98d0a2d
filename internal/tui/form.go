package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/sched"
	"github.com/ritmoapp/ritmo/internal/slot"
	"github.com/ritmoapp/ritmo/internal/task"
)

const (
	formFieldTitle = iota
	formFieldCategory
	formFieldDuration
	formFieldCount
)

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.formTitle.Blur()
		return m, nil

	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % formFieldCount
		m = m.syncFormFocus()
		return m, nil

	case "shift+tab", "up":
		m.formFocus = (m.formFocus + formFieldCount - 1) % formFieldCount
		m = m.syncFormFocus()
		return m, nil

	case "left", "right":
		switch m.formFocus {
		case formFieldCategory:
			n := len(task.Categories())
			if msg.String() == "right" {
				m.formCategory = (m.formCategory + 1) % n
			} else {
				m.formCategory = (m.formCategory + n - 1) % n
			}
			return m, nil
		case formFieldDuration:
			n := len(durationOptions)
			if msg.String() == "right" {
				m.formDuration = (m.formDuration + 1) % n
			} else {
				m.formDuration = (m.formDuration + n - 1) % n
			}
			return m, nil
		}

	case "enter":
		return m.submitForm()
	}

	if m.formFocus == formFieldTitle {
		var cmd tea.Cmd
		m.formTitle, cmd = m.formTitle.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) syncFormFocus() Model {
	if m.formFocus == formFieldTitle {
		m.formTitle.Focus()
	} else {
		m.formTitle.Blur()
	}
	return m
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.formTitle.Value())
	if title == "" {
		m.statusMsg = "title cannot be empty"
		return m, nil
	}
	category := task.Categories()[m.formCategory]
	duration := durationOptions[m.formDuration]

	m.mode = ModeNormal
	m.formTitle.Blur()

	if m.editID != 0 {
		patch := task.Patch{
			Title:           &title,
			Category:        &category,
			DurationMinutes: &duration,
		}
		return m.applyEdit(m.editID, patch)
	}

	spec := sched.CreateSpec{
		Title:           title,
		Category:        category,
		Date:            dateutil.FormatDate(m.date),
		Time:            slot.Clock(m.slotStart(m.cursor)),
		DurationMinutes: duration,
	}
	return m.applyCreate(spec)
}
