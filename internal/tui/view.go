package tui

import (
	"fmt"
	"strings"

	"github.com/ritmoapp/ritmo/internal/conflict"
	"github.com/ritmoapp/ritmo/internal/task"
	"github.com/ritmoapp/ritmo/internal/view"
)

// View renders the day grid with any active modal below it.
func (m Model) View() string {
	var b strings.Builder

	d := m.day()
	stats := d.Stats()

	header := fmt.Sprintf("%s    %d/%d done, %dm planned",
		d.Date.Format("Monday, January 2, 2006"), stats.Completed, stats.Total, stats.MinutesPlanned)
	b.WriteString(m.styles.Title.Render(header))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid(d))
	b.WriteString("\n")

	switch m.mode {
	case ModeForm:
		b.WriteString(m.renderForm())
	case ModeConfirm:
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Delete task #%d? (y/n)", m.confirmID)))
	case ModeMove:
		b.WriteString(m.styles.Status.Render(fmt.Sprintf("Moving %q — navigate to a slot, enter to drop, esc to cancel", m.moveTitle)))
	case ModeResolve:
		b.WriteString(m.renderConflict())
	default:
		if m.statusMsg != "" {
			b.WriteString(m.styles.Status.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpLine(m.mode)))

	return b.String()
}

func (m Model) renderGrid(d view.Day) string {
	grid := m.svc.Grid()
	nowSlot, hasNow := view.NowIndicator(grid, m.date, m.svc.Now())

	var b strings.Builder
	rows := m.visibleRows()
	end := m.scrollOffset + rows
	if end > grid.Slots() {
		end = grid.Slots()
	}

	for i := m.scrollOffset; i < end; i++ {
		marker := " "
		if hasNow && i == nowSlot {
			marker = m.styles.NowMarker.Render("▶")
		}

		line := m.renderSlot(d, i)
		if i == m.cursor {
			line = m.styles.Cursor.Render(line)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n",
			marker, m.styles.TimeColumn.Render(grid.SlotTime(i)), line))
	}
	return b.String()
}

// renderSlot renders one grid row's content without the time column.
func (m Model) renderSlot(d view.Day, i int) string {
	startMin := m.slotStart(i)
	for _, t := range d.Tasks {
		if t.Start() == startMin {
			return m.renderTaskLabel(t)
		}
		if t.Start() < startMin && startMin < t.End() {
			return m.styles.Category(t.Category).Render("│")
		}
	}
	return m.styles.Empty.Render("·")
}

func (m Model) renderTaskLabel(t *task.Task) string {
	label := fmt.Sprintf("#%d %s (%dm)", t.ID, t.Title, t.DurationMinutes)
	if t.Completed {
		return m.styles.Completed.Render("✓ " + label)
	}
	if m.mode == ModeMove && t.ID == m.moveID {
		return m.styles.Warning.Render("≡ " + label)
	}
	return m.styles.Category(t.Category).Render(label)
}

func (m Model) renderForm() string {
	var b strings.Builder
	title := "New task"
	if m.editID != 0 {
		title = fmt.Sprintf("Edit task #%d", m.editID)
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.formRow(formFieldTitle, "Title", m.formTitle.View()))
	b.WriteString(m.formRow(formFieldCategory, "Category", cycleView(categoryNames(), m.formCategory)))
	b.WriteString(m.formRow(formFieldDuration, "Duration", cycleView(durationNames(), m.formDuration)))

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab: next field  ←/→: change  enter: save  esc: cancel"))
	return m.styles.FormBox.Render(b.String())
}

func (m Model) formRow(field int, label, value string) string {
	style := m.styles.FormLabel
	if m.formFocus == field {
		style = m.styles.FormFocus
	}
	return fmt.Sprintf("%s %s\n", style.Render(fmt.Sprintf("%-9s", label+":")), value)
}

func (m Model) renderConflict() string {
	var b strings.Builder
	b.WriteString(m.styles.Warning.Render("Slot occupied:"))
	b.WriteString("\n")
	for _, c := range m.conflictRes.Conflicts {
		b.WriteString(fmt.Sprintf("  #%d %s-%s %s\n", c.ID, c.Time, c.EndTime(), c.Title))
	}
	for _, s := range m.conflictRes.Suggestions {
		switch s.Kind {
		case conflict.KindReschedule:
			b.WriteString(fmt.Sprintf("  reschedule to %s\n", s.Time))
		case conflict.KindShorten:
			b.WriteString(fmt.Sprintf("  shorten #%d to %dm\n", s.TaskID, s.NewDuration))
		case conflict.KindAlternative:
			b.WriteString(fmt.Sprintf("  alternative: %s\n", s.Time))
		}
	}
	b.WriteString(m.styles.Help.Render("f: force  r: take reschedule  esc: cancel"))
	return b.String()
}

func helpLine(mode Mode) string {
	switch mode {
	case ModeForm, ModeConfirm, ModeResolve:
		return ""
	case ModeMove:
		return "←/→: day  ↑/↓: slot  enter: drop  esc: cancel"
	default:
		return "←/→: day  ↑/↓: slot  a: add  e: edit  m: move  x: done  d: delete  n: next free  t: today  q: quit"
	}
}

func categoryNames() []string {
	cats := task.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}

func durationNames() []string {
	names := make([]string, len(durationOptions))
	for i, d := range durationOptions {
		names[i] = fmt.Sprintf("%dm", d)
	}
	return names
}

// cycleView renders a horizontal option picker with the selection marked.
func cycleView(options []string, selected int) string {
	var parts []string
	for i, o := range options {
		if i == selected {
			parts = append(parts, "["+o+"]")
		} else {
			parts = append(parts, o)
		}
	}
	return strings.Join(parts, " ")
}
