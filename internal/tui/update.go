package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ritmoapp/ritmo/internal/conflict"
	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/sched"
	"github.com/ritmoapp/ritmo/internal/slot"
	"github.com/ritmoapp/ritmo/internal/task"
)

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeForm:
			return m.updateForm(msg)
		case ModeMove:
			return m.updateMove(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		case ModeResolve:
			return m.updateResolve(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		m.date = dateutil.AddDays(m.date, -1)
	case "right", "l":
		m.date = dateutil.AddDays(m.date, 1)
	case "t":
		m.date = dateutil.TruncateToDay(m.svc.Now())

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m = m.ensureCursorVisible()
	case "down", "j":
		if m.cursor < m.svc.Grid().Slots()-1 {
			m.cursor++
		}
		m = m.ensureCursorVisible()

	case "n":
		// Jump to the next free slot of the displayed day.
		if free, ok := m.svc.Detector().FindNextAvailableSlot(m.svc.Store(), m.date, m.svc.Grid().Step(), 0); ok {
			if idx, err := m.svc.Grid().SlotIndex(free); err == nil {
				m.cursor = idx
				m = m.ensureCursorVisible()
			}
		} else {
			m.statusMsg = "no free slot left today"
		}

	case "a":
		m = m.openForm(nil)
		return m, nil

	case "e":
		if t := m.taskAt(m.cursor); t != nil {
			m = m.openForm(t)
		}
		return m, nil

	case "x", "enter":
		if t := m.taskAt(m.cursor); t != nil && !t.Completed {
			if _, err := m.svc.Complete(context.Background(), t.ID); err != nil {
				m.statusMsg = err.Error()
			} else {
				m.statusMsg = fmt.Sprintf("completed #%d", t.ID)
			}
		}

	case "d":
		if t := m.taskAt(m.cursor); t != nil {
			m.mode = ModeConfirm
			m.confirmID = t.ID
		}

	case "m":
		if t := m.taskAt(m.cursor); t != nil {
			m.mode = ModeMove
			m.moveID = t.ID
			m.moveTitle = t.Title
		}
	}

	return m, nil
}

func (m Model) updateMove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.moveID = 0
		return m, nil

	case "left", "h":
		m.date = dateutil.AddDays(m.date, -1)
	case "right", "l":
		m.date = dateutil.AddDays(m.date, 1)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m = m.ensureCursorVisible()
	case "down", "j":
		if m.cursor < m.svc.Grid().Slots()-1 {
			m.cursor++
		}
		m = m.ensureCursorVisible()

	case "enter":
		date := dateutil.FormatDate(m.date)
		start := slot.Clock(m.slotStart(m.cursor))
		return m.applyMove(m.moveID, date, start, false)
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		if err := m.svc.Delete(context.Background(), id); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("deleted #%d", id)
		}
	}
	m.mode = ModeNormal
	m.confirmID = 0
	return m, nil
}

func (m Model) updateResolve(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f":
		return m.applyPending(true)

	case "r":
		// Accept the reschedule suggestion, keeping everything else.
		for _, s := range m.conflictRes.Suggestions {
			if s.Kind == conflict.KindReschedule {
				switch {
				case m.pending.create != nil:
					m.pending.create.Time = s.Time
				case m.pending.editID != 0:
					at := s.Time
					m.pending.patch.Time = &at
				default:
					m.pending.time = s.Time
				}
				return m.applyPending(false)
			}
		}
		m.statusMsg = "no reschedule suggestion available"
		m.mode = ModeNormal

	default:
		m.mode = ModeNormal
		m.conflictRes = nil
		m.pending = pendingOp{}
		m.statusMsg = "cancelled"
	}
	return m, nil
}

// applyPending retries the held operation, optionally forcing it through.
func (m Model) applyPending(force bool) (tea.Model, tea.Cmd) {
	switch {
	case m.pending.create != nil:
		spec := *m.pending.create
		spec.Force = force
		return m.applyCreate(spec)
	case m.pending.editID != 0:
		return m.applyEditForce(m.pending.editID, m.pending.patch, force)
	default:
		return m.applyMove(m.pending.moveID, m.pending.date, m.pending.time, force)
	}
}

func (m Model) applyCreate(spec sched.CreateSpec) (tea.Model, tea.Cmd) {
	t, res, err := m.svc.Create(context.Background(), spec)
	if err != nil {
		m.mode = ModeNormal
		m.conflictRes = nil
		m.pending = pendingOp{}
		m.statusMsg = err.Error()
		return m, nil
	}
	if t == nil {
		m.mode = ModeResolve
		m.conflictRes = res
		m.pending = pendingOp{create: &spec}
		return m, nil
	}
	m.mode = ModeNormal
	m.conflictRes = nil
	m.pending = pendingOp{}
	m.statusMsg = fmt.Sprintf("created #%d %s", t.ID, t.Title)
	return m, nil
}

func (m Model) applyEdit(id int64, patch task.Patch) (tea.Model, tea.Cmd) {
	return m.applyEditForce(id, patch, false)
}

func (m Model) applyEditForce(id int64, patch task.Patch, force bool) (tea.Model, tea.Cmd) {
	t, res, err := m.svc.Edit(context.Background(), id, patch, force)
	if err != nil {
		m.mode = ModeNormal
		m.conflictRes = nil
		m.pending = pendingOp{}
		m.statusMsg = err.Error()
		return m, nil
	}
	if t == nil {
		m.mode = ModeResolve
		m.conflictRes = res
		m.pending = pendingOp{editID: id, patch: patch}
		return m, nil
	}
	m.mode = ModeNormal
	m.conflictRes = nil
	m.pending = pendingOp{}
	m.statusMsg = fmt.Sprintf("updated #%d", t.ID)
	return m, nil
}

func (m Model) applyMove(id int64, date, start string, force bool) (tea.Model, tea.Cmd) {
	t, res, err := m.svc.Move(context.Background(), id, date, start, force)
	if err != nil {
		m.mode = ModeNormal
		m.conflictRes = nil
		m.pending = pendingOp{}
		m.moveID = 0
		m.statusMsg = err.Error()
		return m, nil
	}
	if t == nil {
		m.mode = ModeResolve
		m.conflictRes = res
		m.pending = pendingOp{moveID: id, date: date, time: start}
		return m, nil
	}
	m.mode = ModeNormal
	m.conflictRes = nil
	m.pending = pendingOp{}
	m.moveID = 0
	m.statusMsg = fmt.Sprintf("moved #%d to %s %s", t.ID, date, start)
	return m, nil
}

// ensureCursorVisible adjusts the scroll window around the cursor.
func (m Model) ensureCursorVisible() Model {
	rows := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor - rows + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	return m
}

// visibleRows returns how many grid rows fit on screen.
func (m Model) visibleRows() int {
	rows := m.height - 5 // header, separator, status, help
	if rows < 5 {
		rows = 5
	}
	if rows > m.svc.Grid().Slots() {
		rows = m.svc.Grid().Slots()
	}
	return rows
}

// openForm prepares the task form, prefilled from t when editing.
func (m Model) openForm(t *task.Task) Model {
	m.mode = ModeForm
	m.formFocus = 0
	m.formTitle.Focus()

	if t == nil {
		m.editID = 0
		m.formTitle.SetValue("")
		m.formCategory = indexOfCategory(task.CategoryGeneral)
		m.formDuration = 1 // 30 minutes
		return m
	}

	m.editID = t.ID
	m.formTitle.SetValue(t.Title)
	m.formCategory = indexOfCategory(t.Category)
	m.formDuration = indexOfDuration(t.DurationMinutes)
	return m
}

func indexOfCategory(c task.Category) int {
	for i, cand := range task.Categories() {
		if cand == c {
			return i
		}
	}
	return len(task.Categories()) - 1
}

// indexOfDuration returns the closest duration option index.
func indexOfDuration(minutes int) int {
	best := 0
	for i, d := range durationOptions {
		if abs(d-minutes) < abs(durationOptions[best]-minutes) {
			best = i
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
