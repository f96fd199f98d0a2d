// Package tui provides the interactive day-grid interface for ritmo.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ritmoapp/ritmo/internal/config"
	"github.com/ritmoapp/ritmo/internal/conflict"
	"github.com/ritmoapp/ritmo/internal/dateutil"
	"github.com/ritmoapp/ritmo/internal/sched"
	"github.com/ritmoapp/ritmo/internal/slot"
	"github.com/ritmoapp/ritmo/internal/task"
	"github.com/ritmoapp/ritmo/internal/view"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeForm         // Task form open (create or edit)
	ModeMove         // A task is picked up, cursor selects the target slot
	ModeConfirm      // Pending delete confirmation
	ModeResolve      // A conflict was reported, waiting for force/cancel
)

// Duration options cycled through in the task form.
var durationOptions = []int{15, 30, 45, 60, 90, 120}

// pendingOp is the scheduling operation held while a conflict result is on
// screen, retried with force when the user insists.
type pendingOp struct {
	create *sched.CreateSpec
	moveID int64
	date   string
	time   string
	editID int64
	patch  task.Patch
}

// Model is the main TUI model.
type Model struct {
	svc    *sched.Service
	config *config.Config
	styles Styles

	date   time.Time // displayed day
	cursor int       // slot index under the cursor

	mode Mode

	// Form state
	formTitle    textinput.Model
	formCategory int // index into task.Categories()
	formDuration int // index into durationOptions
	formFocus    int // 0 = title, 1 = category, 2 = duration
	editID       int64

	// Move state
	moveID    int64
	moveTitle string

	// Confirm state
	confirmID int64

	// Resolve state
	conflictRes *conflict.Result
	pending     pendingOp

	// Terminal dimensions
	width        int
	height       int
	scrollOffset int

	statusMsg string
}

// New creates a new TUI model around a scheduling service.
func New(svc *sched.Service, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 120
	ti.Width = 32

	now := svc.Now()
	m := Model{
		svc:       svc,
		config:    cfg,
		styles:    NewStyles(),
		date:      dateutil.TruncateToDay(now),
		formTitle: ti,
		width:     80,
		height:    24,
	}
	if idx, ok := view.NowIndicator(svc.Grid(), m.date, now); ok {
		m.cursor = idx
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// day projects the store onto the displayed date.
func (m Model) day() view.Day {
	return view.DayOf(m.svc.Store(), m.date)
}

// taskAt returns the task covering the given slot, if any.
func (m Model) taskAt(i int) *task.Task {
	startMin := m.slotStart(i)
	for _, t := range m.day().Tasks {
		if t.Start() <= startMin && startMin < t.End() {
			return t
		}
	}
	return nil
}

// slotStart returns the slot's start in minutes since midnight.
func (m Model) slotStart(i int) int {
	grid := m.svc.Grid()
	open, _ := slot.ParseClock(grid.DayStart())
	return open + i*grid.Step()
}

// Run starts the TUI.
func Run(svc *sched.Service, cfg *config.Config) error {
	p := tea.NewProgram(New(svc, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
