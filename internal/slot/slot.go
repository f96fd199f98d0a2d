// Package slot models the fixed 15-minute scheduling grid for a day.
//
// The modeled day spans 06:00 to 23:45 inclusive, giving 72 slots. All
// overlap arithmetic elsewhere works on minute offsets produced here.
package slot

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrTimeNotAligned    = errors.New("time must align to the slot grid")
	ErrTimeOutOfWindow   = errors.New("time is outside the scheduling window")
	ErrSpansMidnight     = errors.New("task cannot extend past midnight")
)

// Default grid parameters, in minutes since midnight.
const (
	DefaultDayStart = 6 * 60        // 06:00
	DefaultDayEnd   = 23*60 + 45    // 23:45, last schedulable start
	DefaultStep     = 15            // slot width
	midnight        = 24 * 60       // exclusive upper bound for task ends
)

// Grid is the discretized day: evenly spaced schedulable start times
// between a first and last slot (both inclusive).
type Grid struct {
	dayStart int // minutes since midnight of the first slot
	dayEnd   int // minutes since midnight of the last slot
	step     int // slot width in minutes
}

// Default returns the standard 06:00-23:45 grid with 15-minute slots.
func Default() *Grid {
	return &Grid{dayStart: DefaultDayStart, dayEnd: DefaultDayEnd, step: DefaultStep}
}

// NewGrid builds a grid from "HH:MM" bounds and a slot width in minutes.
func NewGrid(dayStart, dayEnd string, step int) (*Grid, error) {
	start, err := ParseClock(dayStart)
	if err != nil {
		return nil, fmt.Errorf("day start: %w", err)
	}
	end, err := ParseClock(dayEnd)
	if err != nil {
		return nil, fmt.Errorf("day end: %w", err)
	}
	if step <= 0 {
		return nil, fmt.Errorf("slot width must be positive, got %d", step)
	}
	if start >= end {
		return nil, fmt.Errorf("day start %s must be before day end %s", dayStart, dayEnd)
	}
	if (end-start)%step != 0 {
		return nil, fmt.Errorf("window %s-%s is not a whole number of %d-minute slots", dayStart, dayEnd, step)
	}
	return &Grid{dayStart: start, dayEnd: end, step: step}, nil
}

// Slots returns the number of schedulable start times in the grid.
func (g *Grid) Slots() int {
	return (g.dayEnd-g.dayStart)/g.step + 1
}

// Step returns the slot width in minutes.
func (g *Grid) Step() int {
	return g.step
}

// DayStart returns the first slot as "HH:MM".
func (g *Grid) DayStart() string {
	return Clock(g.dayStart)
}

// DayEnd returns the last slot as "HH:MM".
func (g *Grid) DayEnd() string {
	return Clock(g.dayEnd)
}

// TimeToOffset converts an "HH:MM" time to minutes since the window open.
// The time must be grid-aligned and inside the window; out-of-window values
// are an error, never clamped.
func (g *Grid) TimeToOffset(t string) (int, error) {
	m, err := ParseClock(t)
	if err != nil {
		return 0, err
	}
	if m < g.dayStart || m > g.dayEnd {
		return 0, fmt.Errorf("%w: %s (window %s-%s)", ErrTimeOutOfWindow, t, g.DayStart(), g.DayEnd())
	}
	if (m-g.dayStart)%g.step != 0 {
		return 0, fmt.Errorf("%w: %s is not on a %d-minute boundary", ErrTimeNotAligned, t, g.step)
	}
	return m - g.dayStart, nil
}

// OffsetToTime is the inverse of TimeToOffset, clamped to the window.
// Used when translating an interactive position back to a clock time.
func (g *Grid) OffsetToTime(offset int) string {
	m := g.dayStart + offset
	if m < g.dayStart {
		m = g.dayStart
	}
	if m > g.dayEnd {
		m = g.dayEnd
	}
	// Snap to the nearest earlier slot boundary.
	m = g.dayStart + ((m-g.dayStart)/g.step)*g.step
	return Clock(m)
}

// SlotTime returns the "HH:MM" start of the i-th slot.
func (g *Grid) SlotTime(i int) string {
	return g.OffsetToTime(i * g.step)
}

// SlotIndex returns the index of the slot starting at t.
func (g *Grid) SlotIndex(t string) (int, error) {
	offset, err := g.TimeToOffset(t)
	if err != nil {
		return 0, err
	}
	return offset / g.step, nil
}

// ValidatePlacement checks that a task starting at t with the given duration
// is legal on this grid: aligned, inside the window, and ending no later
// than midnight. A task can never span two calendar days.
func (g *Grid) ValidatePlacement(t string, durationMinutes int) error {
	m, err := ParseClock(t)
	if err != nil {
		return err
	}
	if m < g.dayStart || m > g.dayEnd {
		return fmt.Errorf("%w: %s (window %s-%s)", ErrTimeOutOfWindow, t, g.DayStart(), g.DayEnd())
	}
	if (m-g.dayStart)%g.step != 0 {
		return fmt.Errorf("%w: %s is not on a %d-minute boundary", ErrTimeNotAligned, t, g.step)
	}
	if m+durationMinutes > midnight {
		return fmt.Errorf("%w: %s + %dm ends at %s", ErrSpansMidnight, t, durationMinutes, Clock((m+durationMinutes)%midnight))
	}
	return nil
}

// ParseClock parses "HH:MM" to minutes since midnight.
func ParseClock(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
		}
	}
	h := int(t[0]-'0')*10 + int(t[1]-'0')
	m := int(t[3]-'0')*10 + int(t[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	return h*60 + m, nil
}

// Clock converts minutes since midnight to "HH:MM".
func Clock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= midnight {
		m = midnight - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether the half-open minute intervals [s1,e1) and
// [s2,e2) intersect.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
