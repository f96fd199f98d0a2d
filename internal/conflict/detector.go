// Package conflict detects time-interval overlaps between tasks on a day
// and proposes resolutions. The detector is advisory: it never mutates
// the store, and callers decide whether to block, surface suggestions,
// or force-apply.
package conflict

import (
	"time"

	"github.com/ritmoapp/ritmo/internal/slot"
	"github.com/ritmoapp/ritmo/internal/task"
)

// SuggestionKind identifies a proposed conflict resolution.
type SuggestionKind string

const (
	// KindReschedule proposes moving the candidate to the first free slot.
	KindReschedule SuggestionKind = "reschedule"
	// KindShorten proposes trimming the single conflicting task.
	KindShorten SuggestionKind = "shorten"
	// KindAlternative proposes a category-preferred free time.
	KindAlternative SuggestionKind = "alternative"
)

// Suggestion is one advisory resolution. Fields are populated per kind:
// reschedule and alternative carry Time; shorten carries TaskID and
// NewDuration.
type Suggestion struct {
	Kind        SuggestionKind
	Time        string // proposed start, "HH:MM"
	TaskID      int64  // task to shorten
	NewDuration int    // shortened duration in minutes
}

// Result reports the outcome of a conflict check. It is a first-class
// return value, not an error: an occupied slot is an expected, recoverable
// outcome.
type Result struct {
	Conflicts   []*task.Task
	Suggestions []Suggestion
}

// HasConflict returns true if the candidate placement overlaps anything.
func (r *Result) HasConflict() bool {
	return len(r.Conflicts) > 0
}

// optimalTimes lists preferred start times per category, consulted in
// order for the alternative-time suggestion.
var optimalTimes = map[task.Category][]string{
	task.CategoryWork:     {"09:00", "10:00", "14:00", "15:00"},
	task.CategoryFitness:  {"07:00", "18:00", "19:00"},
	task.CategoryWellness: {"07:00", "12:00", "21:00"},
	task.CategoryGrowth:   {"20:00", "21:00", "22:00"},
}

// Detector checks prospective placements against a task store.
type Detector struct {
	grid *slot.Grid
}

// NewDetector creates a Detector over the given slot grid.
func NewDetector(grid *slot.Grid) *Detector {
	return &Detector{grid: grid}
}

// Check tests the placement (date, startTime, durationMinutes) against
// every task in the store on the same date, excluding excludeID (the task
// being moved or edited, so it never conflicts with itself; pass 0 for
// none). On overlap it assembles up to three advisory suggestions.
func (d *Detector) Check(store *task.Store, date time.Time, startTime string, durationMinutes int, category task.Category, excludeID int64) (*Result, error) {
	s, err := slot.ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	e := s + durationMinutes

	result := &Result{}
	for _, t := range store.ByDate(date) {
		if excludeID != 0 && t.ID == excludeID {
			continue
		}
		if slot.Overlaps(s, e, t.Start(), t.End()) {
			result.Conflicts = append(result.Conflicts, t)
		}
	}
	if !result.HasConflict() {
		return result, nil
	}

	if alt, ok := d.FindNextAvailableSlot(store, date, durationMinutes, excludeID); ok {
		result.Suggestions = append(result.Suggestions, Suggestion{
			Kind: KindReschedule,
			Time: alt,
		})
	}

	// Shorten is only offered against a single conflicting task, trims at
	// most one slot, and never below one slot.
	if len(result.Conflicts) == 1 {
		existing := result.Conflicts[0]
		reduction := min(d.grid.Step(), existing.DurationMinutes-d.grid.Step())
		if reduction > 0 {
			result.Suggestions = append(result.Suggestions, Suggestion{
				Kind:        KindShorten,
				TaskID:      existing.ID,
				NewDuration: existing.DurationMinutes - reduction,
			})
		}
	}

	if alt, ok := d.findAlternativeTime(store, date, startTime, durationMinutes, category, excludeID); ok {
		result.Suggestions = append(result.Suggestions, Suggestion{
			Kind: KindAlternative,
			Time: alt,
		})
	}

	return result, nil
}

// FindNextAvailableSlot scans the slot grid in order and returns the first
// start time where the given duration fits with zero overlap and without
// extending past midnight. First-fit: ties break by earliest time. The
// second return is false when no slot fits.
func (d *Detector) FindNextAvailableSlot(store *task.Store, date time.Time, durationMinutes int, excludeID int64) (string, bool) {
	tasks := store.ByDate(date)
	for i := 0; i < d.grid.Slots(); i++ {
		startTime := d.grid.SlotTime(i)
		if d.grid.ValidatePlacement(startTime, durationMinutes) != nil {
			continue
		}
		if d.placementFree(tasks, startTime, durationMinutes, excludeID) {
			return startTime, true
		}
	}
	return "", false
}

// findAlternativeTime returns the first category-preferred time that is
// not the requested time and is completely free.
func (d *Detector) findAlternativeTime(store *task.Store, date time.Time, requested string, durationMinutes int, category task.Category, excludeID int64) (string, bool) {
	candidates, ok := optimalTimes[category]
	if !ok {
		return "", false
	}
	tasks := store.ByDate(date)
	for _, c := range candidates {
		if c == requested {
			continue
		}
		if d.grid.ValidatePlacement(c, durationMinutes) != nil {
			continue
		}
		if d.placementFree(tasks, c, durationMinutes, excludeID) {
			return c, true
		}
	}
	return "", false
}

func (d *Detector) placementFree(tasks []*task.Task, startTime string, durationMinutes int, excludeID int64) bool {
	s, err := slot.ParseClock(startTime)
	if err != nil {
		return false
	}
	e := s + durationMinutes
	for _, t := range tasks {
		if excludeID != 0 && t.ID == excludeID {
			continue
		}
		if slot.Overlaps(s, e, t.Start(), t.End()) {
			return false
		}
	}
	return true
}
