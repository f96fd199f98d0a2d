package task

import (
	"fmt"
	"time"

	"github.com/ritmoapp/ritmo/internal/dateutil"
)

// Store holds the authoritative in-session set of tasks. It is
// single-writer: only scheduling operations mutate it, on one goroutine.
type Store struct {
	byID   map[int64]*Task
	order  []int64 // insertion order, for stable iteration
	nextID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[int64]*Task), nextID: 1}
}

// NewStoreWith creates a store seeded with existing tasks, e.g. loaded
// from the persistent mirror at session start.
func NewStoreWith(tasks []*Task) (*Store, error) {
	s := NewStore()
	for _, t := range tasks {
		if err := s.Insert(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NextID returns a fresh identifier for sessions without a persistence
// mirror assigning them.
func (s *Store) NextID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Insert adds a task. The caller guarantees a fresh, unique id.
func (s *Store) Insert(t *Task) error {
	if t == nil {
		return nil
	}
	if _, exists := s.byID[t.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
	}
	s.byID[t.ID] = t
	s.order = append(s.order, t.ID)
	if t.ID >= s.nextID {
		s.nextID = t.ID + 1
	}
	return nil
}

// Get returns the task with the given id, or nil if absent.
func (s *Store) Get(id int64) *Task {
	return s.byID[id]
}

// Update merges a patch into the task with the given id.
// Returns ErrTaskNotFound if the id is absent.
func (s *Store) Update(id int64, patch Patch) (*Task, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	patch.Apply(t)
	return t, nil
}

// Remove deletes the task with the given id. Removing an absent id is
// not an error.
func (s *Store) Remove(id int64) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// ByDate returns all tasks on the given calendar date, in insertion
// order. Callers sort for presentation as needed.
func (s *Store) ByDate(date time.Time) []*Task {
	day := dateutil.TruncateToDay(date)
	var result []*Task
	for _, id := range s.order {
		t := s.byID[id]
		if dateutil.SameDay(t.Date, day) {
			result = append(result, t)
		}
	}
	return result
}

// All returns every task in insertion order.
func (s *Store) All() []*Task {
	result := make([]*Task, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id])
	}
	return result
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.byID)
}
