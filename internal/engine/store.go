package engine

import (
	"fmt"
	"sort"

	"github.com/javiermolinar/rocinante/internal/plan"
)

// Store holds the canonical items: an unscheduled pool plus the items
// placed on the grid, keyed by ID. All mutations validate before they
// touch state, so a failed call leaves the store unchanged.
//
// The store is single-writer: the gesture machines' commit transitions
// and the direct CRUD entry points are the only mutators, and both run
// on the same event loop.
type Store struct {
	grid  Grid
	items map[string]*plan.Item
}

// NewStore creates an empty store for the given grid.
func NewStore(grid Grid) *Store {
	return &Store{
		grid:  grid,
		items: make(map[string]*plan.Item),
	}
}

// Grid returns the grid configuration the store validates against.
func (s *Store) Grid() Grid {
	return s.grid
}

// Add inserts a new item into the unscheduled pool.
// Returns ErrDuplicateID if the ID is already tracked. An item that
// arrives with a placement (e.g. loaded from storage) is placed
// directly, subject to the same conflict validation as Place.
func (s *Store) Add(item *plan.Item) error {
	if item == nil {
		return plan.ErrItemNotFound
	}
	if _, ok := s.items[item.ID]; ok {
		return fmt.Errorf("%w: %s", plan.ErrDuplicateID, item.ID)
	}

	if p := item.Placement; p != nil {
		if err := s.validatePlacement(p.Day, p.StartMinute, item.DurationMinutes, item.ID); err != nil {
			return err
		}
	}

	s.items[item.ID] = item
	return nil
}

// Get returns the item with the given ID.
func (s *Store) Get(id string) (*plan.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", plan.ErrItemNotFound, id)
	}
	return item, nil
}

// Place moves an item from the pool (or its old slot) to a new slot.
// The start must sit on a snap boundary and the whole interval must
// fit inside the day window. Returns a *plan.ConflictError carrying
// the overlapping IDs if the slot is taken; the store is unchanged on
// any failure.
func (s *Store) Place(id string, day, startMinute int) error {
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", plan.ErrItemNotFound, id)
	}

	if err := s.validatePlacement(day, startMinute, item.DurationMinutes, id); err != nil {
		return err
	}

	item.Placement = &plan.Placement{Day: day, StartMinute: startMinute}
	return nil
}

// Unplace returns an item to the unscheduled pool.
// Idempotent: unplacing a pool item is a no-op.
func (s *Store) Unplace(id string) error {
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", plan.ErrItemNotFound, id)
	}
	item.Placement = nil
	return nil
}

// Resize changes an item's duration keeping its start fixed.
// For pool items only the duration floor applies; for placed items the
// new interval is re-validated against the day window and neighbours.
func (s *Store) Resize(id string, newDurationMinutes int) error {
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", plan.ErrItemNotFound, id)
	}
	if newDurationMinutes < s.grid.SnapMinutes {
		return fmt.Errorf("%w: %dm < %dm", plan.ErrInvalidDuration, newDurationMinutes, s.grid.SnapMinutes)
	}

	if p := item.Placement; p != nil {
		if err := s.validatePlacement(p.Day, p.StartMinute, newDurationMinutes, id); err != nil {
			return err
		}
	}

	item.DurationMinutes = newDurationMinutes
	return nil
}

// MoveResize atomically changes both start and duration of a placed
// item, used by the top resize handle where the end stays fixed.
func (s *Store) MoveResize(id string, newStartMinute, newDurationMinutes int) error {
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", plan.ErrItemNotFound, id)
	}
	if item.Placement == nil {
		return fmt.Errorf("%w: %s is unscheduled", plan.ErrItemNotFound, id)
	}
	if newDurationMinutes < s.grid.SnapMinutes {
		return fmt.Errorf("%w: %dm < %dm", plan.ErrInvalidDuration, newDurationMinutes, s.grid.SnapMinutes)
	}

	day := item.Placement.Day
	if err := s.validatePlacement(day, newStartMinute, newDurationMinutes, id); err != nil {
		return err
	}

	item.Placement.StartMinute = newStartMinute
	item.DurationMinutes = newDurationMinutes
	return nil
}

// Remove deletes an item from whichever set holds it.
func (s *Store) Remove(id string) error {
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", plan.ErrItemNotFound, id)
	}
	delete(s.items, id)
	return nil
}

// ItemsForDay returns the placed items for one day ordered by start
// minute ascending, ties broken by ID. The ordering is deterministic
// so end-time displays and tests are reproducible.
func (s *Store) ItemsForDay(day int) []*plan.Item {
	var result []*plan.Item
	for _, item := range s.items {
		if item.Placement != nil && item.Placement.Day == day {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Placement.StartMinute != b.Placement.StartMinute {
			return a.Placement.StartMinute < b.Placement.StartMinute
		}
		return a.ID < b.ID
	})
	return result
}

// Pool returns the unscheduled items ordered by creation time, ties
// broken by ID.
func (s *Store) Pool() []*plan.Item {
	var result []*plan.Item
	for _, item := range s.items {
		if item.Placement == nil {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return result
}

// AllItems returns every tracked item, placed first in day/start
// order, then the pool.
func (s *Store) AllItems() []*plan.Item {
	var result []*plan.Item
	for day := 0; day < s.grid.Days; day++ {
		result = append(result, s.ItemsForDay(day)...)
	}
	return append(result, s.Pool()...)
}

// Len returns the number of tracked items.
func (s *Store) Len() int {
	return len(s.items)
}

// FindConflicts reports the IDs of placed items on the given day whose
// intervals overlap the candidate half-open interval
// [startMinute, startMinute+durationMinutes). Touching endpoints do
// not conflict. excludeID lets a move or resize skip the item's own
// prior placement; pass "" to check against everything.
func (s *Store) FindConflicts(day, startMinute, durationMinutes int, excludeID string) []string {
	end := startMinute + durationMinutes
	var ids []string
	for _, other := range s.ItemsForDay(day) {
		if other.ID == excludeID {
			continue
		}
		if plan.Overlaps(startMinute, end, other.Placement.StartMinute, other.EndMinute()) {
			ids = append(ids, other.ID)
		}
	}
	return ids
}

// Free returns true if the candidate interval has no conflicts.
func (s *Store) Free(day, startMinute, durationMinutes int, excludeID string) bool {
	return len(s.FindConflicts(day, startMinute, durationMinutes, excludeID)) == 0
}

// validatePlacement runs every placement check without mutating state.
func (s *Store) validatePlacement(day, startMinute, durationMinutes int, excludeID string) error {
	if !s.grid.ValidDay(day) {
		return fmt.Errorf("%w: %d", ErrUnknownDay, day)
	}
	if !s.grid.Aligned(startMinute) {
		return fmt.Errorf("%w: start %s off the %dm snap",
			plan.ErrOutOfRange, plan.MinutesToTime(startMinute), s.grid.SnapMinutes)
	}
	if !s.grid.Fits(startMinute, durationMinutes) {
		return fmt.Errorf("%w: %s+%dm outside %s-%s",
			plan.ErrOutOfRange, plan.MinutesToTime(startMinute), durationMinutes,
			plan.MinutesToTime(s.grid.DayStartMinute), plan.MinutesToTime(s.grid.DayEndMinute))
	}
	if ids := s.FindConflicts(day, startMinute, durationMinutes, excludeID); len(ids) > 0 {
		return &plan.ConflictError{
			Day:         day,
			StartMinute: startMinute,
			Duration:    durationMinutes,
			IDs:         ids,
		}
	}
	return nil
}
