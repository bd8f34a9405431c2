// Package scheduler finds free slots on the itinerary grid.
package scheduler

import (
	"github.com/javiermolinar/rocinante/internal/engine"
)

// Scheduler answers "where does this fit" questions against a store.
type Scheduler struct {
	grid  engine.Grid
	store *engine.Store
}

// New creates a Scheduler over the given store.
func New(store *engine.Store) *Scheduler {
	return &Scheduler{
		grid:  store.Grid(),
		store: store,
	}
}

// Slot is a candidate placement.
type Slot struct {
	Day         int
	StartMinute int
}

// Span is a free interval within one day, half-open.
type Span struct {
	StartMinute int
	EndMinute   int
}

// Minutes returns the span's length.
func (sp Span) Minutes() int {
	return sp.EndMinute - sp.StartMinute
}

// FirstFit returns the earliest free slot of the given duration,
// scanning aligned starts from (fromDay, fromMinute) forward through
// the rest of the trip. The second return is false when nothing fits.
func (s *Scheduler) FirstFit(fromDay, fromMinute, durationMinutes int) (Slot, bool) {
	if durationMinutes < s.grid.SnapMinutes {
		return Slot{}, false
	}
	if fromDay < 0 {
		fromDay = 0
	}

	for day := fromDay; day < s.grid.Days; day++ {
		start := s.grid.DayStartMinute
		if day == fromDay && fromMinute > start {
			start = s.grid.Quantize(fromMinute)
		}
		for ; s.grid.Fits(start, durationMinutes); start += s.grid.SnapMinutes {
			if s.store.Free(day, start, durationMinutes, "") {
				return Slot{Day: day, StartMinute: start}, true
			}
		}
	}
	return Slot{}, false
}

// FreeSpans returns the free intervals of a day in ascending order.
// A fully empty day yields one span covering the whole window.
func (s *Scheduler) FreeSpans(day int) []Span {
	var spans []Span
	cursor := s.grid.DayStartMinute
	for _, item := range s.store.ItemsForDay(day) {
		if item.Placement.StartMinute > cursor {
			spans = append(spans, Span{StartMinute: cursor, EndMinute: item.Placement.StartMinute})
		}
		if end := item.EndMinute(); end > cursor {
			cursor = end
		}
	}
	if cursor < s.grid.DayEndMinute {
		spans = append(spans, Span{StartMinute: cursor, EndMinute: s.grid.DayEndMinute})
	}
	return spans
}

// FreeMinutes returns the total unscheduled time of a day.
func (s *Scheduler) FreeMinutes(day int) int {
	total := 0
	for _, sp := range s.FreeSpans(day) {
		total += sp.Minutes()
	}
	return total
}

// LongestFree returns the day's largest free span.
// The second return is false when the day is fully booked.
func (s *Scheduler) LongestFree(day int) (Span, bool) {
	var best Span
	found := false
	for _, sp := range s.FreeSpans(day) {
		if !found || sp.Minutes() > best.Minutes() {
			best = sp
			found = true
		}
	}
	return best, found
}
