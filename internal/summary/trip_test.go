package summary

import (
	"testing"

	"github.com/javiermolinar/rocinante/internal/plan"
)

func item(t *testing.T, title string, cat plan.Category, duration int) *plan.Item {
	t.Helper()
	it, err := plan.New(title, cat, duration)
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func placed(t *testing.T, title string, cat plan.Category, duration, day, start, costCents int) *plan.Item {
	t.Helper()
	it := item(t, title, cat, duration)
	it.Placement = &plan.Placement{Day: day, StartMinute: start}
	it.Meta.CostCents = costCents
	return it
}

func TestSummarize(t *testing.T) {
	items := []*plan.Item{
		placed(t, "alhambra", plan.CategorySightseeing, 180, 0, 540, 1900),
		placed(t, "tapas", plan.CategoryFood, 90, 0, 780, 3500),
		placed(t, "train", plan.CategoryTransport, 120, 2, 600, 4200),
		item(t, "flamenco", plan.CategoryActivity, 120), // still in the pool
	}

	s := Summarize(3, items)

	if s.Placed != 3 || s.Pending != 1 {
		t.Errorf("placed/pending = %d/%d, want 3/1", s.Placed, s.Pending)
	}
	if s.ScheduledMinutes != 390 {
		t.Errorf("ScheduledMinutes = %d, want 390", s.ScheduledMinutes)
	}
	if s.CostCents != 9600 {
		t.Errorf("CostCents = %d, want 9600", s.CostCents)
	}

	if got := s.Days[0]; got.ScheduledMinutes != 270 || got.Items != 2 || got.CostCents != 5400 {
		t.Errorf("day 0 totals = %+v", got)
	}
	if got := s.Days[1]; got.Items != 0 {
		t.Errorf("day 1 totals = %+v, want empty", got)
	}
	if got := s.MinutesByCategory[plan.CategorySightseeing]; got != 180 {
		t.Errorf("sightseeing minutes = %d, want 180", got)
	}
	if got := s.MinutesByCategory[plan.CategoryActivity]; got != 0 {
		t.Errorf("pool items should not count, got %d activity minutes", got)
	}

	busiest, ok := s.BusiestDay()
	if !ok || busiest != 0 {
		t.Errorf("BusiestDay = %d/%v, want 0/true", busiest, ok)
	}

	empty := s.EmptyDays()
	if len(empty) != 1 || empty[0] != 1 {
		t.Errorf("EmptyDays = %v, want [1]", empty)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(4, nil)
	if _, ok := s.BusiestDay(); ok {
		t.Error("BusiestDay on an empty trip should report false")
	}
	if got := s.EmptyDays(); len(got) != 4 {
		t.Errorf("EmptyDays = %v, want all 4", got)
	}
}

func TestSummarizeIgnoresOutOfTripPlacements(t *testing.T) {
	items := []*plan.Item{
		placed(t, "stale", plan.CategoryActivity, 60, 9, 540, 0),
	}
	s := Summarize(3, items)
	if s.Placed != 0 || s.ScheduledMinutes != 0 {
		t.Errorf("out-of-trip placement counted: %+v", s)
	}
}
