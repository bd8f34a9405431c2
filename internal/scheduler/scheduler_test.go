package scheduler

import (
	"testing"

	"github.com/javiermolinar/rocinante/internal/engine"
	"github.com/javiermolinar/rocinante/internal/plan"
)

func newTestStore(t *testing.T) *engine.Store {
	t.Helper()
	grid := engine.Grid{
		Days:           3,
		DayStartMinute: 420,  // 07:00
		DayEndMinute:   1380, // 23:00
		SnapMinutes:    15,
		PxPerMinute:    1,
	}
	if err := grid.Validate(); err != nil {
		t.Fatalf("test grid: %v", err)
	}
	return engine.NewStore(grid)
}

func place(t *testing.T, store *engine.Store, title string, day, start, duration int) *plan.Item {
	t.Helper()
	item, err := plan.New(title, plan.CategoryActivity, duration)
	if err != nil {
		t.Fatal(err)
	}
	item.Placement = &plan.Placement{Day: day, StartMinute: start}
	if err := store.Add(item); err != nil {
		t.Fatalf("placing %s: %v", title, err)
	}
	return item
}

func TestFirstFit(t *testing.T) {
	store := newTestStore(t)
	place(t, store, "breakfast", 0, 420, 60) // 07:00-08:00
	place(t, store, "museum", 0, 480, 840)   // 08:00-22:00
	place(t, store, "dinner", 1, 1200, 120)  // day 1, 20:00-22:00

	sched := New(store)

	tests := []struct {
		name       string
		fromDay    int
		fromMinute int
		duration   int
		want       Slot
		wantOK     bool
	}{
		{"gap at end of day 0", 0, 420, 60, Slot{Day: 0, StartMinute: 1320}, true},
		{"too long for day 0 gap", 0, 420, 90, Slot{Day: 1, StartMinute: 420}, true},
		{"from mid trip", 1, 600, 120, Slot{Day: 1, StartMinute: 600}, true},
		{"unaligned origin quantizes", 1, 607, 120, Slot{Day: 1, StartMinute: 600}, true},
		{"past last gap rolls to next day", 1, 1230, 240, Slot{Day: 2, StartMinute: 420}, true},
		{"longer than the window", 0, 420, 1000, Slot{}, false},
		{"below one snap step", 0, 420, 10, Slot{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sched.FirstFit(tt.fromDay, tt.fromMinute, tt.duration)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("slot = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFirstFitFullTrip(t *testing.T) {
	store := newTestStore(t)
	for day := range 3 {
		place(t, store, "block", day, 420, 960)
	}

	if _, ok := New(store).FirstFit(0, 420, 15); ok {
		t.Error("found a slot on a fully booked trip")
	}
}

func TestFreeSpans(t *testing.T) {
	store := newTestStore(t)
	place(t, store, "a", 0, 480, 60)  // 08:00-09:00
	place(t, store, "b", 0, 600, 120) // 10:00-12:00

	sched := New(store)

	want := []Span{
		{StartMinute: 420, EndMinute: 480},
		{StartMinute: 540, EndMinute: 600},
		{StartMinute: 720, EndMinute: 1380},
	}
	got := sched.FreeSpans(0)
	if len(got) != len(want) {
		t.Fatalf("got %d spans, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("spans[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if free := sched.FreeMinutes(0); free != 60+60+660 {
		t.Errorf("FreeMinutes = %d, want 780", free)
	}

	longest, ok := sched.LongestFree(0)
	if !ok || longest != (Span{StartMinute: 720, EndMinute: 1380}) {
		t.Errorf("LongestFree = %+v/%v", longest, ok)
	}
}

func TestFreeSpansEmptyDay(t *testing.T) {
	store := newTestStore(t)
	sched := New(store)

	spans := sched.FreeSpans(2)
	if len(spans) != 1 || spans[0] != (Span{StartMinute: 420, EndMinute: 1380}) {
		t.Errorf("empty day spans = %+v", spans)
	}
}

func TestFreeSpansBackToBack(t *testing.T) {
	store := newTestStore(t)
	place(t, store, "a", 0, 420, 480)
	place(t, store, "b", 0, 900, 480)

	if spans := New(store).FreeSpans(0); len(spans) != 0 {
		t.Errorf("fully booked day spans = %+v", spans)
	}
}
