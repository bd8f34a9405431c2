package engine

import (
	"errors"
	"testing"

	"github.com/javiermolinar/rocinante/internal/plan"
)

type engineHarness struct {
	engine  *Engine
	surface *fakeSurface

	committed []*plan.Item
	conflicts [][]string
}

func newEngineHarness(t *testing.T) *engineHarness {
	t.Helper()
	g := testGrid()
	g.PxPerMinute = 1

	h := &engineHarness{surface: &fakeSurface{}}
	hooks := Hooks{
		Committed: func(item *plan.Item) { h.committed = append(h.committed, item) },
		Conflict:  func(_ DropTarget, ids []string) { h.conflicts = append(h.conflicts, ids) },
	}
	eng, err := New(g, h.surface, gridLocator{grid: g}, hooks)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.engine = eng
	return h
}

func TestEngineRejectsInvalidGrid(t *testing.T) {
	g := testGrid()
	g.SnapMinutes = 7
	if _, err := New(g, &fakeSurface{}, gridLocator{grid: g}, Hooks{}); !errors.Is(err, ErrBadSnap) {
		t.Errorf("New with bad snap: error = %v, want ErrBadSnap", err)
	}
}

func TestEngineCreateQuick(t *testing.T) {
	h := newEngineHarness(t)

	item, err := h.engine.CreateQuick(plan.CategoryFood)
	if err != nil {
		t.Fatalf("CreateQuick: %v", err)
	}
	if item.DurationMinutes != plan.DefaultDuration(plan.CategoryFood) {
		t.Errorf("duration = %d, want the category default", item.DurationMinutes)
	}
	if len(h.committed) != 1 {
		t.Errorf("committed hooks = %d, want 1 for the create", len(h.committed))
	}

	if _, err := h.engine.CreateQuick(plan.Category("naps")); !errors.Is(err, plan.ErrInvalidCategory) {
		t.Errorf("bad category: error = %v, want ErrInvalidCategory", err)
	}
}

func TestEngineCreateWithMetadata(t *testing.T) {
	h := newEngineHarness(t)

	meta := plan.Metadata{CostCents: 2400, Location: "Mercado Central", Memo: "book ahead"}
	item, err := h.engine.Create("paella class", plan.CategoryActivity, 120, meta)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Meta != meta {
		t.Errorf("metadata = %+v, want %+v", item.Meta, meta)
	}
}

// The keyboard path and the drag path share the same validation: a
// direct PlaceAt over an occupied slot fires the same conflict hook a
// rejected drop does.
func TestEnginePlaceAt(t *testing.T) {
	h := newEngineHarness(t)
	a, _ := h.engine.CreateQuick(plan.CategorySightseeing) // 60m
	b, _ := h.engine.CreateQuick(plan.CategorySightseeing)

	if err := h.engine.PlaceAt(a.ID, 0, 600); err != nil {
		t.Fatalf("PlaceAt: %v", err)
	}

	err := h.engine.PlaceAt(b.ID, 0, 630)
	var conflict *plan.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("overlapping PlaceAt: error = %v, want ConflictError", err)
	}
	if len(h.conflicts) != 1 {
		t.Errorf("conflict hooks = %d, want 1", len(h.conflicts))
	}

	// create a + create b + place a
	if len(h.committed) != 3 {
		t.Errorf("committed hooks = %d, want 3", len(h.committed))
	}
}

func TestEngineUnplace(t *testing.T) {
	h := newEngineHarness(t)
	item, _ := h.engine.CreateQuick(plan.CategoryFood)
	if err := h.engine.PlaceAt(item.ID, 1, 720); err != nil {
		t.Fatal(err)
	}

	if err := h.engine.Unplace(item.ID); err != nil {
		t.Fatalf("Unplace: %v", err)
	}
	if item.IsPlaced() {
		t.Error("item still placed")
	}
	// The cleared placement must reach persistence too.
	last := h.committed[len(h.committed)-1]
	if last.ID != item.ID || last.IsPlaced() {
		t.Error("unplace did not fire a committed hook with the cleared placement")
	}
}

func TestEngineResizeBy(t *testing.T) {
	h := newEngineHarness(t)
	item, _ := h.engine.CreateQuick(plan.CategoryFood) // 60m
	if err := h.engine.PlaceAt(item.ID, 0, 600); err != nil {
		t.Fatal(err)
	}

	if err := h.engine.ResizeBy(item.ID, 2); err != nil {
		t.Fatalf("ResizeBy(+2): %v", err)
	}
	if item.DurationMinutes != 90 {
		t.Errorf("duration = %d, want 90", item.DurationMinutes)
	}

	if err := h.engine.ResizeBy(item.ID, -6); !errors.Is(err, plan.ErrInvalidDuration) {
		t.Errorf("shrink below floor: error = %v, want ErrInvalidDuration", err)
	}
	if item.DurationMinutes != 90 {
		t.Errorf("failed shrink changed duration to %d", item.DurationMinutes)
	}
}

// Only one gesture at a time, across both machines.
func TestEngineGestureExclusion(t *testing.T) {
	h := newEngineHarness(t)
	a, _ := h.engine.CreateQuick(plan.CategoryActivity)
	b, _ := h.engine.CreateQuick(plan.CategoryActivity)
	if err := h.engine.PlaceAt(b.ID, 0, 900); err != nil {
		t.Fatal(err)
	}

	if err := h.engine.Press(a.ID, Pointer{X: 50, Y: 50}); err != nil {
		t.Fatal(err)
	}
	if !h.engine.GestureActive() {
		t.Error("GestureActive() = false mid-press")
	}
	if err := h.engine.StartResize(b.ID, HandleBottom, 100); !errors.Is(err, ErrGestureActive) {
		t.Errorf("resize during drag: error = %v, want ErrGestureActive", err)
	}

	h.engine.CancelGestures()
	if h.engine.GestureActive() {
		t.Error("GestureActive() = true after cancel")
	}

	if err := h.engine.StartResize(b.ID, HandleBottom, 100); err != nil {
		t.Fatal(err)
	}
	if err := h.engine.Press(a.ID, Pointer{X: 50, Y: 50}); !errors.Is(err, ErrGestureActive) {
		t.Errorf("press during resize: error = %v, want ErrGestureActive", err)
	}
	h.engine.CancelGestures()
}

func TestEnginePointerReleaseIdle(t *testing.T) {
	h := newEngineHarness(t)
	if err := h.engine.PointerRelease(); !errors.Is(err, ErrNoGesture) {
		t.Errorf("idle release: error = %v, want ErrNoGesture", err)
	}
}

// Deleting an item mid-gesture cancels the gesture first so a release
// cannot resurrect it.
func TestEngineDeleteCancelsGesture(t *testing.T) {
	h := newEngineHarness(t)
	item, _ := h.engine.CreateQuick(plan.CategoryShopping)

	if err := h.engine.Press(item.ID, Pointer{X: 50, Y: 50}); err != nil {
		t.Fatal(err)
	}
	if err := h.engine.Delete(item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if h.engine.GestureActive() {
		t.Error("gesture survived the delete")
	}
	if err := h.engine.PointerRelease(); !errors.Is(err, ErrNoGesture) {
		t.Errorf("release after delete: error = %v, want ErrNoGesture", err)
	}
	if h.engine.Store().Len() != 0 {
		t.Error("item survived the delete")
	}
}

// Loading persisted items drops stale placements to the pool rather
// than losing them: a row scheduled under an older, wider day window
// must still show up.
func TestEngineLoadStalePlacement(t *testing.T) {
	h := newEngineHarness(t)

	ok, _ := plan.New("fits", plan.CategoryFood, 60)
	ok.Placement = &plan.Placement{Day: 0, StartMinute: 600}

	stale, _ := plan.New("stale", plan.CategoryFood, 60)
	stale.Placement = &plan.Placement{Day: 0, StartMinute: 300} // before 07:00

	badDay, _ := plan.New("bad day", plan.CategoryFood, 60)
	badDay.Placement = &plan.Placement{Day: 40, StartMinute: 600}

	if err := h.engine.Load([]*plan.Item{ok, stale, badDay}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !ok.IsPlaced() {
		t.Error("valid placement was dropped")
	}
	if stale.IsPlaced() || badDay.IsPlaced() {
		t.Error("stale placements kept")
	}
	if got := len(h.engine.Store().Pool()); got != 2 {
		t.Errorf("pool has %d items, want the 2 fallbacks", got)
	}
}
