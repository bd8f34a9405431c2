package engine

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/rocinante/internal/plan"
)

// Hooks are the engine's outbound notifications. Committed fires after
// a successful place, move, resize, create or delete, carrying the
// updated item for the persistence layer to upsert (fire and forget:
// the engine reflects the change locally before persistence runs).
// Conflict fires when a commit is rejected so the presentation layer
// can surface it. Nil hooks are ignored.
type Hooks struct {
	Committed func(item *plan.Item)
	Conflict  func(candidate DropTarget, conflictingIDs []string)
}

func (h Hooks) committed(item *plan.Item) {
	if h.Committed != nil {
		h.Committed(item)
	}
}

func (h Hooks) conflict(candidate DropTarget, ids []string) {
	if h.Conflict != nil {
		h.Conflict(candidate, ids)
	}
}

// Engine is the interactive scheduling timeline: one store, one grid
// and the two gesture machines, with creation and deletion entry
// points for the surrounding application. Everything runs on the
// caller's event loop; the engine has no goroutines of its own.
type Engine struct {
	grid   Grid
	store  *Store
	drag   *DragMachine
	resize *ResizeMachine
	hooks  Hooks
}

// New creates an engine for a validated grid.
func New(grid Grid, surface Surface, locator Locator, hooks Hooks) (*Engine, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}
	store := NewStore(grid)
	return &Engine{
		grid:   grid,
		store:  store,
		drag:   NewDragMachine(store, surface, locator, hooks),
		resize: NewResizeMachine(store, surface, hooks),
		hooks:  hooks,
	}, nil
}

// Grid returns the grid configuration.
func (e *Engine) Grid() Grid {
	return e.grid
}

// Store returns the item store.
func (e *Engine) Store() *Store {
	return e.store
}

// Drag returns the drag machine for frame ticks and target queries.
func (e *Engine) Drag() *DragMachine {
	return e.drag
}

// Resize returns the resize machine for frame ticks and previews.
func (e *Engine) Resize() *ResizeMachine {
	return e.resize
}

// GestureActive returns true while either machine is mid-gesture.
func (e *Engine) GestureActive() bool {
	return e.drag.Active() || e.resize.Active()
}

// Press starts a drag gesture. Rejected while any gesture, drag or
// resize, is active.
func (e *Engine) Press(id string, p Pointer) error {
	if e.resize.Active() {
		return ErrGestureActive
	}
	return e.drag.Press(id, p)
}

// StartResize starts an edge-handle gesture. Rejected while any
// gesture is active.
func (e *Engine) StartResize(id string, handle Handle, y int) error {
	if e.drag.Active() {
		return ErrGestureActive
	}
	return e.resize.Start(id, handle, y)
}

// PointerMove routes pointer motion to whichever gesture is active.
func (e *Engine) PointerMove(p Pointer) {
	if e.drag.Active() {
		e.drag.Move(p)
	}
	if e.resize.Active() {
		e.resize.Move(p.Y)
	}
}

// PointerRelease routes pointer-up to whichever gesture is active.
// Returns ErrNoGesture when nothing was in flight.
func (e *Engine) PointerRelease() error {
	if e.drag.Active() {
		return e.drag.Release()
	}
	if e.resize.Active() {
		return e.resize.Release()
	}
	return ErrNoGesture
}

// Frame advances both machines by one redraw tick.
func (e *Engine) Frame() {
	e.drag.Frame()
	e.resize.Frame()
}

// CancelGestures aborts any in-flight gesture. Safe to call from any
// state and a no-op if nothing is active; used for navigation away,
// modal opening or escape.
func (e *Engine) CancelGestures() {
	e.drag.Cancel()
	e.resize.Cancel()
}

// CreateQuick adds a pool item with the category's default duration.
func (e *Engine) CreateQuick(category plan.Category) (*plan.Item, error) {
	item, err := plan.NewQuick(category)
	if err != nil {
		return nil, err
	}
	if err := e.store.Add(item); err != nil {
		return nil, err
	}
	e.hooks.committed(item)
	return item, nil
}

// Create adds a pool item from explicit detail-form fields.
func (e *Engine) Create(title string, category plan.Category, durationMinutes int, meta plan.Metadata) (*plan.Item, error) {
	item, err := plan.New(title, category, durationMinutes)
	if err != nil {
		return nil, err
	}
	item.Meta = meta
	if err := e.store.Add(item); err != nil {
		return nil, err
	}
	e.hooks.committed(item)
	return item, nil
}

// PlaceAt places or moves an item outside a drag gesture (keyboard
// path, imports). Same validation and hooks as a drag commit.
func (e *Engine) PlaceAt(id string, day, startMinute int) error {
	if err := e.store.Place(id, day, startMinute); err != nil {
		var conflict *plan.ConflictError
		if errors.As(err, &conflict) {
			e.hooks.conflict(DropTarget{Day: day, StartMinute: startMinute}, conflict.IDs)
		}
		return err
	}
	item, _ := e.store.Get(id)
	e.hooks.committed(item)
	return nil
}

// Unplace returns an item to the pool and fires the committed hook so
// the cleared placement persists.
func (e *Engine) Unplace(id string) error {
	if err := e.store.Unplace(id); err != nil {
		return err
	}
	item, _ := e.store.Get(id)
	e.hooks.committed(item)
	return nil
}

// ResizeBy grows or shrinks an item by whole snap steps outside a
// resize gesture.
func (e *Engine) ResizeBy(id string, steps int) error {
	item, err := e.store.Get(id)
	if err != nil {
		return err
	}
	newDur := item.DurationMinutes + steps*e.grid.SnapMinutes
	if err := e.store.Resize(id, newDur); err != nil {
		var conflict *plan.ConflictError
		if errors.As(err, &conflict) {
			start := 0
			if item.Placement != nil {
				start = item.Placement.StartMinute
			}
			e.hooks.conflict(DropTarget{Day: placementDay(item), StartMinute: start}, conflict.IDs)
		}
		return err
	}
	e.hooks.committed(item)
	return nil
}

func placementDay(item *plan.Item) int {
	if item.Placement == nil {
		return 0
	}
	return item.Placement.Day
}

// Delete removes an item from whichever set holds it. An in-flight
// gesture on the item is cancelled first so no commit can resurrect
// it.
func (e *Engine) Delete(id string) error {
	if t := e.drag.Item(); t != nil && t.ID == id {
		e.drag.Cancel()
	}
	if t := e.resize.Item(); t != nil && t.ID == id {
		e.resize.Cancel()
	}
	return e.store.Remove(id)
}

// Load seeds the store from persisted items, pool and placed alike.
// Items whose placement no longer validates (changed config, stale
// rows) fall back to the pool rather than being dropped.
func (e *Engine) Load(items []*plan.Item) error {
	for _, item := range items {
		if err := e.store.Add(item); err != nil {
			if item.Placement == nil {
				return err
			}
			item.Placement = nil
			if err := e.store.Add(item); err != nil {
				return err
			}
		}
	}
	return nil
}
