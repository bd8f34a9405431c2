package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/rocinante/internal/plan"
)

// Gesture errors.
var (
	ErrGestureActive = errors.New("another gesture is already active")
	ErrNoGesture     = errors.New("no gesture in progress")
)

const (
	// defaultHoldDelay is how long a stationary press waits before the
	// drag starts with the deliberate long-press affordance.
	defaultHoldDelay = 200 * time.Millisecond
	// defaultMoveThresholdPx is the pointer travel that starts the drag
	// immediately, cancelling the hold timer.
	defaultMoveThresholdPx = 3
)

// DragPhase is the lifecycle state of a pointer-driven move.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragPressed
	DragDragging
)

func (p DragPhase) String() string {
	switch p {
	case DragIdle:
		return "idle"
	case DragPressed:
		return "pressed"
	case DragDragging:
		return "dragging"
	default:
		return fmt.Sprintf("DragPhase(%d)", int(p))
	}
}

// Pointer is a continuous pointer position in pixels.
type Pointer struct {
	X, Y int
}

// dist is the Chebyshev distance between two pointer positions.
func (p Pointer) dist(q Pointer) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// DropTarget is the snapped grid cell under the pointer.
type DropTarget struct {
	Day         int
	StartMinute int
}

// Locator maps pointer positions to grid coordinates. The rendering
// adapter owns the layout, so it supplies the mapping.
type Locator interface {
	// Locate returns the day column and raw (unsnapped) minute offset
	// under the pointer, or ok=false outside every day column.
	Locate(p Pointer) (day, rawMinute int, ok bool)
}

// Surface is the side-effect boundary for a gesture: the detached
// visual proxy ("ghost") and pointer capture. Both are acquired when
// the gesture takes hold and released together on every exit path.
type Surface interface {
	CapturePointer()
	ReleasePointer()

	// ShowGhost creates the proxy for the item at the pointer.
	// deliberate marks a long-press start for the affordance.
	ShowGhost(item *plan.Item, at Pointer, deliberate bool)
	// MoveGhost translates the proxy; no layout reflow.
	MoveGhost(at Pointer)
	HideGhost()
}

// DragMachine owns the lifecycle of a pointer-driven move from press
// to commit or cancel. Only one gesture can be active at a time: Press
// is accepted only while idle.
//
// Pointer motion is coalesced: Move records the newest position and
// Frame applies at most one update, so work stays bounded under fast
// pointer motion regardless of input event frequency.
type DragMachine struct {
	grid    Grid
	store   *Store
	surface Surface
	locator Locator
	hooks   Hooks

	now             func() time.Time
	holdDelay       time.Duration
	moveThresholdPx int

	phase      DragPhase
	item       *plan.Item
	origin     *plan.Placement // nil when dragged out of the pool
	pressAt    time.Time
	pressPtr   Pointer
	pending    *Pointer
	cur        Pointer
	deliberate bool
	captured   bool
	ghosted    bool

	target    *DropTarget
	droppable bool
}

// NewDragMachine creates an idle drag machine.
func NewDragMachine(store *Store, surface Surface, locator Locator, hooks Hooks) *DragMachine {
	return &DragMachine{
		grid:            store.Grid(),
		store:           store,
		surface:         surface,
		locator:         locator,
		hooks:           hooks,
		now:             time.Now,
		holdDelay:       defaultHoldDelay,
		moveThresholdPx: defaultMoveThresholdPx,
	}
}

// SetNow injects the clock, for tests.
func (d *DragMachine) SetNow(now func() time.Time) {
	d.now = now
}

// Phase returns the current lifecycle state.
func (d *DragMachine) Phase() DragPhase {
	return d.phase
}

// Active returns true while a gesture is in flight.
func (d *DragMachine) Active() bool {
	return d.phase != DragIdle
}

// Item returns the item under the gesture, or nil when idle.
func (d *DragMachine) Item() *plan.Item {
	return d.item
}

// Origin returns the item's placement when the gesture started, or
// nil when it came from the pool.
func (d *DragMachine) Origin() *plan.Placement {
	return d.origin
}

// Target returns the current drop candidate and whether it is free.
// The rendering layer uses this to highlight accept/reject.
func (d *DragMachine) Target() (*DropTarget, bool) {
	return d.target, d.droppable
}

// Deliberate reports whether the drag started via long press.
func (d *DragMachine) Deliberate() bool {
	return d.deliberate
}

// Press starts a gesture over a pool or placed item.
// Rejected while another gesture is active.
func (d *DragMachine) Press(id string, p Pointer) error {
	if d.phase != DragIdle {
		return ErrGestureActive
	}
	item, err := d.store.Get(id)
	if err != nil {
		return err
	}

	d.item = item
	if item.Placement != nil {
		origin := *item.Placement
		d.origin = &origin
	}
	d.pressAt = d.now()
	d.pressPtr = p
	d.cur = p
	d.phase = DragPressed

	d.surface.CapturePointer()
	d.captured = true
	return nil
}

// Move records the newest pointer position. While pressed, travel past
// the movement threshold starts the drag immediately and the hold
// timer is moot; while dragging, the position is applied on the next
// Frame.
func (d *DragMachine) Move(p Pointer) {
	switch d.phase {
	case DragPressed:
		d.cur = p
		if p.dist(d.pressPtr) >= d.moveThresholdPx {
			d.startDragging(false)
		}
	case DragDragging:
		d.pending = &p
	}
}

// Frame applies at most one coalesced update. Call once per redraw
// tick. While pressed it also promotes an elapsed long press to a
// drag.
func (d *DragMachine) Frame() {
	switch d.phase {
	case DragPressed:
		if d.now().Sub(d.pressAt) >= d.holdDelay {
			d.startDragging(true)
		}
	case DragDragging:
		if d.pending == nil {
			return
		}
		d.cur = *d.pending
		d.pending = nil
		d.surface.MoveGhost(d.cur)
		d.retarget()
	}
}

// Release ends the gesture. From pressed it is a plain tap: nothing
// happens. From dragging it commits over a free target, otherwise the
// item keeps its prior placement. A commit fires the committed hook; a
// rejected drop fires the conflict hook. Returns plan.ErrNoTarget when
// released outside every day column.
func (d *DragMachine) Release() error {
	switch d.phase {
	case DragIdle:
		return ErrNoGesture
	case DragPressed:
		d.finish()
		return nil
	}

	item, target := d.item, d.target
	d.finish()

	if target == nil {
		return plan.ErrNoTarget
	}

	if err := d.store.Place(item.ID, target.Day, target.StartMinute); err != nil {
		// Either the target was occupied all along (droppable was
		// false) or another mutation closed the slot between the last
		// frame and the release. The item keeps its prior placement.
		var conflict *plan.ConflictError
		if errors.As(err, &conflict) {
			d.hooks.conflict(*target, conflict.IDs)
		}
		return err
	}

	d.hooks.committed(item)
	return nil
}

// Cancel aborts the gesture from any state, releasing the pointer and
// the ghost. Safe to call when no gesture is active.
func (d *DragMachine) Cancel() {
	if d.phase == DragIdle {
		return
	}
	d.finish()
}

func (d *DragMachine) startDragging(deliberate bool) {
	d.deliberate = deliberate
	d.phase = DragDragging
	d.surface.ShowGhost(d.item, d.cur, deliberate)
	d.ghosted = true
	d.retarget()
}

// retarget recomputes the drop candidate and droppable signal for the
// current pointer position.
func (d *DragMachine) retarget() {
	day, raw, ok := d.locator.Locate(d.cur)
	if !ok || !d.grid.ValidDay(day) {
		d.target = nil
		d.droppable = false
		return
	}

	start := d.grid.Quantize(raw)
	d.target = &DropTarget{Day: day, StartMinute: start}
	d.droppable = d.grid.Fits(start, d.item.DurationMinutes) &&
		d.store.Free(day, start, d.item.DurationMinutes, d.item.ID)
}

// finish releases ghost and pointer together and returns to idle.
// Idempotent: every exit path funnels through here.
func (d *DragMachine) finish() {
	if d.ghosted {
		d.surface.HideGhost()
		d.ghosted = false
	}
	if d.captured {
		d.surface.ReleasePointer()
		d.captured = false
	}
	d.phase = DragIdle
	d.item = nil
	d.origin = nil
	d.pending = nil
	d.target = nil
	d.droppable = false
	d.deliberate = false
}
