package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/javiermolinar/rocinante/internal/plan"
)

// Handle identifies which edge of a placed item is being dragged.
type Handle int

const (
	// HandleTop adjusts the start keeping the end fixed.
	HandleTop Handle = iota
	// HandleBottom adjusts the end keeping the start fixed.
	HandleBottom
)

func (h Handle) String() string {
	if h == HandleTop {
		return "top"
	}
	return "bottom"
}

// ResizePhase is the lifecycle state of an edge-handle gesture.
type ResizePhase int

const (
	ResizeIdle ResizePhase = iota
	ResizeActive
)

func (p ResizePhase) String() string {
	switch p {
	case ResizeIdle:
		return "idle"
	case ResizeActive:
		return "active"
	default:
		return fmt.Sprintf("ResizePhase(%d)", int(p))
	}
}

// Geometry is the live preview of a resize: the geometry the item
// would have if released now. Rendered by the adapter; the store is
// untouched until release.
type Geometry struct {
	StartMinute int
	Duration    int
}

// EndMinute returns the exclusive end of the preview interval.
func (ge Geometry) EndMinute() int {
	return ge.StartMinute + ge.Duration
}

// ResizeMachine owns edge-handle duration and start changes on an
// already-placed item. Like the drag machine, pointer motion is
// coalesced to one application per frame, and only one gesture may be
// active at a time.
type ResizeMachine struct {
	grid    Grid
	store   *Store
	surface Surface
	hooks   Hooks

	phase   ResizePhase
	item    *plan.Item
	handle  Handle
	origin  Geometry // pre-resize geometry, for revert
	anchorY int      // pointer Y at gesture start
	pending *int     // newest pointer Y, applied on Frame
	preview Geometry
}

// NewResizeMachine creates an idle resize machine.
func NewResizeMachine(store *Store, surface Surface, hooks Hooks) *ResizeMachine {
	return &ResizeMachine{
		grid:    store.Grid(),
		store:   store,
		surface: surface,
		hooks:   hooks,
	}
}

// Phase returns the current lifecycle state.
func (r *ResizeMachine) Phase() ResizePhase {
	return r.phase
}

// Active returns true while a resize is in flight.
func (r *ResizeMachine) Active() bool {
	return r.phase != ResizeIdle
}

// Item returns the item under the gesture, or nil when idle.
func (r *ResizeMachine) Item() *plan.Item {
	return r.item
}

// Handle returns which edge is being dragged.
func (r *ResizeMachine) Handle() Handle {
	return r.handle
}

// Preview returns the live geometry for rendering.
func (r *ResizeMachine) Preview() Geometry {
	return r.preview
}

// Start begins a resize on a placed item's edge handle at pointer
// height y. Rejected while another gesture is active or for pool
// items.
func (r *ResizeMachine) Start(id string, handle Handle, y int) error {
	if r.phase != ResizeIdle {
		return ErrGestureActive
	}
	item, err := r.store.Get(id)
	if err != nil {
		return err
	}
	if item.Placement == nil {
		return plan.ErrItemNotFound
	}

	r.item = item
	r.handle = handle
	r.anchorY = y
	r.origin = Geometry{
		StartMinute: item.Placement.StartMinute,
		Duration:    item.DurationMinutes,
	}
	r.preview = r.origin
	r.phase = ResizeActive

	r.surface.CapturePointer()
	return nil
}

// Move records the newest pointer height; applied on the next Frame.
func (r *ResizeMachine) Move(y int) {
	if r.phase != ResizeActive {
		return
	}
	r.pending = &y
}

// Frame applies at most one coalesced preview update per redraw tick.
func (r *ResizeMachine) Frame() {
	if r.phase != ResizeActive || r.pending == nil {
		return
	}
	y := *r.pending
	r.pending = nil

	deltaMin := int(math.Round(float64(y-r.anchorY) / r.grid.PxPerMinute))
	r.preview = r.previewFor(deltaMin)
}

// previewFor computes the snapped candidate geometry for a pointer
// displacement in minutes, clamped to the day window and the one-step
// duration floor.
func (r *ResizeMachine) previewFor(deltaMin int) Geometry {
	switch r.handle {
	case HandleTop:
		end := r.origin.EndMinute()
		start := r.grid.Quantize(r.origin.StartMinute + deltaMin)
		// Keep the end fixed: the start may not cross the grid start
		// (Quantize clamps that) nor erase the item below one step.
		if start > end-r.grid.SnapMinutes {
			start = end - r.grid.SnapMinutes
		}
		if start < r.grid.DayStartMinute {
			start = r.grid.DayStartMinute
		}
		return Geometry{StartMinute: start, Duration: end - start}

	default: // HandleBottom
		dur := r.grid.QuantizeDuration(r.origin.Duration + deltaMin)
		// Keep the start fixed: the end may not pass the window end.
		if r.origin.StartMinute+dur > r.grid.DayEndMinute {
			dur = r.grid.DayEndMinute - r.origin.StartMinute
		}
		return Geometry{StartMinute: r.origin.StartMinute, Duration: dur}
	}
}

// Release commits the previewed geometry through the store. On
// conflict the item reverts to its pre-resize geometry and the
// conflict hook fires; on success the committed hook fires.
func (r *ResizeMachine) Release() error {
	if r.phase != ResizeActive {
		return ErrNoGesture
	}

	item, handle, preview := r.item, r.handle, r.preview
	r.finish()

	var err error
	if handle == HandleTop {
		err = r.store.MoveResize(item.ID, preview.StartMinute, preview.Duration)
	} else {
		err = r.store.Resize(item.ID, preview.Duration)
	}
	if err != nil {
		var conflict *plan.ConflictError
		if errors.As(err, &conflict) {
			r.hooks.conflict(DropTarget{Day: item.Placement.Day, StartMinute: preview.StartMinute}, conflict.IDs)
		}
		return err
	}

	r.hooks.committed(item)
	return nil
}

// Cancel aborts the resize and discards the preview. Safe to call
// from any state.
func (r *ResizeMachine) Cancel() {
	if r.phase == ResizeIdle {
		return
	}
	r.finish()
}

// finish releases the pointer and returns to idle. Idempotent.
func (r *ResizeMachine) finish() {
	r.surface.ReleasePointer()
	r.phase = ResizeIdle
	r.item = nil
	r.pending = nil
	r.preview = Geometry{}
	r.origin = Geometry{}
}
