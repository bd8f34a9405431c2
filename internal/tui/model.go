package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/engine"
	"github.com/javiermolinar/rocinante/internal/plan"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm        // Item creation form modal
)

// Position is the keyboard cursor on the grid.
type Position struct {
	Day  int // day column
	Step int // snap-step row within the day window
}

// Duration presets for the item form.
var durationOptions = []int{30, 45, 60, 90, 120, 180}

// ghostState is the drag proxy, shared with the engine's Surface.
type ghostState struct {
	visible bool
	hold    bool // long-press affordance
	item    *plan.Item
	at      engine.Pointer
}

// eventSink collects engine hook firings during one Update pass so
// the model can turn them into bubbletea commands afterwards.
type eventSink struct {
	committed []*plan.Item
	conflicts []conflictEvent
}

type conflictEvent struct {
	candidate engine.DropTarget
	ids       []string
}

func (s *eventSink) drainCommitted() []*plan.Item {
	out := s.committed
	s.committed = nil
	return out
}

func (s *eventSink) drainConflicts() []conflictEvent {
	out := s.conflicts
	s.conflicts = nil
	return out
}

// layout maps between terminal cells and grid coordinates. Shared by
// pointer as the engine's Locator: the view owns the geometry, the
// machines only see days and minutes.
type layout struct {
	grid       engine.Grid
	colWidth   int
	headerRows int // rows above the first timeline row
	bodyRows   int // visible timeline rows
	scroll     int // snap-step rows scrolled past the window start
	poolX      int // left edge of the pool sidebar, -1 if hidden
}

// dayColX returns the left edge of a day column.
func (l *layout) dayColX(day int) int {
	return gutterWidth + day*(l.colWidth+1)
}

// dayAt returns the day column at terminal column x, or -1.
func (l *layout) dayAt(x int) int {
	if x < gutterWidth {
		return -1
	}
	if l.poolX >= 0 && x >= l.poolX {
		return -1
	}
	day := (x - gutterWidth) / (l.colWidth + 1)
	if day >= l.grid.Days {
		return -1
	}
	// The single separator column between days is no-man's land.
	if x >= l.dayColX(day)+l.colWidth {
		return -1
	}
	return day
}

// rowToMinute converts a terminal row to a raw minute offset.
func (l *layout) rowToMinute(y int) (int, bool) {
	row := y - l.headerRows
	if row < 0 || row >= l.bodyRows {
		return 0, false
	}
	px := row + l.scroll
	raw := l.grid.DayStartMinute + int(math.Round(float64(px)/l.grid.PxPerMinute))
	if raw >= l.grid.DayEndMinute {
		return 0, false
	}
	return raw, true
}

// minuteToRow converts a minute offset to a visible terminal row,
// ok=false when scrolled out of view.
func (l *layout) minuteToRow(minute int) (int, bool) {
	row := l.grid.MinuteToOffset(minute) - l.scroll
	if row < 0 || row >= l.bodyRows {
		return 0, false
	}
	return row + l.headerRows, true
}

// Locate implements engine.Locator.
func (l *layout) Locate(p engine.Pointer) (day, rawMinute int, ok bool) {
	day = l.dayAt(p.X)
	if day < 0 {
		return 0, 0, false
	}
	rawMinute, ok = l.rowToMinute(p.Y)
	if !ok {
		return 0, 0, false
	}
	return day, rawMinute, true
}

// surface implements engine.Surface against shared ghost state. The
// capture flag routes all pointer motion to the engine while held.
type surface struct {
	ghost *ghostState
	held  *bool
}

func (s surface) CapturePointer() { *s.held = true }

func (s surface) ReleasePointer() { *s.held = false }

func (s surface) ShowGhost(item *plan.Item, at engine.Pointer, deliberate bool) {
	s.ghost.visible = true
	s.ghost.hold = deliberate
	s.ghost.item = item
	s.ghost.at = at
}

func (s surface) MoveGhost(at engine.Pointer) {
	s.ghost.at = at
}

func (s surface) HideGhost() {
	s.ghost.visible = false
	s.ghost.item = nil
}

// formState is the item creation modal.
type formState struct {
	title    textinput.Model
	location textinput.Model
	category int // index into plan.Categories
	duration int // index into durationOptions
	focus    int // 0=title, 1=category, 2=duration, 3=location
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   plan.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Engine state. Pointers are shared with the engine's injected
	// Surface and Locator, so they survive bubbletea's model copying.
	engine      *engine.Engine
	layout      *layout
	ghost       *ghostState
	events      *eventSink
	pointerHeld *bool

	// Mouse hit zones for the pool sidebar
	zones *zone.Manager

	// UI state
	mode      Mode
	cursor    Position
	form      formState
	loading   bool
	statusMsg string
	statusErr bool

	// Frame tick bookkeeping: at most one outstanding tick
	framePending bool

	// Terminal dimensions
	width  int
	height int
}

// NewModel creates the TUI model and its engine.
func NewModel(repo plan.Repository, cfg *config.Config) (Model, error) {
	name := cfg.UI.Theme
	if name == "" {
		// No configured theme: follow the terminal background.
		if termenv.HasDarkBackground() {
			name = "mocha"
		} else {
			name = "latte"
		}
	}
	t, err := theme.Load(name)
	if err != nil {
		return Model{}, err
	}

	grid := engine.Grid{
		Days:           cfg.Trip.Days,
		DayStartMinute: plan.TimeToMinutes(cfg.Trip.DayStart),
		DayEndMinute:   plan.TimeToMinutes(cfg.Trip.DayEnd),
		SnapMinutes:    cfg.Trip.SnapMinutes,
		// One terminal row per snap step.
		PxPerMinute: 1.0 / float64(cfg.Trip.SnapMinutes),
	}

	ghost := &ghostState{}
	events := &eventSink{}
	held := false
	lay := &layout{grid: grid, colWidth: defaultColWidth, headerRows: 2, poolX: -1}

	hooks := engine.Hooks{
		Committed: func(item *plan.Item) {
			events.committed = append(events.committed, item)
		},
		Conflict: func(candidate engine.DropTarget, ids []string) {
			events.conflicts = append(events.conflicts, conflictEvent{candidate: candidate, ids: ids})
		},
	}

	eng, err := engine.New(grid, surface{ghost: ghost, held: &held}, lay, hooks)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		repo:        repo,
		config:      cfg,
		theme:       t,
		styles:      NewStyles(t),
		engine:      eng,
		layout:      lay,
		ghost:       ghost,
		events:      events,
		pointerHeld: &held,
		zones:       zone.New(),
		loading:     true,
	}
	m.form = newFormState()
	return m, nil
}

func newFormState() formState {
	title := textinput.New()
	title.Placeholder = "What are you doing?"
	title.CharLimit = 80
	title.Focus()

	location := textinput.New()
	location.Placeholder = "Where? (optional)"
	location.CharLimit = 80

	return formState{title: title, location: location}
}

// Init loads the itinerary.
func (m Model) Init() tea.Cmd {
	return commands.LoadItems(m.repo)
}

// selectedItem returns the placed item under the keyboard cursor.
func (m Model) selectedItem() *plan.Item {
	minute := m.layout.grid.DayStartMinute + m.cursor.Step*m.layout.grid.SnapMinutes
	return m.itemAt(m.cursor.Day, minute)
}

// itemAt returns the placed item covering a minute on a day, or nil.
func (m Model) itemAt(day, minute int) *plan.Item {
	for _, item := range m.engine.Store().ItemsForDay(day) {
		if minute >= item.Placement.StartMinute && minute < item.EndMinute() {
			return item
		}
	}
	return nil
}

// maxStep is the last valid cursor step for the day window.
func (m Model) maxStep() int {
	return m.layout.grid.WindowMinutes()/m.layout.grid.SnapMinutes - 1
}
