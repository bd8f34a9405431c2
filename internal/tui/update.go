package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/plan"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reflow()
		return m, nil

	case tea.KeyMsg:
		LogKeyPress(msg)
		return m.handleKey(msg)

	case tea.MouseMsg:
		LogMouse(msg)
		next, cmd := m.handleMouse(msg)
		LogGesture(m.engine, "after_mouse")
		return next, cmd

	case commands.FrameTickMsg:
		m.framePending = false
		m.engine.Frame()
		cmds := m.drainEvents()
		if m.engine.GestureActive() {
			m.framePending = true
			cmds = append(cmds, commands.FrameTick())
		}
		return m, tea.Batch(cmds...)

	case commands.ItemsLoadedMsg:
		m.loading = false
		if err := m.engine.Load(msg.Items); err != nil {
			m.statusMsg = err.Error()
			m.statusErr = true
		}
		return m, nil

	case commands.PersistedMsg:
		return m, nil

	case commands.PersistFailedMsg:
		LogError("persist", msg.Err)
		m.statusMsg = "save failed: " + msg.Err.Error()
		m.statusErr = true
		return m, commands.ClearStatusAfter()

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case commands.ErrMsg:
		m.statusMsg = msg.Err.Error()
		m.statusErr = true
		return m, commands.ClearStatusAfter()
	}

	return m, nil
}

// reflow recomputes layout geometry after a resize.
func (m *Model) reflow() {
	l := m.layout
	l.headerRows = 2
	l.bodyRows = m.height - l.headerRows - 2 // footer and status line
	if l.bodyRows < 1 {
		l.bodyRows = 1
	}

	// Pool sidebar takes a fixed width on the right when it fits.
	poolWidth := defaultColWidth + 2
	gridWidth := m.width
	if m.width >= gutterWidth+m.layout.grid.Days*(minColWidth+1)+poolWidth {
		gridWidth = m.width - poolWidth
		l.poolX = gridWidth
	} else {
		l.poolX = -1
	}

	// Split the remaining width evenly across day columns.
	avail := gridWidth - gutterWidth - m.layout.grid.Days // separators
	cw := avail / m.layout.grid.Days
	if cw < minColWidth {
		cw = minColWidth
	}
	if cw > defaultColWidth {
		cw = defaultColWidth
	}
	l.colWidth = cw

	m.clampScroll()
}

// clampScroll keeps the scroll offset within the day window.
func (m *Model) clampScroll() {
	totalRows := m.layout.grid.WindowMinutes() / m.layout.grid.SnapMinutes
	max := totalRows - m.layout.bodyRows
	if max < 0 {
		max = 0
	}
	if m.layout.scroll > max {
		m.layout.scroll = max
	}
	if m.layout.scroll < 0 {
		m.layout.scroll = 0
	}
}

// scrollToCursor scrolls so the cursor row is visible.
func (m *Model) scrollToCursor() {
	if m.cursor.Step < m.layout.scroll {
		m.layout.scroll = m.cursor.Step
	}
	if m.cursor.Step >= m.layout.scroll+m.layout.bodyRows {
		m.layout.scroll = m.cursor.Step - m.layout.bodyRows + 1
	}
}

// drainEvents converts hook firings collected during engine calls into
// status updates and persistence commands.
func (m *Model) drainEvents() []tea.Cmd {
	var cmds []tea.Cmd
	for _, item := range m.events.drainCommitted() {
		day, start := -1, -1
		if item.Placement != nil {
			day, start = item.Placement.Day, item.Placement.StartMinute
		}
		LogCommit(item.ID, item.Title, day, start, item.DurationMinutes)
		cmds = append(cmds, commands.PersistItem(m.repo, item))
	}
	for _, c := range m.events.drainConflicts() {
		names := make([]string, 0, len(c.ids))
		for _, id := range c.ids {
			if it, err := m.engine.Store().Get(id); err == nil {
				names = append(names, it.Title)
			}
		}
		m.statusMsg = "conflicts with " + strings.Join(names, ", ")
		m.statusErr = true
		cmds = append(cmds, commands.ClearStatusAfter())
	}
	return cmds
}

// ensureFrameTick starts the frame loop when a gesture begins.
func (m *Model) ensureFrameTick() tea.Cmd {
	if m.engine.GestureActive() && !m.framePending {
		m.framePending = true
		return commands.FrameTick()
	}
	return nil
}

// status reports an engine error or a success message on the footer.
func (m *Model) status(err error, okMsg string) tea.Cmd {
	if err != nil {
		// Conflicts already reported through the hook.
		if _, ok := err.(*plan.ConflictError); ok {
			return nil
		}
		m.statusMsg = err.Error()
		m.statusErr = true
		return commands.ClearStatusAfter()
	}
	if okMsg != "" {
		m.statusMsg = okMsg
		m.statusErr = false
		return commands.ClearStatusAfter()
	}
	return nil
}
