package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/engine"
)

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeForm {
		return m, nil
	}

	p := engine.Pointer{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.layout.scroll--
			m.clampScroll()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.layout.scroll++
			m.clampScroll()
			return m, nil
		case tea.MouseButtonLeft:
			return m.mousePress(msg, p)
		}
		return m, nil

	case tea.MouseActionMotion:
		if *m.pointerHeld {
			m.engine.PointerMove(p)
			return m, m.ensureFrameTick()
		}
		return m, nil

	case tea.MouseActionRelease:
		if !*m.pointerHeld {
			return m, nil
		}
		err := m.engine.PointerRelease()
		cmds := m.drainEvents()
		cmds = append(cmds, m.status(err, ""))
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// mousePress starts a drag or resize gesture on the item under the
// pointer. Alt+press near an item's edge grabs a resize handle.
func (m Model) mousePress(msg tea.MouseMsg, p engine.Pointer) (tea.Model, tea.Cmd) {
	// Pool items are mapped through bubblezone.
	if id := m.poolItemAt(msg); id != "" {
		if err := m.engine.Press(id, p); err != nil {
			return m, m.status(err, "")
		}
		return m, m.ensureFrameTick()
	}

	day := m.layout.dayAt(msg.X)
	if day < 0 {
		return m, nil
	}
	minute, ok := m.layout.rowToMinute(msg.Y)
	if !ok {
		return m, nil
	}
	item := m.itemAt(day, minute)
	if item == nil {
		// Clicking empty grid moves the keyboard cursor.
		m.cursor.Day = day
		m.cursor.Step = (m.layout.grid.Quantize(minute) - m.layout.grid.DayStartMinute) / m.layout.grid.SnapMinutes
		return m, nil
	}

	m.cursor.Day = day

	if msg.Alt {
		handle := engine.HandleBottom
		mid := item.Placement.StartMinute + item.DurationMinutes/2
		if minute < mid {
			handle = engine.HandleTop
		}
		if err := m.engine.StartResize(item.ID, handle, msg.Y); err != nil {
			return m, m.status(err, "")
		}
		return m, m.ensureFrameTick()
	}

	if err := m.engine.Press(item.ID, p); err != nil {
		return m, m.status(err, "")
	}
	return m, m.ensureFrameTick()
}

// poolItemAt resolves a click inside the pool sidebar to an item ID
// through its bubblezone marker.
func (m Model) poolItemAt(msg tea.MouseMsg) string {
	if m.layout.poolX < 0 || msg.X < m.layout.poolX {
		return ""
	}
	for _, item := range m.engine.Store().Pool() {
		if m.zones.Get(poolZoneID(item.ID)).InBounds(msg) {
			return item.ID
		}
	}
	return ""
}

// poolZoneID namespaces pool zone markers.
func poolZoneID(id string) string {
	return "pool:" + id
}
