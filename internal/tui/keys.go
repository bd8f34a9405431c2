package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/plan"
	"github.com/javiermolinar/rocinante/internal/scheduler"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeForm {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.engine.GestureActive() {
			m.engine.CancelGestures()
			return m, nil
		}
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case "left", "h":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
		return m, nil

	case "right", "l":
		if m.cursor.Day < m.layout.grid.Days-1 {
			m.cursor.Day++
		}
		return m, nil

	case "up", "k":
		if m.cursor.Step > 0 {
			m.cursor.Step--
			m.scrollToCursor()
		}
		return m, nil

	case "down", "j":
		if m.cursor.Step < m.maxStep() {
			m.cursor.Step++
			m.scrollToCursor()
		}
		return m, nil

	case "pgup":
		m.layout.scroll -= m.layout.bodyRows
		m.clampScroll()
		return m, nil

	case "pgdown":
		m.layout.scroll += m.layout.bodyRows
		m.clampScroll()
		return m, nil

	case "n":
		m.mode = ModeForm
		m.form = newFormState()
		return m, nil

	case "1", "2", "3", "4", "5", "6":
		return m.quickCreate(int(msg.String()[0] - '1'))

	case "enter", " ":
		return m.placeFirstPoolItem()

	case "f":
		return m.fitFirstPoolItem()

	case "u":
		return m.unplaceSelected()

	case "d", "delete":
		return m.deleteSelected()

	case "+", "=":
		return m.resizeSelected(1)

	case "-", "_":
		return m.resizeSelected(-1)

	case "y":
		return m.yankDay()
	}

	return m, nil
}

// quickCreate makes an unplaced item of the given category with its
// default duration and drops it at the cursor when the slot is free.
func (m Model) quickCreate(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(plan.Categories) {
		return m, nil
	}
	cat := plan.Categories[idx]
	item, err := m.engine.CreateQuick(cat)
	if err != nil {
		return m, m.status(err, "")
	}

	placeErr := m.engine.PlaceAt(item.ID, m.cursor.Day, m.cursorMinute())
	cmds := m.drainEvents()
	if placeErr != nil {
		// The item stays in the pool; the create was already persisted.
		if _, ok := placeErr.(*plan.ConflictError); ok {
			m.statusMsg = "slot is taken, sent to pool"
			m.statusErr = true
			cmds = append(cmds, commands.ClearStatusAfter())
		} else {
			cmds = append(cmds, m.status(placeErr, ""))
		}
	}
	return m, tea.Batch(cmds...)
}

// placeFirstPoolItem drops the oldest pool item at the cursor.
func (m Model) placeFirstPoolItem() (tea.Model, tea.Cmd) {
	pool := m.engine.Store().Pool()
	if len(pool) == 0 {
		return m, nil
	}
	err := m.engine.PlaceAt(pool[0].ID, m.cursor.Day, m.cursorMinute())
	cmds := m.drainEvents()
	cmds = append(cmds, m.status(err, fmt.Sprintf("placed %q", pool[0].Title)))
	return m, tea.Batch(cmds...)
}

// fitFirstPoolItem places the oldest pool item into the earliest free
// slot at or after the cursor.
func (m Model) fitFirstPoolItem() (tea.Model, tea.Cmd) {
	pool := m.engine.Store().Pool()
	if len(pool) == 0 {
		return m, nil
	}
	item := pool[0]

	sched := scheduler.New(m.engine.Store())
	slot, ok := sched.FirstFit(m.cursor.Day, m.cursorMinute(), item.DurationMinutes)
	if !ok {
		m.statusMsg = fmt.Sprintf("no free %s slot left", formatDuration(item.DurationMinutes))
		m.statusErr = true
		return m, commands.ClearStatusAfter()
	}

	err := m.engine.PlaceAt(item.ID, slot.Day, slot.StartMinute)
	cmds := m.drainEvents()
	cmds = append(cmds, m.status(err, fmt.Sprintf("placed %q on day %d at %s",
		item.Title, slot.Day+1, plan.MinutesToTime(slot.StartMinute))))
	return m, tea.Batch(cmds...)
}

func (m Model) unplaceSelected() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}
	err := m.engine.Unplace(item.ID)
	cmds := m.drainEvents()
	cmds = append(cmds, m.status(err, fmt.Sprintf("%q back to pool", item.Title)))
	return m, tea.Batch(cmds...)
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}
	if err := m.engine.Delete(item.ID); err != nil {
		return m, m.status(err, "")
	}
	return m, tea.Batch(
		commands.RemoveItem(m.repo, item.ID),
		m.status(nil, fmt.Sprintf("deleted %q", item.Title)),
	)
}

func (m Model) resizeSelected(steps int) (tea.Model, tea.Cmd) {
	item := m.selectedItem()
	if item == nil {
		return m, nil
	}
	err := m.engine.ResizeBy(item.ID, steps)
	cmds := m.drainEvents()
	cmds = append(cmds, m.status(err, ""))
	return m, tea.Batch(cmds...)
}

// yankDay copies the cursor day's schedule to the clipboard.
func (m Model) yankDay() (tea.Model, tea.Cmd) {
	items := m.engine.Store().ItemsForDay(m.cursor.Day)
	if len(items) == 0 {
		return m, m.status(nil, "nothing on this day")
	}
	text := fmt.Sprintf("Day %d\n", m.cursor.Day+1)
	for _, item := range items {
		text += fmt.Sprintf("%s  %s", item.TimeRange(), item.Title)
		if item.Meta.Location != "" {
			text += " @ " + item.Meta.Location
		}
		text += "\n"
	}
	if err := clipboard.WriteAll(text); err != nil {
		return m, m.status(err, "")
	}
	return m, m.status(nil, fmt.Sprintf("day %d copied", m.cursor.Day+1))
}

// cursorMinute is the minute at the keyboard cursor.
func (m Model) cursorMinute() int {
	return m.layout.grid.DayStartMinute + m.cursor.Step*m.layout.grid.SnapMinutes
}
