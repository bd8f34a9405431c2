// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/plan"
)

// FrameTickMsg drives one redraw tick of the gesture machines.
type FrameTickMsg struct {
	At time.Time
}

// ItemsLoadedMsg is sent when the itinerary is loaded from storage.
type ItemsLoadedMsg struct {
	Items []*plan.Item
}

// PersistedMsg is sent when an item upsert completes.
type PersistedMsg struct {
	ID string
}

// PersistFailedMsg is sent when an item upsert fails. Persistence is
// optimistic, so the local state keeps the change; the failure is only
// surfaced as a status message.
type PersistFailedMsg struct {
	ID  string
	Err error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// framePeriod is the redraw cadence while a gesture is active.
const framePeriod = time.Second / 30

// FrameTick schedules the next gesture frame.
func FrameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return FrameTickMsg{At: t}
	})
}

// LoadItems loads the whole itinerary.
func LoadItems(repo plan.Repository) tea.Cmd {
	return func() tea.Msg {
		items, err := repo.ListItems(context.Background())
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ItemsLoadedMsg{Items: items}
	}
}

// PersistItem upserts one item in the background.
func PersistItem(repo plan.Repository, item *plan.Item) tea.Cmd {
	// Snapshot before the command runs: the canonical copy may change
	// again while the upsert is in flight.
	snapshot := item.Clone()
	return func() tea.Msg {
		if err := repo.UpsertItem(context.Background(), snapshot); err != nil {
			return PersistFailedMsg{ID: snapshot.ID, Err: err}
		}
		return PersistedMsg{ID: snapshot.ID}
	}
}

// RemoveItem deletes one item in the background.
func RemoveItem(repo plan.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteItem(context.Background(), id); err != nil {
			return PersistFailedMsg{ID: id, Err: err}
		}
		return PersistedMsg{ID: id}
	}
}

// ShowStatus sets a status message.
func ShowStatus(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// statusLinger is how long a status message stays visible.
const statusLinger = 4 * time.Second

// ClearStatusAfter clears the status message after a delay.
func ClearStatusAfter() tea.Cmd {
	return tea.Tick(statusLinger, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
