package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/plan"
)

const formFields = 4

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil

	case "enter":
		return m.submitForm()

	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % formFields
		m.syncFormFocus()
		return m, nil

	case "shift+tab", "up":
		m.form.focus = (m.form.focus + formFields - 1) % formFields
		m.syncFormFocus()
		return m, nil

	case "left":
		switch m.form.focus {
		case 1:
			m.form.category = (m.form.category + len(plan.Categories) - 1) % len(plan.Categories)
			return m, nil
		case 2:
			m.form.duration = (m.form.duration + len(durationOptions) - 1) % len(durationOptions)
			return m, nil
		}

	case "right":
		switch m.form.focus {
		case 1:
			m.form.category = (m.form.category + 1) % len(plan.Categories)
			return m, nil
		case 2:
			m.form.duration = (m.form.duration + 1) % len(durationOptions)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case 0:
		m.form.title, cmd = m.form.title.Update(msg)
	case 3:
		m.form.location, cmd = m.form.location.Update(msg)
	}
	return m, cmd
}

// syncFormFocus moves text input focus to the active field.
func (m *Model) syncFormFocus() {
	m.form.title.Blur()
	m.form.location.Blur()
	switch m.form.focus {
	case 0:
		m.form.title.Focus()
	case 3:
		m.form.location.Focus()
	}
}

// submitForm creates the item in the pool and closes the modal.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.form.title.Value())
	meta := plan.Metadata{Location: strings.TrimSpace(m.form.location.Value())}

	_, err := m.engine.Create(title, plan.Categories[m.form.category], durationOptions[m.form.duration], meta)
	if err != nil {
		m.statusMsg = err.Error()
		m.statusErr = true
		return m, nil
	}

	m.mode = ModeNormal
	cmds := m.drainEvents()
	cmds = append(cmds, m.status(nil, "added to pool"))
	return m, tea.Batch(cmds...)
}
