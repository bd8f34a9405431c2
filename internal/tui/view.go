package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rocinante/internal/engine"
	"github.com/javiermolinar/rocinante/internal/plan"
)

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteByte('\n')
	b.WriteString(m.renderDayHeaders())
	b.WriteByte('\n')

	body := m.renderBody()
	b.WriteString(body)
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())

	view := b.String()

	if m.ghost.visible {
		view = spliceOverlay(view, m.renderGhost(), m.ghost.at.X, m.ghost.at.Y, m.width)
	}
	if m.mode == ModeForm {
		view = spliceCentered(view, m.renderForm(), m.width, m.height)
	}

	return m.zones.Scan(view)
}

func (m Model) renderTitle() string {
	name := m.config.Trip.Name
	if name == "" {
		name = "itinerary"
	}
	title := m.styles.TitleStyle.Render("⊕ " + name)
	if m.loading {
		title += m.styles.FooterStyle.Render("  loading...")
	}
	return title
}

func (m Model) renderDayHeaders() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for day := 0; day < m.layout.grid.Days; day++ {
		label := m.dayLabel(day)
		b.WriteString(m.styles.DayHeaderStyle.Width(m.layout.colWidth).Render(label))
		b.WriteString(" ")
	}
	if m.layout.poolX >= 0 {
		b.WriteString(" ")
		b.WriteString(m.styles.PoolHeaderStyle.Render("Pool"))
	}
	return b.String()
}

// dayLabel shows the calendar date when the trip start date is set.
func (m Model) dayLabel(day int) string {
	if d, ok := m.config.Trip.Date(day); ok {
		return fmt.Sprintf("Day %d · %s", day+1, d.Format("Jan 2"))
	}
	return fmt.Sprintf("Day %d", day+1)
}

func (m Model) renderBody() string {
	pool := m.renderPoolLines()

	lines := make([]string, 0, m.layout.bodyRows)
	for row := 0; row < m.layout.bodyRows; row++ {
		step := row + m.layout.scroll
		minute := m.layout.grid.DayStartMinute + step*m.layout.grid.SnapMinutes
		if minute >= m.layout.grid.DayEndMinute {
			lines = append(lines, "")
			continue
		}

		var b strings.Builder
		b.WriteString(m.renderGutter(minute))
		for day := 0; day < m.layout.grid.Days; day++ {
			b.WriteString(m.renderCell(day, minute, step))
			b.WriteString(m.styles.HourLineStyle.Render("│"))
		}
		if m.layout.poolX >= 0 && row < len(pool) {
			b.WriteString(" ")
			b.WriteString(pool[row])
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// renderGutter shows the time label on full hours, blank otherwise.
func (m Model) renderGutter(minute int) string {
	label := ""
	if minute%60 == 0 {
		label = plan.MinutesToTime(minute) + " "
	}
	return m.styles.GutterStyle.Render(label)
}

// renderCell draws one day cell at a minute row.
func (m Model) renderCell(day, minute, step int) string {
	cw := m.layout.colWidth

	item, geo := m.visibleItemAt(day, minute)
	if item != nil {
		return m.renderItemRow(item, geo, minute, cw)
	}

	// Drop-target highlight while a drag is in flight.
	if target, droppable := m.engine.Drag().Target(); target != nil && target.Day == day {
		dragged := m.engine.Drag().Item()
		if dragged != nil && minute >= target.StartMinute && minute < target.StartMinute+dragged.DurationMinutes {
			style := m.styles.DropOKStyle
			if !droppable {
				style = m.styles.DropBadStyle
			}
			return style.Width(cw).Render("")
		}
	}

	// Keyboard cursor on the empty grid.
	if day == m.cursor.Day && step == m.cursor.Step {
		return m.styles.CursorStyle.Width(cw).Render("")
	}

	if minute%60 == 0 {
		return m.styles.HourLineStyle.Render(strings.Repeat("┄", cw))
	}
	return strings.Repeat(" ", cw)
}

// visibleItemAt returns the item rendered at (day, minute) and its
// on-screen geometry, which differs from the stored one while that
// item is mid-resize.
func (m Model) visibleItemAt(day, minute int) (*plan.Item, engine.Geometry) {
	resizing := m.engine.Resize().Item()
	preview := m.engine.Resize().Preview()

	for _, item := range m.engine.Store().ItemsForDay(day) {
		geo := engine.Geometry{StartMinute: item.Placement.StartMinute, Duration: item.DurationMinutes}
		if resizing != nil && item.ID == resizing.ID {
			geo = preview
		}
		if minute >= geo.StartMinute && minute < geo.EndMinute() {
			return item, geo
		}
	}
	return nil, engine.Geometry{}
}

// renderItemRow draws one row of an item block.
func (m Model) renderItemRow(item *plan.Item, geo engine.Geometry, minute, cw int) string {
	base := m.styles.CategoryStyle(string(item.Category))
	if dragged := m.engine.Drag().Item(); dragged != nil && dragged.ID == item.ID {
		// The original stays put, dimmed, while the ghost travels.
		base = base.Faint(true)
	}

	switch {
	case minute == geo.StartMinute:
		text := " " + item.Title
		return base.Bold(true).Width(cw).Render(ansi.Truncate(text, cw, "…"))
	case minute == geo.StartMinute+m.layout.grid.SnapMinutes && geo.Duration > m.layout.grid.SnapMinutes:
		text := " " + plan.MinutesToTime(geo.StartMinute) + "-" + plan.MinutesToTime(geo.EndMinute())
		if item.Meta.Location != "" {
			text += " @ " + item.Meta.Location
		}
		return base.Faint(true).Width(cw).Render(ansi.Truncate(text, cw, "…"))
	default:
		return base.Width(cw).Render("")
	}
}

// renderPoolLines renders the unscheduled sidebar, one line per item,
// each wrapped in a mouse zone.
func (m Model) renderPoolLines() []string {
	if m.layout.poolX < 0 {
		return nil
	}
	pool := m.engine.Store().Pool()
	lines := make([]string, 0, len(pool))
	for _, item := range pool {
		label := fmt.Sprintf("%s %s (%s)",
			m.styles.CategoryDot(string(item.Category)),
			ansi.Truncate(item.Title, m.layout.colWidth-8, "…"),
			formatDuration(item.DurationMinutes))
		lines = append(lines, m.zones.Mark(poolZoneID(item.ID), m.styles.PoolItemStyle.Render(label)))
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.FooterStyle.Render("(empty)"))
	}
	return lines
}

func (m Model) renderFooter() string {
	help := m.styles.FooterStyle.Render(
		"n new · 1-6 quick · enter place · f fit · u unplace · +/- resize · d delete · y yank · drag with mouse · q quit")

	status := ""
	if m.statusMsg != "" {
		if m.statusErr {
			status = m.styles.ErrorStyle.Render(m.statusMsg)
		} else {
			status = m.styles.StatusStyle.Render(m.statusMsg)
		}
	}
	return help + "\n" + status
}

// renderGhost draws the floating drag proxy near the pointer.
func (m Model) renderGhost() string {
	item := m.ghost.item
	if item == nil {
		return ""
	}
	style := m.styles.GhostStyle
	if m.ghost.hold {
		style = m.styles.GhostHoldStyle
	}

	label := item.Title
	if target, _ := m.engine.Drag().Target(); target != nil {
		label += "\n" + plan.MinutesToTime(target.StartMinute) + " · day " + fmt.Sprint(target.Day+1)
	} else {
		label += "\n" + formatDuration(item.DurationMinutes)
	}
	return style.Render(label)
}

func (m Model) renderForm() string {
	f := m.form

	labelOf := func(i int, s string) string {
		if f.focus == i {
			return m.styles.FormFocusStyle.Render("▸ " + s)
		}
		return m.styles.FormLabelStyle.Render("  " + s)
	}

	cat := plan.Categories[f.category]
	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Render("New item"))
	b.WriteString("\n\n")
	b.WriteString(labelOf(0, "Title    ") + f.title.View())
	b.WriteString("\n")
	b.WriteString(labelOf(1, "Category ") + m.styles.CategoryDot(string(cat)) + " " + string(cat))
	b.WriteString("\n")
	b.WriteString(labelOf(2, "Duration ") + formatDuration(durationOptions[f.duration]))
	b.WriteString("\n")
	b.WriteString(labelOf(3, "Location ") + f.location.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.FooterStyle.Render("tab next · ←/→ cycle · enter save · esc cancel"))

	return m.styles.FormBoxStyle.Render(b.String())
}

// formatDuration renders minutes as "1h30" style.
func formatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02d", h, m)
	}
}

// spliceOverlay writes a block over the base view at (x, y), clipped
// to the terminal width.
func spliceOverlay(base, overlay string, x, y, width int) string {
	if overlay == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")

	for i, over := range overLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		line := baseLines[row]
		ow := ansi.StringWidth(over)
		ox := x
		if ox+ow > width {
			ox = width - ow
		}
		if ox < 0 {
			ox = 0
		}

		left := ansi.Truncate(line, ox, "")
		if lw := ansi.StringWidth(left); lw < ox {
			left += strings.Repeat(" ", ox-lw)
		}
		right := ansi.TruncateLeft(line, ox+ow, "")
		baseLines[row] = left + over + right
	}
	return strings.Join(baseLines, "\n")
}

// spliceCentered places a block in the middle of the screen.
func spliceCentered(base, overlay string, width, height int) string {
	ow, oh := lipgloss.Size(overlay)
	x := (width - ow) / 2
	y := (height - oh) / 2
	return spliceOverlay(base, overlay, x, y, width)
}
