// Package tui provides the terminal user interface for rocinante.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

// Default column width - recalculated dynamically from terminal width.
const defaultColWidth = 20

// Columns narrower than this are unreadable.
const minColWidth = 10

// Width of the hour-label gutter on the left edge.
const gutterWidth = 6

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and headers
	TitleStyle     lipgloss.Style
	DayHeaderStyle lipgloss.Style

	// Hour gutter
	GutterStyle lipgloss.Style

	// Timeline cells
	EmptyCellStyle lipgloss.Style
	HourLineStyle  lipgloss.Style
	CursorStyle    lipgloss.Style

	// Item blocks
	ItemTitleStyle lipgloss.Style
	ItemTimeStyle  lipgloss.Style
	ItemSelected   lipgloss.Style

	// Drop feedback
	DropOKStyle  lipgloss.Style
	DropBadStyle lipgloss.Style

	// Ghost proxy box
	GhostStyle     lipgloss.Style
	GhostHoldStyle lipgloss.Style

	// Pool sidebar
	PoolHeaderStyle lipgloss.Style
	PoolItemStyle   lipgloss.Style

	// Footer
	FooterStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	// Form modal
	FormBoxStyle   lipgloss.Style
	FormLabelStyle lipgloss.Style
	FormFocusStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		DayHeaderStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgHighlight).
			Bold(true).
			Align(lipgloss.Center),

		GutterStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Width(gutterWidth).
			Align(lipgloss.Right),

		EmptyCellStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		HourLineStyle: lipgloss.NewStyle().
			Foreground(p.BgSelection),
		CursorStyle: lipgloss.NewStyle().
			Background(p.BgSelection).
			Bold(true),

		ItemTitleStyle: lipgloss.NewStyle().
			Bold(true),
		ItemTimeStyle: lipgloss.NewStyle().
			Faint(true),
		ItemSelected: lipgloss.NewStyle().
			Background(p.BgSelection).
			Bold(true),

		DropOKStyle: lipgloss.NewStyle().
			Foreground(p.TextOnSuccess).
			Background(p.Success).
			Bold(true),
		DropBadStyle: lipgloss.NewStyle().
			Foreground(p.TextOnWarning).
			Background(p.Warning).
			Bold(true),

		GhostStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Foreground(p.Fg).
			Background(p.BgHighlight).
			Padding(0, 1),
		GhostHoldStyle: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Accent).
			Foreground(p.Fg).
			Background(p.BgHighlight).
			Padding(0, 1),

		PoolHeaderStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Underline(true),
		PoolItemStyle: lipgloss.NewStyle().
			Foreground(p.Fg),

		FooterStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Success),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),

		FormBoxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(1, 2),
		FormLabelStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		FormFocusStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
	}
}

// CategoryStyle returns the block style for a category name.
func (s *Styles) CategoryStyle(category string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.palette.CategoryFg(category)).
		Background(s.palette.CategoryBg(category))
}

// CategoryDot returns a colored marker for list output.
func (s *Styles) CategoryDot(category string) string {
	return lipgloss.NewStyle().
		Foreground(s.palette.CategoryFg(category)).
		Render("●")
}
