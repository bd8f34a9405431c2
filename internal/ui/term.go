package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/rocinante/internal/plan"
)

// Color definitions for consistent styling across the CLI output.
var (
	colorHeader = color.New(color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
	colorCost   = color.New(color.FgGreen)
	colorStats  = color.New(color.FgCyan)

	categoryColors = map[plan.Category]*color.Color{
		plan.CategoryTransport:     color.New(color.FgBlue),
		plan.CategoryActivity:      color.New(color.FgCyan),
		plan.CategorySightseeing:   color.New(color.FgMagenta),
		plan.CategoryFood:          color.New(color.FgYellow),
		plan.CategoryShopping:      color.New(color.FgGreen),
		plan.CategoryAccommodation: color.New(color.FgWhite),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// categoryDot renders a colored marker for an item's category.
func categoryDot(c plan.Category) string {
	if cc, ok := categoryColors[c]; ok {
		return cc.Sprint("●")
	}
	return "●"
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatCost formats monetary amounts.
func formatCost(s string) string {
	return colorCost.Sprint(s)
}

// formatStats formats aggregate numbers.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}
