// Package theme provides color themes for the TUI.
package theme

import (
	"fmt"
	"strings"
)

// Theme holds all colors for a TUI theme as hex strings.
type Theme struct {
	Name        string
	Bg          string // Base background
	BgHighlight string // Item blocks, subtle highlight
	BgSelection string // Cursor, selection
	Fg          string // Primary foreground
	FgMuted     string // Hour gutter, muted elements
	Accent      string // Title, borders
	Warning     string // Conflicts, rejected drops
	Success     string // Droppable highlight

	// Per-category accents.
	Transport     string
	Activity      string
	Sightseeing   string
	Food          string
	Shopping      string
	Accommodation string
}

// Catppuccin variants. Category colors follow the flavor's accent set.
var themes = map[string]Theme{
	"mocha": {
		Name: "mocha",
		Bg:   "#1e1e2e", BgHighlight: "#313244", BgSelection: "#45475a",
		Fg: "#cdd6f4", FgMuted: "#6c7086",
		Accent: "#89b4fa", Warning: "#f38ba8", Success: "#a6e3a1",
		Transport: "#89b4fa", Activity: "#a6e3a1", Sightseeing: "#cba6f7",
		Food: "#fab387", Shopping: "#f9e2af", Accommodation: "#94e2d5",
	},
	"macchiato": {
		Name: "macchiato",
		Bg:   "#24273a", BgHighlight: "#363a4f", BgSelection: "#494d64",
		Fg: "#cad3f5", FgMuted: "#6e738d",
		Accent: "#8aadf4", Warning: "#ed8796", Success: "#a6da95",
		Transport: "#8aadf4", Activity: "#a6da95", Sightseeing: "#c6a0f6",
		Food: "#f5a97f", Shopping: "#eed49f", Accommodation: "#8bd5ca",
	},
	"frappe": {
		Name: "frappe",
		Bg:   "#303446", BgHighlight: "#414559", BgSelection: "#51576d",
		Fg: "#c6d0f5", FgMuted: "#737994",
		Accent: "#8caaee", Warning: "#e78284", Success: "#a6d189",
		Transport: "#8caaee", Activity: "#a6d189", Sightseeing: "#ca9ee6",
		Food: "#ef9f76", Shopping: "#e5c890", Accommodation: "#81c8be",
	},
	"latte": {
		Name: "latte",
		Bg:   "#eff1f5", BgHighlight: "#ccd0da", BgSelection: "#bcc0cc",
		Fg: "#4c4f69", FgMuted: "#8c8fa1",
		Accent: "#1e66f5", Warning: "#d20f39", Success: "#40a02b",
		Transport: "#1e66f5", Activity: "#40a02b", Sightseeing: "#8839ef",
		Food: "#fe640b", Shopping: "#df8e1d", Accommodation: "#179299",
	},
}

// Load returns a theme by name, falling back to mocha for unknown names.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	t, ok := themes[name]
	if !ok {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return &t, nil
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
