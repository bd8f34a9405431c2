package tui

import (
	"strings"
	"testing"

	"github.com/javiermolinar/rocinante/internal/engine"
)

func testLayout() *layout {
	return &layout{
		grid: engine.Grid{
			Days:           3,
			DayStartMinute: 420,  // 07:00
			DayEndMinute:   1380, // 23:00
			SnapMinutes:    15,
			PxPerMinute:    1.0 / 15.0, // one row per snap step
		},
		colWidth:   20,
		headerRows: 2,
		bodyRows:   30,
		poolX:      -1,
	}
}

func TestLayoutDayAt(t *testing.T) {
	l := testLayout()

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"hour gutter", 3, -1},
		{"first day left edge", gutterWidth, 0},
		{"first day interior", gutterWidth + 10, 0},
		{"separator column", gutterWidth + 20, -1},
		{"second day", gutterWidth + 21, 1},
		{"third day", gutterWidth + 2*21 + 5, 2},
		{"past the last day", gutterWidth + 3*21 + 5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.dayAt(tt.x); got != tt.want {
				t.Errorf("dayAt(%d) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestLayoutDayAtPoolSidebar(t *testing.T) {
	l := testLayout()
	l.poolX = gutterWidth + 2*21 // pool covers the third day's columns

	if got := l.dayAt(l.poolX + 3); got != -1 {
		t.Errorf("dayAt inside the pool = %d, want -1", got)
	}
	if got := l.dayAt(gutterWidth + 21); got != 1 {
		t.Errorf("dayAt left of the pool = %d, want 1", got)
	}
}

func TestLayoutRowToMinute(t *testing.T) {
	l := testLayout()

	if _, ok := l.rowToMinute(0); ok {
		t.Error("header row should not map to a minute")
	}

	raw, ok := l.rowToMinute(l.headerRows)
	if !ok || raw != 420 {
		t.Errorf("first body row = %d/%v, want 420", raw, ok)
	}

	raw, ok = l.rowToMinute(l.headerRows + 4)
	if !ok || raw != 480 {
		t.Errorf("fifth body row = %d/%v, want 480", raw, ok)
	}

	l.scroll = 8 // two hours down
	raw, ok = l.rowToMinute(l.headerRows)
	if !ok || raw != 540 {
		t.Errorf("scrolled first row = %d/%v, want 540", raw, ok)
	}

	if _, ok := l.rowToMinute(l.headerRows + l.bodyRows); ok {
		t.Error("row past the body should not map")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := testLayout()
	l.scroll = 4

	for _, minute := range []int{480, 555, 840} {
		row, ok := l.minuteToRow(minute)
		if !ok {
			t.Fatalf("minuteToRow(%d) out of view", minute)
		}
		back, ok := l.rowToMinute(row)
		if !ok || back != minute {
			t.Errorf("round trip %d -> row %d -> %d", minute, row, back)
		}
	}

	// 07:00 is scrolled off.
	if _, ok := l.minuteToRow(420); ok {
		t.Error("scrolled-out minute should not be visible")
	}
}

func TestLayoutLocate(t *testing.T) {
	l := testLayout()

	day, raw, ok := l.Locate(engine.Pointer{X: gutterWidth + 25, Y: l.headerRows + 2})
	if !ok || day != 1 || raw != 450 {
		t.Errorf("Locate = (%d, %d, %v), want (1, 450, true)", day, raw, ok)
	}

	if _, _, ok := l.Locate(engine.Pointer{X: 2, Y: l.headerRows}); ok {
		t.Error("gutter should not locate")
	}
	if _, _, ok := l.Locate(engine.Pointer{X: gutterWidth + 5, Y: 0}); ok {
		t.Error("header should not locate")
	}
}

func TestSurfacePointerCapture(t *testing.T) {
	ghost := &ghostState{}
	held := false
	s := surface{ghost: ghost, held: &held}

	s.CapturePointer()
	if !held {
		t.Error("capture should set the held flag")
	}
	s.ShowGhost(nil, engine.Pointer{X: 4, Y: 7}, true)
	if !ghost.visible || !ghost.hold || ghost.at.X != 4 {
		t.Errorf("ghost after show = %+v", ghost)
	}
	s.MoveGhost(engine.Pointer{X: 9, Y: 7})
	if ghost.at.X != 9 {
		t.Errorf("ghost after move = %+v", ghost)
	}
	s.HideGhost()
	s.ReleasePointer()
	if ghost.visible || held {
		t.Error("hide and release should clear state")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{15, "15m"},
		{60, "1h"},
		{90, "1h30"},
		{105, "1h45"},
		{180, "3h"},
		{195, "3h15"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.minutes); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestSpliceOverlay(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")

	got := spliceOverlay(base, "XX\nXX", 3, 1, 10)
	want := strings.Join([]string{
		"..........",
		"...XX.....",
		"...XX.....",
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	// Clipped to the right edge.
	got = spliceOverlay(base, "YYY", 9, 0, 10)
	if !strings.HasPrefix(got, ".......YYY") {
		t.Errorf("right-edge splice = %q", strings.Split(got, "\n")[0])
	}

	// Rows outside the base are ignored.
	if got := spliceOverlay(base, "ZZ", 0, 5, 10); got != base {
		t.Errorf("out-of-range splice changed the base")
	}
}
