// Package engine implements the interactive scheduling timeline:
// the quantized day grid, the item store with conflict detection, and
// the drag and resize gesture machines.
package engine

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/javiermolinar/rocinante/internal/plan"
)

// Grid configuration errors.
var (
	ErrEmptyWindow   = errors.New("day window start must be before end")
	ErrBadSnap       = errors.New("snap granularity must divide 60")
	ErrNoDays        = errors.New("trip must have at least one day")
	ErrUnknownDay    = errors.New("day index outside the trip")
	ErrNonPositivePx = errors.New("pixels per minute must be positive")
)

// Grid describes the trip's day timelines: every day shares the same
// bounded minute window, snap granularity and render scale.
type Grid struct {
	Days           int     // number of days in the trip
	DayStartMinute int     // e.g. 420 (07:00)
	DayEndMinute   int     // e.g. 1380 (23:00)
	SnapMinutes    int     // e.g. 10 or 15
	PxPerMinute    float64 // linear render scale
}

// Validate checks the grid invariants.
func (g Grid) Validate() error {
	if g.Days <= 0 {
		return ErrNoDays
	}
	if g.DayStartMinute < 0 || g.DayEndMinute > 24*60 || g.DayStartMinute >= g.DayEndMinute {
		return fmt.Errorf("%w: %s-%s", ErrEmptyWindow,
			plan.MinutesToTime(g.DayStartMinute), plan.MinutesToTime(g.DayEndMinute))
	}
	if g.SnapMinutes <= 0 || 60%g.SnapMinutes != 0 {
		return fmt.Errorf("%w: got %d", ErrBadSnap, g.SnapMinutes)
	}
	if g.PxPerMinute <= 0 {
		return ErrNonPositivePx
	}
	return nil
}

// WindowMinutes returns the visible minutes per day.
func (g Grid) WindowMinutes() int {
	return g.DayEndMinute - g.DayStartMinute
}

// ValidDay returns true if day is inside the trip.
func (g Grid) ValidDay(day int) bool {
	return day >= 0 && day < g.Days
}

// Quantize snaps a raw minute offset to the nearest multiple of the
// snap granularity, rounding half up. Results are clamped so that the
// snapped start always stays representable inside the window:
// below-window values clamp to DayStartMinute, values at or past the
// window end clamp to DayEndMinute minus one granularity step.
func (g Grid) Quantize(rawMinute int) int {
	steps := math.Floor(float64(rawMinute-g.DayStartMinute)/float64(g.SnapMinutes) + 0.5)
	m := g.DayStartMinute + int(steps)*g.SnapMinutes

	if m < g.DayStartMinute {
		return g.DayStartMinute
	}
	if m >= g.DayEndMinute {
		return g.DayEndMinute - g.SnapMinutes
	}
	return m
}

// QuantizeDuration snaps a raw duration to the nearest multiple of the
// granularity, flooring at one snap step.
func (g Grid) QuantizeDuration(rawMinutes int) int {
	steps := math.Floor(float64(rawMinutes)/float64(g.SnapMinutes) + 0.5)
	d := int(steps) * g.SnapMinutes
	if d < g.SnapMinutes {
		return g.SnapMinutes
	}
	return d
}

// Aligned returns true if the minute offset sits on a snap boundary
// relative to the window start.
func (g Grid) Aligned(minute int) bool {
	return (minute-g.DayStartMinute)%g.SnapMinutes == 0
}

// MinuteToOffset converts a minute offset within the day window to a
// pixel offset from the top of the day column.
func (g Grid) MinuteToOffset(minute int) int {
	return int(math.Round(float64(minute-g.DayStartMinute) * g.PxPerMinute))
}

// OffsetToMinute converts a pixel offset back to a snapped minute
// offset. Inverse of MinuteToOffset up to quantization.
func (g Grid) OffsetToMinute(px int) int {
	raw := g.DayStartMinute + int(math.Round(float64(px)/g.PxPerMinute))
	return g.Quantize(raw)
}

// Fits returns true if an interval starting at startMinute with the
// given duration stays inside the day window.
func (g Grid) Fits(startMinute, durationMinutes int) bool {
	return startMinute >= g.DayStartMinute &&
		startMinute+durationMinutes <= g.DayEndMinute
}

// HourRow is one labeled hour boundary of a day column.
type HourRow struct {
	Minute int    // minutes from midnight
	Label  string // "HH:MM"
	Offset int    // pixel offset within the column
}

// HourRows yields the labeled hour boundaries of a day, top to bottom.
// The sequence is derived from the config on each call and never
// stored; it is finite and safe to range over repeatedly.
func (g Grid) HourRows() iter.Seq[HourRow] {
	return func(yield func(HourRow) bool) {
		first := g.DayStartMinute
		if rem := first % 60; rem != 0 {
			first += 60 - rem
		}
		for m := first; m <= g.DayEndMinute; m += 60 {
			row := HourRow{
				Minute: m,
				Label:  plan.MinutesToTime(m),
				Offset: g.MinuteToOffset(m),
			}
			if !yield(row) {
				return
			}
		}
	}
}
