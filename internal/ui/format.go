package ui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/plan"
)

// DayStats holds aggregated totals for one trip day.
type DayStats struct {
	MinutesByCategory map[plan.Category]int
	ScheduledMinutes  int
	CostCents         int
	Items             int
}

// Accumulate folds one placed item into the totals.
func (s *DayStats) Accumulate(item *plan.Item) {
	if s.MinutesByCategory == nil {
		s.MinutesByCategory = make(map[plan.Category]int)
	}
	s.MinutesByCategory[item.Category] += item.DurationMinutes
	s.ScheduledMinutes += item.DurationMinutes
	s.CostCents += item.Meta.CostCents
	s.Items++
}

// FreeMinutes returns the unscheduled time within the day window.
func (s DayStats) FreeMinutes(cfg *config.Config) int {
	window := plan.TimeToMinutes(cfg.Trip.DayEnd) - plan.TimeToMinutes(cfg.Trip.DayStart)
	free := window - s.ScheduledMinutes
	if free < 0 {
		return 0
	}
	return free
}

// PrintDayStats prints the totals block under a day listing.
func PrintDayStats(s DayStats, cfg *config.Config) {
	fmt.Printf("%s  %s scheduled · %s free · %d item(s)\n",
		formatHeader("Totals:"),
		formatStats(formatDuration(s.ScheduledMinutes)),
		formatStats(formatDuration(s.FreeMinutes(cfg))),
		s.Items,
	)
	if s.CostCents > 0 {
		fmt.Printf("%s    %s\n", formatHeader("Cost:"), formatCost(fmt.Sprintf("%.2f", float64(s.CostCents)/100)))
	}

	for _, c := range plan.Categories {
		minutes := s.MinutesByCategory[c]
		if minutes == 0 {
			continue
		}
		fmt.Printf("  %s %-13s %s %s\n",
			categoryDot(c), c, usageBar(minutes, s.ScheduledMinutes, 20), formatDuration(minutes))
	}
}

// usageBar renders a proportional bar for a category's share.
func usageBar(part, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := (part * width) / total
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// dayHeading labels a day with its calendar date when configured.
func dayHeading(cfg *config.Config, day int) string {
	if d, ok := cfg.Trip.Date(day); ok {
		return fmt.Sprintf("Day %d · %s", day+1, dateutil.DayLabel(d))
	}
	return fmt.Sprintf("Day %d", day+1)
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
