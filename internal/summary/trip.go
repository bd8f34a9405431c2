// Package summary aggregates itinerary statistics across a trip.
package summary

import (
	"github.com/javiermolinar/rocinante/internal/plan"
)

// DayTotals holds aggregated totals for one trip day.
type DayTotals struct {
	Day              int
	ScheduledMinutes int
	CostCents        int
	Items            int
}

// TripSummary holds trip-wide totals plus a per-day breakdown.
type TripSummary struct {
	Days              []DayTotals
	MinutesByCategory map[plan.Category]int
	ScheduledMinutes  int
	CostCents         int
	Placed            int
	Pending           int // pool items not yet on the grid
}

// Summarize folds the items into per-day and trip-wide totals.
// days is the number of trip days; placements beyond it are ignored.
func Summarize(days int, items []*plan.Item) *TripSummary {
	s := &TripSummary{
		Days:              make([]DayTotals, days),
		MinutesByCategory: make(map[plan.Category]int),
	}
	for d := range s.Days {
		s.Days[d].Day = d
	}

	for _, item := range items {
		if !item.IsPlaced() {
			s.Pending++
			continue
		}
		day := item.Placement.Day
		if day < 0 || day >= days {
			continue
		}

		s.Days[day].ScheduledMinutes += item.DurationMinutes
		s.Days[day].CostCents += item.Meta.CostCents
		s.Days[day].Items++

		s.MinutesByCategory[item.Category] += item.DurationMinutes
		s.ScheduledMinutes += item.DurationMinutes
		s.CostCents += item.Meta.CostCents
		s.Placed++
	}
	return s
}

// BusiestDay returns the day with the most scheduled minutes.
// The second return is false when nothing is scheduled.
func (s *TripSummary) BusiestDay() (int, bool) {
	best, bestMinutes := 0, 0
	for _, d := range s.Days {
		if d.ScheduledMinutes > bestMinutes {
			best, bestMinutes = d.Day, d.ScheduledMinutes
		}
	}
	return best, bestMinutes > 0
}

// EmptyDays returns the days with nothing scheduled, in order.
func (s *TripSummary) EmptyDays() []int {
	var days []int
	for _, d := range s.Days {
		if d.Items == 0 {
			days = append(days, d.Day)
		}
	}
	return days
}
