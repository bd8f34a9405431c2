package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/plan"
	"github.com/javiermolinar/rocinante/internal/summary"
)

func (a *App) summaryCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show trip-wide totals",
		Long: `Aggregate the whole trip: scheduled time and cost per day,
category breakdown, the busiest day and days still empty.`,
		Example: `  rocinante summary`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			items, err := repo.ListItems(context.Background())
			if err != nil {
				return fmt.Errorf("fetching items: %w", err)
			}

			s := summary.Summarize(a.config.Trip.Days, items)
			printTripSummary(a, s)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func printTripSummary(a *App, s *summary.TripSummary) {
	name := a.config.Trip.Name
	if name == "" {
		name = "Trip"
	}
	fmt.Printf("=== %s ===\n\n", formatHeader(name))

	window := plan.TimeToMinutes(a.config.Trip.DayEnd) - plan.TimeToMinutes(a.config.Trip.DayStart)
	for _, d := range s.Days {
		bar := usageBar(d.ScheduledMinutes, window, 20)
		line := fmt.Sprintf("%-28s %s %6s  %d item(s)",
			dayHeading(a.config, d.Day), bar, formatDuration(d.ScheduledMinutes), d.Items)
		if d.Items == 0 {
			fmt.Println(formatMuted(line))
		} else {
			fmt.Println(line)
		}
	}

	fmt.Println()
	fmt.Printf("%s %s scheduled over %d day(s), %d placed, %d in the pool\n",
		formatHeader("Total:"), formatStats(formatDuration(s.ScheduledMinutes)),
		a.config.Trip.Days, s.Placed, s.Pending)
	if s.CostCents > 0 {
		fmt.Printf("%s  %s\n", formatHeader("Cost:"),
			formatCost(fmt.Sprintf("%.2f", float64(s.CostCents)/100)))
	}
	if day, ok := s.BusiestDay(); ok {
		fmt.Printf("%s %s\n", formatHeader("Busiest:"), dayHeading(a.config, day))
	}
	if empty := s.EmptyDays(); len(empty) > 0 {
		labels := make([]string, 0, len(empty))
		for _, day := range empty {
			labels = append(labels, strconv.Itoa(day+1))
		}
		fmt.Printf("%s %s\n", formatHeader("Empty:"), formatMuted("day "+strings.Join(labels, ", ")))
	}

	if s.ScheduledMinutes == 0 {
		return
	}
	fmt.Println()
	for _, c := range plan.Categories {
		minutes := s.MinutesByCategory[c]
		if minutes == 0 {
			continue
		}
		fmt.Printf("  %s %-13s %s %s\n",
			categoryDot(c), c, usageBar(minutes, s.ScheduledMinutes, 20), formatDuration(minutes))
	}
}
