package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/engine"
	"github.com/javiermolinar/rocinante/internal/plan"
	"github.com/javiermolinar/rocinante/internal/scheduler"
)

func (a *App) showCmd() *cobra.Command {
	var day int
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one day's timeline with totals",
		Long: `Display a trip day's schedule with per-category totals,
free time within the day window and the estimated cost.`,
		Example: `  rocinante show
  rocinante show --day=3`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if day < 1 || day > a.config.Trip.Days {
				return fmt.Errorf("day must be between 1 and %d", a.config.Trip.Days)
			}

			repo, err := a.openRepo()
			if err != nil {
				return err
			}

			items, err := repo.ListItemsForDay(context.Background(), day-1)
			if err != nil {
				return fmt.Errorf("fetching items: %w", err)
			}

			fmt.Printf("=== %s ===\n\n", formatHeader(dayHeading(a.config, day-1)))

			if len(items) == 0 {
				fmt.Println("Nothing scheduled for this day.")
				return nil
			}

			var stats DayStats
			for _, item := range items {
				printItemRow(item)
				stats.Accumulate(item)
			}

			fmt.Println()
			PrintDayStats(stats, a.config)
			printFreeSpans(a.config, day-1, items)
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 1, "Trip day to show (1-based)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printFreeSpans lists the day's remaining gaps.
func printFreeSpans(cfg *config.Config, day int, items []*plan.Item) {
	grid := engine.Grid{
		Days:           cfg.Trip.Days,
		DayStartMinute: plan.TimeToMinutes(cfg.Trip.DayStart),
		DayEndMinute:   plan.TimeToMinutes(cfg.Trip.DayEnd),
		SnapMinutes:    cfg.Trip.SnapMinutes,
		PxPerMinute:    1,
	}
	if grid.Validate() != nil {
		return
	}

	store := engine.NewStore(grid)
	for _, item := range items {
		// Items outside the current config's window are skipped here,
		// the same fallback the TUI load path applies.
		if store.Add(item.Clone()) != nil {
			continue
		}
	}

	spans := scheduler.New(store).FreeSpans(day)
	if len(spans) == 0 {
		return
	}

	parts := make([]string, 0, len(spans))
	for _, sp := range spans {
		parts = append(parts, fmt.Sprintf("%s-%s",
			plan.MinutesToTime(sp.StartMinute), plan.MinutesToTime(sp.EndMinute)))
	}
	fmt.Printf("%s    %s\n", formatHeader("Free:"), formatMuted(strings.Join(parts, ", ")))
}
