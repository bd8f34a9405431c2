package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/plan"
)

func (a *App) listCmd() *cobra.Command {
	var (
		day  int
		pool bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List itinerary items",
		Long: `List itinerary items, scheduled and unscheduled.

Without flags the whole trip is listed day by day, with pool items
at the end.`,
		Example: `  rocinante list
  rocinante list --day=2
  rocinante list --pool`,
		RunE: func(_ *cobra.Command, _ []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			ctx := context.Background()

			if day > 0 {
				items, err := repo.ListItemsForDay(ctx, day-1)
				if err != nil {
					return fmt.Errorf("listing items: %w", err)
				}
				printDay(a.config, day-1, items)
				return nil
			}

			items, err := repo.ListItems(ctx)
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}
			if len(items) == 0 {
				fmt.Println("The itinerary is empty.")
				return nil
			}

			byDay := make(map[int][]*plan.Item)
			var unscheduled []*plan.Item
			for _, item := range items {
				if item.IsPlaced() {
					byDay[item.Placement.Day] = append(byDay[item.Placement.Day], item)
				} else {
					unscheduled = append(unscheduled, item)
				}
			}

			if !pool {
				for d := 0; d < a.config.Trip.Days; d++ {
					if len(byDay[d]) == 0 {
						continue
					}
					printDay(a.config, d, byDay[d])
					fmt.Println()
				}
			}

			if len(unscheduled) > 0 {
				fmt.Printf("=== %s ===\n", formatHeader("Pool"))
				for _, item := range unscheduled {
					printItemRow(item)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Only this trip day (1-based)")
	cmd.Flags().BoolVar(&pool, "pool", false, "Only unscheduled items")

	return cmd
}

func printDay(cfg *config.Config, day int, items []*plan.Item) {
	fmt.Printf("=== %s ===\n", formatHeader(dayHeading(cfg, day)))
	if len(items) == 0 {
		fmt.Println("  (nothing scheduled)")
		return
	}
	for _, item := range items {
		printItemRow(item)
	}
}

func printItemRow(item *plan.Item) {
	span := item.TimeRange()
	if !item.IsPlaced() {
		span = fmt.Sprintf("(%s)", formatDuration(item.DurationMinutes))
	}

	// "  ● HH:MM-HH:MM  " plus id suffix leaves this much for the title
	maxTitle := termWidth() - 30
	if maxTitle < 20 {
		maxTitle = 20
	}
	title := item.Title
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	line := fmt.Sprintf("  %s %-13s %s", categoryDot(item.Category), span, title)
	if item.Meta.Location != "" {
		line += formatMuted(" @ " + item.Meta.Location)
	}
	if item.Meta.CostCents > 0 {
		line += formatCost(fmt.Sprintf("  %.2f", float64(item.Meta.CostCents)/100))
	}
	line += formatMuted("  " + shortID(item.ID))
	fmt.Println(line)
}

// shortID keeps the first UUID group, enough to address an item with
// 'rocinante remove'.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
