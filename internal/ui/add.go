package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/plan"
)

func (a *App) addCmd() *cobra.Command {
	var (
		category string
		duration int
		day      int
		start    string
		cost     float64
		memo     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an itinerary item",
		Long: `Add a new item to the itinerary.

Without --day and --start the item goes to the unscheduled pool,
ready to be dragged onto the timeline.

Example:
  rocinante add "Alhambra tour" --category=sightseeing --duration=180 --day=2 --start=10:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if duration == 0 {
				duration = plan.DefaultDuration(plan.Category(category))
			}
			item, err := plan.New(args[0], plan.Category(category), duration)
			if err != nil {
				return err
			}
			item.Meta = plan.Metadata{
				CostCents: int(cost * 100),
				Memo:      memo,
				Location:  location,
			}

			if day > 0 || start != "" {
				if day <= 0 || start == "" {
					return fmt.Errorf("--day and --start must be given together")
				}
				minute := plan.TimeToMinutes(start)
				if minute < 0 {
					return plan.ErrInvalidTimeInput
				}
				item.Placement = &plan.Placement{Day: day - 1, StartMinute: minute}
			}

			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			if err := repo.UpsertItem(context.Background(), item); err != nil {
				return fmt.Errorf("creating item: %w", err)
			}

			if item.IsPlaced() {
				fmt.Printf("Added %q [%s] day %d %s\n",
					item.Title, item.Category, item.Placement.Day+1, item.TimeRange())
			} else {
				fmt.Printf("Added %q [%s] to the pool (%s)\n",
					item.Title, item.Category, formatDuration(item.DurationMinutes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "activity", "Category: transport, activity, sightseeing, food, shopping or accommodation")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (default: the category's typical length)")
	cmd.Flags().IntVar(&day, "day", 0, "Trip day to schedule on (1-based)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Estimated cost")
	cmd.Flags().StringVar(&memo, "memo", "", "Free-form note")
	cmd.Flags().StringVar(&location, "location", "", "Place name or address")

	return cmd
}
