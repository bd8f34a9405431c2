package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id-prefix]",
		Short: "Remove an item",
		Long: `Remove an item by ID. A unique prefix of the ID is enough;
use 'rocinante list' to find IDs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			ctx := context.Background()

			items, err := repo.ListItems(ctx)
			if err != nil {
				return fmt.Errorf("listing items: %w", err)
			}

			var matched []string
			var title string
			for _, item := range items {
				if strings.HasPrefix(item.ID, args[0]) {
					matched = append(matched, item.ID)
					title = item.Title
				}
			}
			switch len(matched) {
			case 0:
				return fmt.Errorf("no item matches %q", args[0])
			case 1:
			default:
				return fmt.Errorf("%q matches %d items, use a longer prefix", args[0], len(matched))
			}

			if err := repo.DeleteItem(ctx, matched[0]); err != nil {
				return fmt.Errorf("removing item: %w", err)
			}
			fmt.Printf("Removed %q\n", title)
			return nil
		},
	}
}
