package plan

import "context"

// Repository defines the storage interface for itinerary items.
// The engine treats persistence as fire-and-forget: commits apply
// locally first and the repository is updated after the fact.
type Repository interface {
	// UpsertItem inserts or replaces an item by ID.
	UpsertItem(ctx context.Context, item *Item) error

	// GetItem retrieves an item by ID.
	// Returns ErrItemNotFound if no such item exists.
	GetItem(ctx context.Context, id string) (*Item, error)

	// DeleteItem removes an item by ID. Deleting a missing item is not
	// an error.
	DeleteItem(ctx context.Context, id string) error

	// ListItems returns every item, placed and unscheduled, ordered by
	// day, start minute and ID.
	ListItems(ctx context.Context) ([]*Item, error)

	// ListItemsForDay returns the placed items for one day ordered by
	// start minute, ties broken by ID.
	ListItemsForDay(ctx context.Context, day int) ([]*Item, error)

	// Close releases any resources held by the repository.
	Close() error
}
