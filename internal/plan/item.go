// Package plan defines the core domain types for rocinante.
package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrInvalidCategory  = errors.New("unknown category")
	ErrInvalidDuration  = errors.New("duration must be at least one snap step")
	ErrInvalidTimeInput = errors.New("time must be in HH:MM format")
)

// Domain errors.
var (
	ErrDuplicateID  = errors.New("item id already tracked")
	ErrItemNotFound = errors.New("item not found")
	ErrNoTarget     = errors.New("no day column under pointer")
	ErrOutOfRange   = errors.New("placement does not fit inside the day window")
)

// ConflictError reports a rejected placement and the items it overlaps.
type ConflictError struct {
	Day         int
	StartMinute int
	Duration    int
	IDs         []string // conflicting item ids, start order
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("placement %s+%dm on day %d overlaps %d item(s)",
		MinutesToTime(e.StartMinute), e.Duration, e.Day, len(e.IDs))
}

// Category classifies an itinerary item.
type Category string

const (
	CategoryTransport     Category = "transport"
	CategoryActivity      Category = "activity"
	CategorySightseeing   Category = "sightseeing"
	CategoryFood          Category = "food"
	CategoryShopping      Category = "shopping"
	CategoryAccommodation Category = "accommodation"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryTransport,
	CategoryActivity,
	CategorySightseeing,
	CategoryFood,
	CategoryShopping,
	CategoryAccommodation,
}

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryTransport, CategoryActivity, CategorySightseeing,
		CategoryFood, CategoryShopping, CategoryAccommodation:
		return true
	default:
		return false
	}
}

// defaultDurations are the quick-create durations per category.
var defaultDurations = map[Category]int{
	CategoryTransport:     60,
	CategoryActivity:      90,
	CategorySightseeing:   60,
	CategoryFood:          60,
	CategoryShopping:      45,
	CategoryAccommodation: 30,
}

// DefaultDuration returns the quick-create duration for a category.
func DefaultDuration(c Category) int {
	if d, ok := defaultDurations[c]; ok {
		return d
	}
	return 60
}

// Placement pins an item to a day and start offset. A nil placement
// means the item sits in the unscheduled pool.
type Placement struct {
	Day         int // 0-based day ordinal within the trip
	StartMinute int // minutes from midnight
}

// Metadata carries free-form item details the engine never inspects.
type Metadata struct {
	CostCents int
	Memo      string
	Location  string
}

// Item represents one activity entry in the itinerary.
type Item struct {
	ID              string
	Title           string
	Category        Category
	DurationMinutes int
	Placement       *Placement
	Meta            Metadata
	CreatedAt       time.Time
}

// New creates an unscheduled Item with validation.
// category must be one of the fixed category set.
func New(title string, category Category, durationMinutes int) (*Item, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	return &Item{
		ID:              uuid.NewString(),
		Title:           title,
		Category:        category,
		DurationMinutes: durationMinutes,
		CreatedAt:       time.Now(),
	}, nil
}

// NewQuick creates an item with the category's default duration and
// the category name as a placeholder title.
func NewQuick(category Category) (*Item, error) {
	return New(string(category), category, DefaultDuration(category))
}

// IsPlaced returns true if the item is on the grid.
func (i *Item) IsPlaced() bool {
	return i.Placement != nil
}

// EndMinute returns the exclusive end offset of a placed item.
// Returns 0 for unscheduled items.
func (i *Item) EndMinute() int {
	if i.Placement == nil {
		return 0
	}
	return i.Placement.StartMinute + i.DurationMinutes
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	if i.Placement != nil {
		p := *i.Placement
		c.Placement = &p
	}
	return &c
}

// TimeRange formats the placed interval as "HH:MM-HH:MM".
// Returns "unscheduled" for pool items.
func (i *Item) TimeRange() string {
	if i.Placement == nil {
		return "unscheduled"
	}
	return MinutesToTime(i.Placement.StartMinute) + "-" + MinutesToTime(i.EndMinute())
}

// OverlapsWith returns true if both items are placed on the same day
// with overlapping time ranges.
func (i *Item) OverlapsWith(other *Item) bool {
	if other == nil || i.Placement == nil || other.Placement == nil {
		return false
	}
	if i.Placement.Day != other.Placement.Day {
		return false
	}
	return Overlaps(i.Placement.StartMinute, i.EndMinute(),
		other.Placement.StartMinute, other.EndMinute())
}
