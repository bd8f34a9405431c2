// Package integration exercises the engine and the SQLite repository
// together: what the engine commits is what a fresh process loads.
package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/rocinante/internal/db"
	"github.com/javiermolinar/rocinante/internal/engine"
	"github.com/javiermolinar/rocinante/internal/plan"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T, dir string) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testGrid() engine.Grid {
	return engine.Grid{
		Days:           5,
		DayStartMinute: 420,  // 07:00
		DayEndMinute:   1380, // 23:00
		SnapMinutes:    15,
		PxPerMinute:    1,
	}
}

// noopSurface satisfies the gesture side-effect boundary.
type noopSurface struct{}

func (noopSurface) CapturePointer()                            {}
func (noopSurface) ReleasePointer()                            {}
func (noopSurface) ShowGhost(*plan.Item, engine.Pointer, bool) {}
func (noopSurface) MoveGhost(engine.Pointer)                   {}
func (noopSurface) HideGhost()                                 {}

// columnLocator maps x to 100px day columns and y straight to minutes.
type columnLocator struct {
	grid engine.Grid
}

func (l columnLocator) Locate(p engine.Pointer) (int, int, bool) {
	day := p.X / 100
	if p.X < 0 || day >= l.grid.Days {
		return 0, 0, false
	}
	return day, l.grid.DayStartMinute + p.Y, true
}

// newEngine wires an engine whose committed hook writes through to the
// repository, the same shape the TUI uses minus the async command.
func newEngine(t *testing.T, repo *db.SQLite) *engine.Engine {
	t.Helper()
	grid := testGrid()
	hooks := engine.Hooks{
		Committed: func(item *plan.Item) {
			if err := repo.UpsertItem(context.Background(), item.Clone()); err != nil {
				t.Errorf("persisting %q: %v", item.Title, err)
			}
		},
	}
	eng, err := engine.New(grid, noopSurface{}, columnLocator{grid: grid}, hooks)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	return eng
}

// reload opens a second engine over the same database, the way a new
// process would start.
func reload(t *testing.T, repo *db.SQLite) *engine.Engine {
	t.Helper()
	eng := newEngine(t, repo)
	items, err := repo.ListItems(context.Background())
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if err := eng.Load(items); err != nil {
		t.Fatalf("loading items: %v", err)
	}
	return eng
}

func TestPlacePersistReload(t *testing.T) {
	repo := openRepo(t, t.TempDir())
	eng := newEngine(t, repo)

	item, err := eng.Create("Alhambra", plan.CategorySightseeing, 180,
		plan.Metadata{CostCents: 1900, Location: "Granada"})
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.PlaceAt(item.ID, 2, 540); err != nil {
		t.Fatalf("PlaceAt: %v", err)
	}
	pending, err := eng.Create("flamenco", plan.CategoryActivity, 120, plan.Metadata{})
	if err != nil {
		t.Fatal(err)
	}

	eng2 := reload(t, repo)

	placed, err := eng2.Store().Get(item.ID)
	if err != nil {
		t.Fatalf("reloaded item: %v", err)
	}
	if placed.Placement == nil || placed.Placement.Day != 2 || placed.Placement.StartMinute != 540 {
		t.Errorf("reloaded placement = %+v, want day 2 at 09:00", placed.Placement)
	}
	if placed.Meta.CostCents != 1900 || placed.Meta.Location != "Granada" {
		t.Errorf("reloaded metadata = %+v", placed.Meta)
	}

	pool := eng2.Store().Pool()
	if len(pool) != 1 || pool[0].ID != pending.ID {
		t.Errorf("reloaded pool = %v, want just %q", pool, pending.Title)
	}
}

func TestDragCommitSurvivesReload(t *testing.T) {
	repo := openRepo(t, t.TempDir())
	eng := newEngine(t, repo)

	item, err := eng.Create("tapas crawl", plan.CategoryFood, 90, plan.Metadata{})
	if err != nil {
		t.Fatal(err)
	}

	// Drag from the pool onto day 1 at an unaligned minute.
	if err := eng.Press(item.ID, engine.Pointer{X: 150, Y: 100}); err != nil {
		t.Fatalf("Press: %v", err)
	}
	eng.PointerMove(engine.Pointer{X: 150, Y: 187}) // 07:00 + 187 = 10:07
	eng.Frame()
	if err := eng.PointerRelease(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	got, err := reload(t, repo).Store().Get(item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Placement == nil || got.Placement.Day != 1 || got.Placement.StartMinute != 600 {
		t.Errorf("placement = %+v, want day 1 at 10:00 (snapped)", got.Placement)
	}
}

func TestUnplaceAndResizePersist(t *testing.T) {
	repo := openRepo(t, t.TempDir())
	eng := newEngine(t, repo)

	item, err := eng.Create("market", plan.CategoryShopping, 60, plan.Metadata{})
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.PlaceAt(item.ID, 0, 600); err != nil {
		t.Fatal(err)
	}
	if err := eng.ResizeBy(item.ID, 2); err != nil {
		t.Fatalf("ResizeBy: %v", err)
	}
	if err := eng.Unplace(item.ID); err != nil {
		t.Fatalf("Unplace: %v", err)
	}

	got, err := reload(t, repo).Store().Get(item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Placement != nil {
		t.Errorf("placement = %+v, want pool", got.Placement)
	}
	if got.DurationMinutes != 90 {
		t.Errorf("duration = %d, want 90", got.DurationMinutes)
	}
}

func TestDeleteDoesNotComeBack(t *testing.T) {
	repo := openRepo(t, t.TempDir())
	eng := newEngine(t, repo)
	ctx := context.Background()

	item, err := eng.Create("doomed", plan.CategoryActivity, 60, plan.Metadata{})
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Delete(item.ID); err != nil {
		t.Fatal(err)
	}
	// The TUI issues the repository delete alongside the engine delete.
	if err := repo.DeleteItem(ctx, item.ID); err != nil {
		t.Fatal(err)
	}

	if n := reload(t, repo).Store().Len(); n != 0 {
		t.Errorf("reloaded %d item(s) after delete", n)
	}
}

// A placement persisted under an older, wider day window must come
// back as a pool item instead of failing the whole load.
func TestStalePlacementFallsBackToPool(t *testing.T) {
	repo := openRepo(t, t.TempDir())
	ctx := context.Background()

	early, err := plan.New("sunrise hike", plan.CategoryActivity, 120)
	if err != nil {
		t.Fatal(err)
	}
	early.Placement = &plan.Placement{Day: 0, StartMinute: 300} // 05:00, outside 07:00 start
	if err := repo.UpsertItem(ctx, early); err != nil {
		t.Fatal(err)
	}

	eng := reload(t, repo)

	got, err := eng.Store().Get(early.ID)
	if err != nil {
		t.Fatalf("stale item dropped entirely: %v", err)
	}
	if got.Placement != nil {
		t.Errorf("placement = %+v, want pool fallback", got.Placement)
	}
}

// The repository re-checks overlaps itself, guarding against writers
// that bypass the engine.
func TestStorageLayerConflictGuard(t *testing.T) {
	repo := openRepo(t, t.TempDir())
	eng := newEngine(t, repo)
	ctx := context.Background()

	item, err := eng.Create("lunch", plan.CategoryFood, 60, plan.Metadata{})
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.PlaceAt(item.ID, 1, 780); err != nil {
		t.Fatal(err)
	}

	intruder, err := plan.New("late lunch", plan.CategoryFood, 60)
	if err != nil {
		t.Fatal(err)
	}
	intruder.Placement = &plan.Placement{Day: 1, StartMinute: 810}

	var conflict *plan.ConflictError
	if err := repo.UpsertItem(ctx, intruder); !errors.As(err, &conflict) {
		t.Fatalf("error = %v, want ConflictError", err)
	}
}
