package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/plan"
	"github.com/javiermolinar/rocinante/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   plan.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and
// config. A nil repo is opened lazily from the configured path.
func NewApp(repo plan.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "rocinante",
		Short: "A terminal itinerary planner for trips",
		Long: `Rocinante is a terminal planner for multi-day trips.

It lays your days out as a timeline grid where activities, meals,
transport and sights can be dragged, resized and rearranged without
ever double-booking a time slot.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to rocinante-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.summaryCmd())
	a.root.AddCommand(a.removeCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("rocinante %s (commit: %s)\n", Version, Commit)
		},
	}
}

// openRepo returns the app's repository, opening the configured
// database on first use.
func (a *App) openRepo() (plan.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	repo, err := tui.OpenRepo(a.config.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	a.repo = repo
	return repo, nil
}

// Close releases the repository if this app opened one.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
