package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  rocinante config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Trip.Name = promptValue(reader, "Trip name", cfg.Trip.Name)
	cfg.Trip.StartDate = promptStartDate(reader, cfg.Trip.StartDate)
	cfg.Trip.Days = promptInt(reader, "Number of days", cfg.Trip.Days)
	cfg.Trip.DayStart = promptValue(reader, "Day start", cfg.Trip.DayStart)
	cfg.Trip.DayEnd = promptValue(reader, "Day end", cfg.Trip.DayEnd)
	cfg.Trip.SnapMinutes = promptInt(reader, "Snap minutes (10 or 15)", cfg.Trip.SnapMinutes)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[trip]")
	fmt.Printf("  name         = %s\n", cfg.Trip.Name)
	if cfg.Trip.StartDate != "" {
		fmt.Printf("  start_date   = %s\n", cfg.Trip.StartDate)
	}
	fmt.Printf("  days         = %d\n", cfg.Trip.Days)
	fmt.Printf("  day_start    = %s\n", cfg.Trip.DayStart)
	fmt.Printf("  day_end      = %s\n", cfg.Trip.DayEnd)
	fmt.Printf("  snap_minutes = %d\n", cfg.Trip.SnapMinutes)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path      = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme        = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Printf("  Not a number: %q\n", value)
	}
}

// promptStartDate accepts relative forms like "saturday" or
// "next-friday" and stores the resolved YYYY-MM-DD.
func promptStartDate(reader *bufio.Reader, current string) string {
	label := "Start date (YYYY-MM-DD, tomorrow, next-friday, ...)"
	for {
		value := promptValue(reader, label, current)
		if value == "" || value == current {
			return current
		}
		date, err := dateutil.ParseStartDate(value, time.Now())
		if err != nil {
			fmt.Printf("  Invalid date %q\n", value)
			continue
		}
		return date.Format("2006-01-02")
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
