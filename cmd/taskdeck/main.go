// cmd/taskdeck/main.go
//
// This is the entry point for the taskdeck CLI.
// When you run `taskdeck` from any directory, this is what executes.
//
// Flow:
// 1. Ensure the .taskdeck directory and data files exist (seeding users.csv)
// 2. Build the stores and the task service over those files
// 3. Launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/taskdeck/internal/config"
	"github.com/kingrea/taskdeck/internal/logbook"
	"github.com/kingrea/taskdeck/internal/store"
	"github.com/kingrea/taskdeck/internal/tracker"
	"github.com/kingrea/taskdeck/internal/tui"
)

func main() {
	// The current working directory is the "project" whose tasks we manage
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.InitDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .taskdeck directory: %v\n", err)
		os.Exit(1)
	}

	book, err := logbook.Open(cfg.LogsDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session log: %v\n", err)
		os.Exit(1)
	}
	book.Info("session opened")

	users := store.NewUserStore(cfg.UsersPath())
	svc := tracker.NewService(
		store.NewTaskStore(cfg.TasksPath(), users),
		store.NewLogStore(cfg.LogsPath()),
		users,
	)

	// tea.NewProgram creates a new bubbletea application
	p := tea.NewProgram(
		tui.NewApp(svc, book),
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
	)

	// Run blocks until the user quits
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	book.Info("session closed")
}
