package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mei/taskflow/internal/app"
	"github.com/mei/taskflow/internal/db"
	"github.com/mei/taskflow/internal/model"
	"github.com/mei/taskflow/internal/session"
	"github.com/mei/taskflow/internal/ui"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			handleExport(os.Args[2:])
			return
		case "version":
			fmt.Printf("taskflow v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	if err := runTUI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `taskflow - personal task and habit tracker

Usage:
  taskflow                    Start the TUI
  taskflow export [user]      Write a plain-text activity report
  taskflow version            Show version
  taskflow help               Show this help

Export writes taskflow_<user>_export_<date>.txt to the current directory,
covering every task of that user. Without an argument it uses the last
logged-in user.

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                g/G           Go to top/bottom
                v / V         Selection mode / select all

  Actions:      a             Add new task
                enter         Complete or track
                e / o         Edit / details
                d / D         Delete / delete selection
                x             Export selection

  Reminders:    n             Toggle task reminders
                N             Toggle all reminders

  App:          s             Backup settings
                ctrl+l        Log out
                q             Quit`

	fmt.Println(help)
}

// handleExport renders the full activity report for a user without
// starting the TUI. No instance lock is taken, exporting is read-only.
func handleExport(args []string) {
	database, err := db.Open(db.DefaultDBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		stored, ok, err := database.CurrentUser()
		if err != nil || !ok || stored == "" {
			fmt.Fprintln(os.Stderr, "Usage: taskflow export <user>")
			fmt.Fprintln(os.Stderr, "No user is logged in, name one explicitly.")
			os.Exit(1)
		}
		username = stored
	}

	sess, err := session.Open(database, username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
		os.Exit(1)
	}

	ids := make([]model.ID, 0, len(sess.Tasks))
	for _, t := range sess.Tasks {
		ids = append(ids, t.ID)
	}

	now := time.Now()
	name := session.ExportFileName(username, now)
	if err := os.WriteFile(name, []byte(sess.ExportText(ids, now)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d tasks to %s\n", len(ids), name)
}

func runTUI() error {
	application, err := app.New(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	p := tea.NewProgram(
		ui.NewRootModel(application),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
