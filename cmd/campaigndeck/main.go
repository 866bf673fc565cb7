// cmd/campaigndeck/main.go
//
// This is the entry point for the campaigndeck CLI.
// It initializes the .campaigndeck folder for the current project and
// launches the TUI.

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"campaigndeck/internal/config"
	"campaigndeck/internal/tui"
)

func main() {
	mock := flag.Bool("mock", false, "resolve briefs against a bundled sample payload instead of calling the webhook")
	flag.Parse()

	// The current working directory is the "project" we're working in.
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitAppDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .campaigndeck directory: %v\n", err)
		os.Exit(1)
	}

	var opts []tui.AppOption
	if *mock {
		opts = append(opts, tui.WithSamplePayload(tui.SamplePayload()))
	}

	p := tea.NewProgram(
		tui.NewApp(cwd, opts...),
		tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
