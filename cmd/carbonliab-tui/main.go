package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/carbonliab/internal/config"
	"github.com/rgehrsitz/carbonliab/internal/tui"
)

func main() {
	// Optional scenario file; without one the dashboard starts on the base case
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: Config file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	model := tui.NewModel(configPath)

	// Reload the dashboard whenever the scenario file is saved
	if configPath != "" {
		w, err := config.NewWatcher(configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := w.Start(ctx); err != nil {
			fmt.Printf("Warning: live reload disabled: %v\n", err)
		} else {
			defer w.Stop()
			model = model.WithWatcher(w)
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
