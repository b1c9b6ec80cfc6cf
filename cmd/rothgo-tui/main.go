package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rothgo/internal/config"
	"github.com/rgehrsitz/rothgo/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rothgo-tui <scenario-file> [tax-parameters-file]")
		os.Exit(1)
	}
	scenarioPath := os.Args[1]

	if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
		fmt.Printf("Error: Scenario file not found: %s\n", scenarioPath)
		os.Exit(1)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	taxParamsPath := settings.TaxParametersFile
	if len(os.Args) > 2 {
		taxParamsPath = os.Args[2]
	}

	p := tea.NewProgram(
		tui.NewModel(scenarioPath, taxParamsPath),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
