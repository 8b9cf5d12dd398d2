package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/config"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/tui"
)

type CLI struct {
	Config  string `short:"c" help:"Path to trainer profile (HCL)"`
	Seed    int64  `help:"Random seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	cfg := config.Default()
	if cli.Config != "" {
		var err error
		cfg, err = config.Load(cli.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			ctx.Exit(1)
		}
	}

	seed := cli.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	model := tui.New(cfg.Simulation, seed, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running trainer: %v\n", err)
		ctx.Exit(1)
	}
}
