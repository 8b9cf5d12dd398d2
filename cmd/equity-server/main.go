package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/config"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/server"
)

type CLI struct {
	Config string `short:"c" help:"Path to trainer profile (HCL)"`
	Listen string `short:"l" help:"Listen address (overrides config)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	cfg := config.Default()
	if cli.Config != "" {
		var err error
		cfg, err = config.Load(cli.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			ctx.Exit(1)
		}
	}

	addr := cfg.Server.Listen
	if cli.Listen != "" {
		addr = cli.Listen
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: parseLevel(cfg.Server.LogLevel),
	})

	srv := server.New(addr, cfg.Simulation, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("Server failed", "error", err)
	}
}

func parseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
