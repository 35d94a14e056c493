package main

import (
	"fmt"
	"os"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the interactive terminal game
type PlayCmd struct {
	Theme   string `help:"Colour theme (default, dark, plain)"`
	LogFile string `help:"File to write logs to"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	if c.Theme != "" {
		cfg.UI.Theme = c.Theme
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger, err := newLogger(logFile, cfg.UI.LogLevel, "blackjack")
	if err != nil {
		return err
	}

	seed := randutil.Resolve(cfg.Game.Seed)
	logger.Info("Starting game", "seed", seed, "theme", cfg.UI.Theme)

	ctx, cancel := signalContext(logger)
	defer cancel()

	model := tui.New(logger, cfg.UI.Theme, os.Stdout)
	round := game.NewRound(randutil.New(seed),
		game.WithLogger(logger),
		game.WithObserver(model.Observer()),
	)
	defer round.Close()
	model.Attach(round)

	if err := model.Run(ctx); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	snap := round.Snapshot()
	logger.Info("Session finished",
		"rounds", snap.Tally.Total(),
		"wins", snap.Tally.Wins,
		"losses", snap.Tally.Losses,
		"draws", snap.Tally.Draws)
	return nil
}
