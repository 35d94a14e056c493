package main

import (
	"os"

	"github.com/lox/blackjack/internal/events"
	"github.com/lox/blackjack/internal/server"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr           string   `help:"Server address"`
	AllowedOrigins []string `help:"Allowed browser origins, * for any"`
	NatsURL        string   `name:"nats-url" help:"Publish round results to this NATS server"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	if len(c.AllowedOrigins) > 0 {
		cfg.Server.AllowedOrigins = c.AllowedOrigins
	}
	if c.NatsURL != "" {
		cfg.Server.NatsURL = c.NatsURL
	}

	logger, err := newLogger(os.Stderr, cfg.UI.LogLevel, "")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	opts := []server.Option{server.WithAllowedOrigins(cfg.Server.AllowedOrigins...)}
	if cfg.Game.Seed != 0 {
		logger.Info("Using deterministic seed", "seed", cfg.Game.Seed)
		opts = append(opts, server.WithSeed(cfg.Game.Seed))
	}

	if cfg.Server.NatsURL != "" {
		pub, closeFeed, err := events.Connect(cfg.Server.NatsURL, cfg.Server.NatsSubject, logger)
		if err != nil {
			return err
		}
		defer closeFeed()
		opts = append(opts, server.WithResults(pub.Publish))
	}

	return server.NewServer(logger, opts...).Run(ctx, cfg.Server.Addr)
}
