package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
)

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

type roundConfig struct {
	clock     quartz.Clock
	logger    *log.Logger
	shoe      *deck.Shoe
	buildShoe func() *deck.Shoe
	session   *Session
	observers []func(Snapshot)
}

// WithClock sets the clock driving the dealer cadence. Defaults to the real
// clock; tests pass quartz.NewMock.
func WithClock(clock quartz.Clock) RoundOption {
	return func(c *roundConfig) {
		c.clock = clock
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger *log.Logger) RoundOption {
	return func(c *roundConfig) {
		c.logger = logger
	}
}

// WithShoe sets the shoe the first deal draws from. Once it runs low it is
// replaced by a regular shoe like any other.
func WithShoe(shoe *deck.Shoe) RoundOption {
	return func(c *roundConfig) {
		c.shoe = shoe
	}
}

// WithShoeBuilder overrides how replacement shoes are built.
func WithShoeBuilder(build func() *deck.Shoe) RoundOption {
	return func(c *roundConfig) {
		c.buildShoe = build
	}
}

// WithSession continues an existing session history.
func WithSession(session *Session) RoundOption {
	return func(c *roundConfig) {
		c.session = session
	}
}

// WithObserver registers fn to receive a Snapshot after every state change,
// including dealer draws made on the clock's goroutine. fn is called without
// the round lock held.
func WithObserver(fn func(Snapshot)) RoundOption {
	return func(c *roundConfig) {
		c.observers = append(c.observers, fn)
	}
}

func defaultLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}
