// Package events publishes finished rounds to a NATS subject so other
// services can follow play without holding a WebSocket open.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/nats-io/nats.go"
)

// DefaultSubject is the subject results are published on
const DefaultSubject = "blackjack.results"

// Result is the message published when a round ends
type Result struct {
	Session     string       `json:"session"`
	Round       int          `json:"round"`
	Outcome     game.Outcome `json:"outcome"`
	Player      []deck.Card  `json:"player"`
	PlayerScore int          `json:"playerScore"`
	Dealer      []deck.Card  `json:"dealer"`
	DealerScore int          `json:"dealerScore"`
	Tally       game.Tally   `json:"tally"`
	Timestamp   time.Time    `json:"timestamp"`
}

// NewResult builds a result from the snapshot of a finished round
func NewResult(session string, s game.Snapshot) Result {
	return Result{
		Session:     session,
		Round:       s.Round,
		Outcome:     s.Outcome,
		Player:      s.Player,
		PlayerScore: s.PlayerScore,
		Dealer:      s.Dealer,
		DealerScore: s.DealerScore,
		Tally:       s.Tally,
		Timestamp:   time.Now(),
	}
}

// Conn is the part of *nats.Conn the publisher needs
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher sends results to a subject
type Publisher struct {
	conn    Conn
	subject string
	logger  *log.Logger
}

// NewPublisher creates a publisher on an existing connection
func NewPublisher(conn Conn, subject string, logger *log.Logger) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Publisher{
		conn:    conn,
		subject: subject,
		logger:  logger.WithPrefix("events"),
	}
}

// Connect dials the broker at url. The returned close func drains the
// connection.
func Connect(url, subject string, logger *log.Logger) (*Publisher, func(), error) {
	nc, err := nats.Connect(url,
		nats.Name("blackjack-server"),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(5),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", url, err)
	}

	p := NewPublisher(nc, subject, logger)
	p.logger.Info("Publishing round results", "url", url, "subject", p.subject)

	closeFn := func() {
		if err := nc.Drain(); err != nil {
			p.logger.Warn("Failed to drain connection", "error", err)
		}
	}
	return p, closeFn, nil
}

// Subject returns the subject results are published on
func (p *Publisher) Subject() string {
	return p.subject
}

// Publish sends the result of a finished round. Snapshots of rounds still in
// play are ignored. Failures are logged; the game carries on without the
// feed.
func (p *Publisher) Publish(session string, s game.Snapshot) {
	if s.Phase != game.PhaseEnd {
		return
	}

	data, err := json.Marshal(NewResult(session, s))
	if err != nil {
		p.logger.Error("Failed to encode result", "session", session, "error", err)
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		p.logger.Error("Failed to publish result", "session", session, "error", err)
		return
	}
	p.logger.Debug("Published result", "session", session, "round", s.Round, "outcome", s.Outcome)
}
