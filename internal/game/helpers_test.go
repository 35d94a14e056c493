package game

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// stackedShoe returns a shoe holding n copies of each listed card
func stackedShoe(cards string, n int) *deck.Shoe {
	var all []deck.Card
	for range n {
		all = append(all, deck.MustParseCards(cards)...)
	}
	return deck.NewShoeFromCards(all, randutil.New(1))
}

// setHands replaces both hands of a round in the player phase
func setHands(t *testing.T, r *Round, player, dealer string) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.player = deck.MustParseCards(player)
	r.dealer = deck.MustParseCards(dealer)
}

func hand(s string) []deck.Card {
	return deck.MustParseCards(s)
}

// recorder collects every snapshot a round publishes
type recorder struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (rec *recorder) observe(s Snapshot) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.snaps = append(rec.snaps, s)
}

func (rec *recorder) phases() []Phase {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]Phase, len(rec.snaps))
	for i, s := range rec.snaps {
		out[i] = s.Phase
	}
	return out
}

func (rec *recorder) phaseString() string {
	var parts []string
	for _, p := range rec.phases() {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ",")
}

func advance(t *testing.T, clock *quartz.Mock, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(d).MustWait(ctx)
}
