package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
)

// DealerCadence is the delay between the dealer's automatic draws.
const DealerCadence = time.Second

var (
	// ErrActionNotAllowed is returned when an action is not enabled in the
	// round's current phase.
	ErrActionNotAllowed = errors.New("action not allowed")

	// ErrShoeExhausted means a draw found no unseen card even after the
	// low-water rebuild check, which a full shoe never allows.
	ErrShoeExhausted = errors.New("shoe exhausted")

	// ErrRoundClosed is returned by actions on a closed round.
	ErrRoundClosed = errors.New("round closed")
)

// Round is the Blackjack state machine. It owns the shoe, both hands and the
// session history, and runs the dealer's draws as a cancellable task while
// in PhaseDealer. All methods are safe for concurrent use.
type Round struct {
	mu sync.Mutex

	shoe      *deck.Shoe
	buildShoe func() *deck.Shoe
	player    []deck.Card
	dealer    []deck.Card
	phase     Phase
	number    int
	version   int
	session   *Session

	clock        quartz.Clock
	dealerCancel context.CancelFunc
	closed       bool

	logger    *log.Logger
	observers []func(Snapshot)
}

// NewRound creates a round and deals the opening hands, leaving it in
// PhasePlayer. The RNG is required so shoes are reproducible under test.
func NewRound(rng *rand.Rand, opts ...RoundOption) *Round {
	if rng == nil {
		panic("rng is required for round creation")
	}

	cfg := &roundConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}
	if cfg.buildShoe == nil {
		cfg.buildShoe = func() *deck.Shoe { return deck.NewShoe(rng) }
	}
	if cfg.shoe == nil {
		cfg.shoe = cfg.buildShoe()
	}
	if cfg.session == nil {
		cfg.session = NewSession()
	}

	r := &Round{
		shoe:      cfg.shoe,
		buildShoe: cfg.buildShoe,
		session:   cfg.session,
		clock:     cfg.clock,
		logger:    cfg.logger.WithPrefix("round"),
		observers: cfg.observers,
	}

	r.mu.Lock()
	if err := r.dealLocked(); err != nil {
		r.logger.Error("Opening deal failed", "error", err)
	}
	r.version++
	r.mu.Unlock()

	return r
}

// Deal records the outcome of the finished round and deals fresh hands.
// Only enabled in PhaseEnd.
func (r *Round) Deal() error {
	return r.act(ActionDeal, r.dealLocked)
}

// Hit draws one card for the player. A total of 21 or more ends the round.
// Only enabled in PhasePlayer.
func (r *Round) Hit() error {
	return r.act(ActionHit, r.hitLocked)
}

// Stand ends the player's turn. If the dealer's current total already meets
// the player's the round ends at once, even when the dealer is under 17;
// otherwise the dealer starts drawing on DealerCadence.
// Only enabled in PhasePlayer.
func (r *Round) Stand() error {
	return r.act(ActionStand, r.standLocked)
}

// Do dispatches a by name
func (r *Round) Do(a Action) error {
	switch a {
	case ActionDeal:
		return r.Deal()
	case ActionHit:
		return r.Hit()
	case ActionStand:
		return r.Stand()
	default:
		return fmt.Errorf("%s: %w", a, ErrActionNotAllowed)
	}
}

// Close stops any pending dealer draws. Further actions return
// ErrRoundClosed.
func (r *Round) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopDealerLocked()
	r.closed = true
}

// Phase returns the current phase
func (r *Round) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Snapshot returns the presentation view of the round
func (r *Round) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Outcome returns the result of the current round, or NoOutcome while it is
// still being played.
func (r *Round) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomeLocked()
}

func (r *Round) act(a Action, fn func() error) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRoundClosed
	}
	if !r.phase.Allows(a) {
		phase := r.phase
		r.mu.Unlock()
		return fmt.Errorf("%s during %s: %w", a, phase, ErrActionNotAllowed)
	}

	err := fn()
	r.version++
	snap := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(snap)
	return err
}

func (r *Round) dealLocked() error {
	// resolve the outgoing round before its hands are overwritten
	previous := r.outcomeLocked()

	dealer, err := r.dealHandLocked()
	if err != nil {
		return fmt.Errorf("dealing dealer hand: %w", err)
	}
	player, err := r.dealHandLocked()
	if err != nil {
		return fmt.Errorf("dealing player hand: %w", err)
	}

	if r.number > 0 {
		r.session.Record(previous)
		r.logger.Debug("Recorded outcome", "round", r.number, "outcome", previous)
	}

	r.number++
	r.dealer = dealer
	r.player = player
	r.phase = PhasePlayer

	r.logger.Info("Dealt round",
		"round", r.number,
		"player", r.player,
		"playerScore", Score(r.player),
		"shoeRemaining", r.shoe.Remaining())
	return nil
}

// dealHandLocked draws two cards, redrawing both for as long as they bust.
func (r *Round) dealHandLocked() ([]deck.Card, error) {
	for {
		hand := make([]deck.Card, 0, 2)
		for range 2 {
			c, err := r.drawLocked()
			if err != nil {
				return nil, err
			}
			hand = append(hand, c)
		}
		if !IsBust(Score(hand)) {
			return hand, nil
		}
		r.logger.Debug("Redealing busted opening hand", "cards", hand)
	}
}

func (r *Round) hitLocked() error {
	c, err := r.drawLocked()
	if err != nil {
		return err
	}
	r.player = append(r.player, c)

	score := Score(r.player)
	r.logger.Debug("Player hit", "card", c, "score", score)
	if score >= Blackjack {
		r.finishLocked()
	}
	return nil
}

func (r *Round) standLocked() error {
	playerScore, dealerScore := Score(r.player), Score(r.dealer)
	r.logger.Debug("Player stands", "playerScore", playerScore, "dealerScore", dealerScore)

	if dealerScore >= playerScore {
		r.finishLocked()
		return nil
	}

	r.phase = PhaseDealer
	r.startDealerLocked()
	return nil
}

func (r *Round) startDealerLocked() {
	r.stopDealerLocked()

	ctx, cancel := context.WithCancel(context.Background())
	r.dealerCancel = cancel
	r.clock.TickerFunc(ctx, DealerCadence, func() error {
		r.dealerTick(ctx)
		return nil
	}, "dealer")
}

func (r *Round) stopDealerLocked() {
	if r.dealerCancel != nil {
		r.dealerCancel()
		r.dealerCancel = nil
	}
}

// dealerTick makes one dealer draw. Ticks from a cancelled task are dropped,
// so a stale tick can never touch a newer hand.
func (r *Round) dealerTick(ctx context.Context) {
	r.mu.Lock()
	if ctx.Err() != nil || r.phase != PhaseDealer {
		r.mu.Unlock()
		return
	}

	c, err := r.drawLocked()
	if err != nil {
		r.logger.Error("Dealer draw failed, ending round", "error", err)
		r.finishLocked()
	} else {
		r.dealer = append(r.dealer, c)
		dealerScore, playerScore := Score(r.dealer), Score(r.player)
		r.logger.Debug("Dealer drew", "card", c, "score", dealerScore)
		if dealerScore >= DealerStandsOn || dealerScore >= playerScore {
			r.finishLocked()
		}
	}

	r.version++
	snap := r.snapshotLocked()
	r.mu.Unlock()
	r.notify(snap)
}

func (r *Round) finishLocked() {
	r.stopDealerLocked()
	r.phase = PhaseEnd
	r.logger.Info("Round over",
		"round", r.number,
		"playerScore", Score(r.player),
		"dealerScore", Score(r.dealer),
		"outcome", r.outcomeLocked())
}

// drawLocked rebuilds the shoe when it runs low, then draws from it.
func (r *Round) drawLocked() (deck.Card, error) {
	if r.shoe.NearEmpty() {
		r.logger.Info("Rebuilding shoe", "remaining", r.shoe.Remaining())
		r.shoe = r.buildShoe()
	}

	c, ok := r.shoe.Draw()
	if !ok {
		r.logger.Error("Draw from exhausted shoe", "remaining", r.shoe.Remaining())
		return deck.Card{}, ErrShoeExhausted
	}
	return c, nil
}

func (r *Round) outcomeLocked() Outcome {
	if r.phase != PhaseEnd {
		return NoOutcome
	}
	return DetermineOutcome(Score(r.player), Score(r.dealer))
}

func (r *Round) snapshotLocked() Snapshot {
	s := Snapshot{
		Version:       r.version,
		Round:         r.number,
		Phase:         r.phase,
		Player:        append([]deck.Card(nil), r.player...),
		PlayerScore:   Score(r.player),
		Actions:       EnabledActions(r.phase),
		Outcome:       r.outcomeLocked(),
		History:       r.session.History(),
		Tally:         r.session.Tally(),
		ShoeRemaining: r.shoe.Remaining(),
	}

	if r.phase == PhasePlayer && len(r.dealer) > 0 {
		s.Dealer = []deck.Card{r.dealer[0]}
		s.DealerHidden = true
	} else {
		s.Dealer = append([]deck.Card(nil), r.dealer...)
		s.DealerScore = Score(r.dealer)
	}
	if r.closed {
		s.Actions = nil
	}
	return s
}

func (r *Round) notify(s Snapshot) {
	for _, fn := range r.observers {
		fn(s)
	}
}
