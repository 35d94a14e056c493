// Package game implements single-player Blackjack against an automated dealer.
//
// The main type is Round, a small state machine that owns the shoe, the
// player and dealer hands and the session history:
//
//	PLAYER --hit (score >= 21)--> END
//	PLAYER --stand (dealer >= player)--> END
//	PLAYER --stand (dealer < player)--> DEALER --tick...--> END
//	END --deal--> PLAYER
//
// # Basic Usage
//
//	r := game.NewRound(randutil.New(seed), game.WithLogger(logger))
//	defer r.Close()
//
//	_ = r.Hit()
//	_ = r.Stand() // dealer now draws once per DealerCadence
//
//	// later, once r.Phase() == game.PhaseEnd
//	_ = r.Deal()
//
// Actions that are not enabled in the current phase return
// ErrActionNotAllowed and leave the round untouched.
//
// # Rules
//
// The rules are fixed: Aces always count 11, the
// dealer draws until 17 or until matching the player's total, and a Stand
// ends the round immediately whenever the dealer's two-card total already
// meets the player's. See Score and DetermineOutcome.
//
// # Deterministic Testing
//
// Inject a quartz mock clock and a stacked shoe:
//
//	clock := quartz.NewMock(t)
//	shoe := deck.NewShoeFromCards(deck.MustParseCards("5s 5h 5d 5c"), rng)
//	r := game.NewRound(rng, game.WithClock(clock), game.WithShoe(shoe))
//	clock.Advance(game.DealerCadence).MustWait(ctx)
package game
