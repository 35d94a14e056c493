package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, opts ...game.RoundOption) (*Model, *game.Round, *quartz.Mock) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
	clock := quartz.NewMock(t)

	m := New(logger, "plain", io.Discard)
	opts = append([]game.RoundOption{game.WithClock(clock), game.WithObserver(m.Observer())}, opts...)
	r := game.NewRound(randutil.New(7), opts...)
	t.Cleanup(r.Close)
	m.Attach(r)
	return m, r, clock
}

// drain feeds every queued observer snapshot through Update
func drain(m *Model) {
	for {
		select {
		case s := <-m.updates:
			m.Update(snapshotMsg(s))
		default:
			return
		}
	}
}

func TestInitialView(t *testing.T) {
	m, r, _ := newTestModel(t)

	snap := m.Snapshot()
	assert.Equal(t, game.PhasePlayer, snap.Phase)
	assert.Equal(t, r.Snapshot(), snap)

	view := m.View()
	assert.Contains(t, view, "Blackjack")
	assert.Contains(t, view, "Dealer")
	assert.Contains(t, view, snap.Dealer[0].String())
	assert.Contains(t, view, "??", "hole card is hidden while the player acts")
	assert.Contains(t, view, "Hit or stand?")
	for _, c := range snap.Player {
		assert.Contains(t, view, c.String())
	}
}

func TestKeysDriveRound(t *testing.T) {
	m, r, _ := newTestModel(t, game.WithShoe(deck.NewShoeFromCards(deck.MustParseCards(
		"Ks Kh Kd Kc Qs Qh Qd Qc Js Jh Jd Jc"), randutil.New(1))))

	// every opening hand is 20 against 20, so standing ends the round
	m.Update(keyPress("s"))
	require.Equal(t, game.PhaseEnd, r.Phase())
	assert.Equal(t, game.PhaseEnd, m.Snapshot().Phase)
	assert.Contains(t, m.View(), "Push")
	assert.Empty(t, m.LastError())

	m.Update(keyPress("h"))
	assert.Equal(t, "Can't hit right now", m.LastError())
	assert.Equal(t, game.PhaseEnd, r.Phase())

	m.Update(keyPress("d"))
	assert.Empty(t, m.LastError())
	snap := m.Snapshot()
	assert.Equal(t, game.PhasePlayer, snap.Phase)
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, "D", snap.HistorySymbols())
	assert.Contains(t, m.View(), "History D")

	m.Update(keyPress("d"))
	assert.Equal(t, "Can't deal right now", m.LastError())
}

func TestRoundLogRecordsEachRoundOnce(t *testing.T) {
	m, _, _ := newTestModel(t, game.WithShoe(deck.NewShoeFromCards(deck.MustParseCards(
		"Ks Kh Kd Kc Qs Qh Qd Qc Js Jh Jd Jc"), randutil.New(1))))

	m.Update(keyPress("s"))
	drain(m)
	m.Update(keyPress("s"))
	drain(m)

	require.Len(t, m.roundLog, 1)
	assert.Equal(t, "#1 D 20-20", m.roundLog[0])
}

func TestDealerUpdatesArriveThroughObserver(t *testing.T) {
	fives := make([]deck.Card, 0, 24)
	for range 6 {
		fives = append(fives, deck.MustParseCards("5s 5h 5d 5c")...)
	}
	m, r, clock := newTestModel(t, game.WithShoe(deck.NewShoeFromCards(fives, randutil.New(1))))

	// 10 v 10: hit once to 15, then stand and let the dealer draw
	m.Update(keyPress("h"))
	m.Update(keyPress("s"))
	require.Equal(t, game.PhaseDealer, r.Phase())
	assert.Contains(t, m.View(), "Dealer is drawing...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(game.DealerCadence).MustWait(ctx)

	require.Equal(t, game.PhaseEnd, r.Phase())
	drain(m)

	snap := m.Snapshot()
	assert.Equal(t, game.PhaseEnd, snap.Phase)
	assert.Equal(t, 15, snap.DealerScore)
	assert.Contains(t, m.View(), "Push")
}

func TestStaleSnapshotIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)
	current := m.Snapshot()

	stale := current
	stale.Version--
	stale.Round = 99
	m.Update(snapshotMsg(stale))

	assert.Equal(t, current, m.Snapshot())
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestHelpHidesDisabledActions(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.True(t, m.keys.Hit.Enabled())
	assert.True(t, m.keys.Stand.Enabled())
	assert.False(t, m.keys.Deal.Enabled())

	help := m.help.View(m.keys)
	assert.Contains(t, help, "hit")
	assert.NotContains(t, help, "deal")
}

func TestRunRequiresRound(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	m := New(logger, "default", io.Discard)
	assert.Error(t, m.Run(context.Background()))
}
