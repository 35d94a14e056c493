package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

const logWidth = 28

// snapshotMsg carries a round update published by the dealer task or by an
// action.
type snapshotMsg game.Snapshot

// Model is the Bubble Tea model for the Blackjack table
type Model struct {
	round   *game.Round
	logger  *log.Logger
	updates chan game.Snapshot

	snap        game.Snapshot
	lastErr     string
	roundLog    []string
	loggedRound int

	keys   keyMap
	help   help.Model
	logVP  viewport.Model
	styles Styles

	width    int
	height   int
	quitting bool
}

// New creates a model. The round is attached later with Attach because the
// round needs the model's Observer at construction time.
func New(logger *log.Logger, theme string, out io.Writer) *Model {
	vp := viewport.New(logWidth, 10)
	vp.SetContent("")

	return &Model{
		logger:  logger.WithPrefix("tui"),
		updates: make(chan game.Snapshot, 16),
		keys:    defaultKeyMap(),
		help:    help.New(),
		logVP:   vp,
		styles:  NewStyles(theme, out),
	}
}

// Observer returns the function to register with game.WithObserver. It never
// blocks the round; if the UI falls behind, intermediate updates are dropped
// and the next Snapshot catches up.
func (m *Model) Observer() func(game.Snapshot) {
	return func(s game.Snapshot) {
		select {
		case m.updates <- s:
		default:
			m.logger.Debug("Dropping snapshot, UI busy", "round", s.Round, "phase", s.Phase)
		}
	}
}

// Attach sets the round the model drives
func (m *Model) Attach(r *game.Round) {
	m.round = r
	m.apply(r.Snapshot())
}

// Run starts the program and blocks until the user quits or ctx is done.
func (m *Model) Run(ctx context.Context) error {
	if m.round == nil {
		return errors.New("no round attached")
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-m.updates)
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.apply(game.Snapshot(msg))
		return m, m.waitForUpdate()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logVP.Height = max(msg.Height-8, 3)
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case pressed(msg, m.keys.Deal):
			m.do(game.ActionDeal)
		case pressed(msg, m.keys.Hit):
			m.do(game.ActionHit)
		case pressed(msg, m.keys.Stand):
			m.do(game.ActionStand)
		default:
			var cmd tea.Cmd
			m.logVP, cmd = m.logVP.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// pressed matches a binding whether or not it is currently enabled, so a
// disabled action still reaches the round and reports why it was refused.
func pressed(msg tea.KeyMsg, b key.Binding) bool {
	return slices.Contains(b.Keys(), msg.String())
}

func (m *Model) do(a game.Action) {
	m.lastErr = ""
	if err := m.round.Do(a); err != nil {
		m.logger.Debug("Action refused", "action", a, "error", err)
		if errors.Is(err, game.ErrActionNotAllowed) {
			m.lastErr = fmt.Sprintf("Can't %s right now", a)
		} else {
			m.lastErr = err.Error()
		}
	}
	m.apply(m.round.Snapshot())
}

func (m *Model) apply(s game.Snapshot) {
	// observer snapshots can arrive after a newer one fetched directly
	if s.Version < m.snap.Version {
		return
	}

	if s.Phase == game.PhaseEnd && s.Round != m.loggedRound {
		m.loggedRound = s.Round
		m.addLogEntry(fmt.Sprintf("#%d %s %d-%d", s.Round, s.Outcome.Symbol(), s.PlayerScore, s.DealerScore))
	}

	m.snap = s
	m.keys.syncEnabled(s)
}

func (m *Model) addLogEntry(entry string) {
	m.roundLog = append(m.roundLog, entry)
	m.logVP.SetContent(strings.Join(m.roundLog, "\n"))
	m.logVP.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	table := m.renderTable()
	side := m.styles.Pane.Width(logWidth).Render(
		m.styles.Label.Render("Rounds") + "\n" + m.logVP.View(),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Pane.Render(table), side)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("♠ ♥ Blackjack ♦ ♣"),
		body,
		m.help.View(m.keys),
	)
}

func (m *Model) renderTable() string {
	s := m.snap
	var b strings.Builder

	b.WriteString(m.styles.Label.Render("Dealer"))
	if !s.DealerHidden {
		b.WriteString("  " + m.styles.Score.Render(fmt.Sprintf("%d", s.DealerScore)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderCards(s.Dealer, s.DealerHidden))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("You"))
	b.WriteString("  " + m.styles.Score.Render(fmt.Sprintf("%d", s.PlayerScore)))
	b.WriteString("\n")
	b.WriteString(m.renderCards(s.Player, false))
	b.WriteString("\n\n")

	switch s.Phase {
	case game.PhaseDealer:
		b.WriteString(m.styles.Info.Render("Dealer is drawing..."))
	case game.PhaseEnd:
		b.WriteString(m.renderOutcome(s.Outcome))
	default:
		b.WriteString(m.styles.Info.Render("Hit or stand?"))
	}
	b.WriteString("\n")

	t := s.Tally
	b.WriteString(m.styles.Info.Render(fmt.Sprintf("History %s  (W%d L%d D%d)",
		s.HistorySymbols(), t.Wins, t.Losses, t.Draws)))

	if m.lastErr != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.lastErr))
	}
	return b.String()
}

func (m *Model) renderCards(cards []deck.Card, holeHidden bool) string {
	parts := make([]string, 0, len(cards)+1)
	for _, c := range cards {
		style := m.styles.BlackCard
		if c.IsRed() {
			style = m.styles.RedCard
		}
		parts = append(parts, style.Render(c.String()))
	}
	if holeHidden {
		parts = append(parts, m.styles.Hidden.Render("??"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderOutcome(o game.Outcome) string {
	switch o {
	case game.Win:
		return m.styles.Win.Render(o.Message())
	case game.Lose:
		return m.styles.Lose.Render(o.Message())
	case game.Draw:
		return m.styles.Draw.Render(o.Message())
	default:
		return ""
	}
}

// Snapshot returns the state currently displayed
func (m *Model) Snapshot() game.Snapshot {
	return m.snap
}

// LastError returns the message for the most recently refused action
func (m *Model) LastError() string {
	return m.lastErr
}
