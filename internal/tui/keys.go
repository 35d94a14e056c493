package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/lox/blackjack/internal/game"
)

type keyMap struct {
	Deal  key.Binding
	Hit   key.Binding
	Stand key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Deal: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d", "deal"),
		),
		Hit: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hit"),
		),
		Stand: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stand"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.Hit, k.Stand, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.Hit, k.Stand},
		{k.Help, k.Quit},
	}
}

// syncEnabled disables the bindings for actions the phase does not allow,
// which also hides them from the help bar.
func (k *keyMap) syncEnabled(s game.Snapshot) {
	k.Deal.SetEnabled(s.Can(game.ActionDeal))
	k.Hit.SetEnabled(s.Can(game.ActionHit))
	k.Stand.SetEnabled(s.Can(game.ActionStand))
}
