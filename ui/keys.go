package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	// global
	Quit key.Binding
	Back key.Binding
	Next key.Binding
	Prev key.Binding

	// main form
	Add     key.Binding
	Search  key.Binding
	ViewAll key.Binding

	// search form
	Kind   key.Binding
	Submit key.Binding

	// results
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Edit     key.Binding
	Delete   key.Binding
	ReadMore key.Binding

	// full note
	Download key.Binding
	Copy     key.Binding

	// edit form
	Save            key.Binding
	AppendClipboard key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),

		Add: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "add"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "search"),
		),
		ViewAll: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "view all"),
		),

		Kind: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "search type"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ReadMore: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read more"),
		),

		Download: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "download image"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy text"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "update"),
		),
		AppendClipboard: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "append clipboard"),
		),
	}
}

type mainKeyMap struct{ KeyMap }

func (k mainKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Add, k.Search, k.ViewAll, k.Quit}
}

func (k mainKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type searchKeyMap struct{ KeyMap }

func (k searchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Kind, k.Submit, k.Back, k.Quit}
}

func (k searchKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type resultsKeyMap struct{ KeyMap }

func (k resultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.ReadMore, k.Edit, k.Delete, k.Back}
}

func (k resultsKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type noteKeyMap struct{ KeyMap }

func (k noteKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Download, k.Copy, k.Back}
}

func (k noteKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type editKeyMap struct{ KeyMap }

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Save, k.AppendClipboard, k.Back, k.Quit}
}

func (k editKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
