package display

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings.
type keyMap struct {
	// Global
	Quit  key.Binding
	Help  key.Binding
	Voice key.Binding
	Home  key.Binding

	// Catalog
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Search key.Binding

	// Detail
	Next      key.Binding
	Previous  key.Binding
	ToggleTab key.Binding
	Exercises key.Binding
	Recipes   key.Binding
	Read      key.Binding
	Intro     key.Binding
	Tips      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Voice: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "speak"),
		),
		Home: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "home"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),

		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "back"),
		),
		ToggleTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch tab"),
		),
		Exercises: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exercises"),
		),
		Recipes: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recipes"),
		),
		Read: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "read card"),
		),
		Intro: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "intro"),
		),
		Tips: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tips"),
		),
	}
}

// catalogKeys and detailKeys adapt the map to help.KeyMap per view.
type catalogKeys struct{ keyMap }

func (k catalogKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Search, k.Voice, k.Quit}
}

func (k catalogKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Search, k.Voice, k.Intro},
		{k.Help, k.Quit},
	}
}

type detailKeys struct{ keyMap }

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.ToggleTab, k.Read, k.Voice, k.Home}
}

func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Previous, k.Next, k.ToggleTab, k.Exercises, k.Recipes},
		{k.Read, k.Intro, k.Tips, k.Voice},
		{k.Search, k.Home, k.Help, k.Quit},
	}
}
