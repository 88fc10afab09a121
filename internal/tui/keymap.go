package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Begin     key.Binding
	Settings  key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	Reset     key.Binding
	Up        key.Binding
	Down      key.Binding
	Decrease  key.Binding
	Increase  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Begin: key.NewBinding(
			key.WithKeys("b", "enter"),
			key.WithHelp("b", "begin"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Reset: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "restart"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "increase"),
		),
	}
}

func (k keyMap) menuHelp() []key.Binding {
	return []key.Binding{k.Begin, k.Settings, k.Quit}
}

func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Decrease, k.Increase, k.Back}
}

func (k keyMap) gameHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Back, k.ForceQuit}
}
