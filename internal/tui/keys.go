package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextScene  key.Binding
	PrevScene  key.Binding
	Dashboard  key.Binding
	Insights   key.Binding
	Sensitive  key.Binding
	Distribute key.Binding
	Compare    key.Binding
	Stakehold  key.Binding
	View       key.Binding
	Scenario   key.Binding
	Reset      key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev input")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next input")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		NextScene:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevScene:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Dashboard:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Insights:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "insights")),
		Sensitive:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sensitivity")),
		Distribute: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "distribution")),
		Compare:    key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "pathways")),
		Stakehold:  key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "stakeholders")),
		View:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "next stakeholder")),
		Scenario:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next scenario")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.NextScene, k.Scenario, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextScene, k.PrevScene, k.Dashboard, k.Insights, k.Sensitive, k.Distribute, k.Compare, k.Stakehold},
		{k.Scenario, k.View, k.Reset, k.Help, k.Back, k.Quit},
	}
}
