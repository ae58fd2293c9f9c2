package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Home       key.Binding
	End        key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Search     key.Binding
	NextPane   key.Binding
	PrevPane   key.Binding
	Open       key.Binding
	Toggle     key.Binding
	Reveal     key.Binding
	Sort       key.Binding
	Descending key.Binding
	Semantic   key.Binding
	Larger     key.Binding
	Smaller    key.Binding
	Quick      key.Binding
	Reload     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right")),
		Home:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		End:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextPane:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Reveal:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open dir")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Descending: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Semantic:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "semantic")),
		Larger:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "larger")),
		Smaller:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "smaller")),
		Quick:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "quick filter")),
		Reload:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextPane, k.Open, k.Reveal, k.Sort, k.Quick, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End, k.PageUp, k.PageDown},
		{k.Search, k.NextPane, k.PrevPane, k.Open, k.Toggle, k.Back},
		{k.Reveal, k.Sort, k.Descending, k.Semantic, k.Larger, k.Smaller, k.Quick, k.Reload, k.Quit},
	}
}
