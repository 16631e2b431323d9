package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	More     key.Binding
	Category key.Binding
	Find     key.Binding
	Sort     key.Binding
	Prefs    key.Binding
	MinPrice key.Binding
	MaxPrice key.Binding
	Add      key.Binding
	Open     key.Binding
	Close    key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		More:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Find:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "type category")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Prefs:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preferences")),
		MinPrice: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "min price")),
		MaxPrice: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "max price")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to cart")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.More, k.Category, k.Sort, k.Prefs, k.Add, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.More},
		{k.Category, k.Find, k.Sort, k.Prefs},
		{k.MinPrice, k.MaxPrice, k.Add, k.Open},
		{k.Reload, k.Help, k.Quit},
	}
}
