package tui

import "github.com/charmbracelet/bubbles/key"

type calendarKeys struct {
	Left, Right, Up, Down key.Binding
	PrevMonth, NextMonth  key.Binding
	Today                 key.Binding
	Open                  key.Binding
	Refresh               key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func newCalendarKeys() calendarKeys {
	return calendarKeys{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		PrevMonth: key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Open:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "log workout")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k calendarKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.PrevMonth, k.NextMonth, k.Today, k.Help, k.Quit}
}

func (k calendarKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.Open, k.Refresh, k.Help, k.Quit},
	}
}

type sheetKeys struct {
	Next, Prev       key.Binding
	CatPrev, CatNext key.Binding
	Save             key.Binding
	Delete           key.Binding
	Cancel           key.Binding
	Quit             key.Binding

	// canDelete hides Delete from help for days with nothing recorded.
	canDelete bool
}

func newSheetKeys() sheetKeys {
	return sheetKeys{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		CatPrev: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev category")),
		CatNext: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next category")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Delete:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k sheetKeys) ShortHelp() []key.Binding {
	out := []key.Binding{k.Next, k.Save}
	if k.canDelete {
		out = append(out, k.Delete)
	}
	return append(out, k.Cancel)
}

func (k sheetKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.CatPrev, k.CatNext}, k.ShortHelp()}
}
