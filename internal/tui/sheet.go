package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vladjdk/gym-counter/internal/domain"
)

type sheetField int

const (
	fieldTitle sheetField = iota
	fieldDescription
	fieldCategory
	fieldCount
)

// sheet holds the widgets of the edit sheet. The binder owns the values;
// the widgets only collect keystrokes.
type sheet struct {
	title textinput.Model
	desc  textarea.Model
	focus sheetField
}

func newSheet() sheet {
	ti := textinput.New()
	ti.Placeholder = "Push Day"
	ti.Prompt = ""
	ti.CharLimit = 80
	ti.Width = 40

	ta := textarea.New()
	ta.Placeholder = "sets, reps, notes..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetWidth(44)
	ta.SetHeight(4)

	return sheet{title: ti, desc: ta}
}

// load fills the widgets from d and focuses the title.
func (s *sheet) load(d domain.Draft) tea.Cmd {
	s.title.SetValue(d.Title)
	s.title.CursorEnd()
	s.desc.SetValue(d.Description)
	return s.setFocus(fieldTitle)
}

func (s *sheet) blur() {
	s.title.Blur()
	s.desc.Blur()
}

func (s *sheet) setFocus(f sheetField) tea.Cmd {
	s.blur()
	s.focus = f
	switch f {
	case fieldTitle:
		return s.title.Focus()
	case fieldDescription:
		return s.desc.Focus()
	}
	return nil
}

func (s *sheet) cycle(step int) tea.Cmd {
	n := int(fieldCount)
	return s.setFocus(sheetField(((int(s.focus)+step)%n + n) % n))
}

// update forwards msg to the focused text widget.
func (s *sheet) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldTitle:
		s.title, cmd = s.title.Update(msg)
	case fieldDescription:
		s.desc, cmd = s.desc.Update(msg)
	}
	return cmd
}

func (s *sheet) view(day domain.Day, d domain.Draft, existing bool) string {
	label := func(f sheetField, text string) string {
		if s.focus == f {
			return focusedLabelStyle.Render("› " + text)
		}
		return labelStyle.Render("  " + text)
	}

	heading := "New workout"
	if existing {
		heading = "Edit workout"
	}
	var cats []string
	for _, c := range domain.Categories() {
		if c == d.Category {
			cats = append(cats, chipStyle.Background(lipgloss.Color(c.Color())).Render(c.Label()))
			continue
		}
		cats = append(cats, swatch(c.Color(), " "+c.Label()+" "))
	}

	lines := []string{
		titleStyle.Render(heading) + "  " + mutedStyle.Render(day.Time(nil).Format("Monday, 2 January 2006")),
		"",
		label(fieldTitle, "Title"),
		"  " + s.title.View(),
		label(fieldDescription, "Description"),
		s.desc.View(),
		label(fieldCategory, "Category"),
		"  " + strings.Join(cats, " "),
	}
	return sheetStyle.Render(strings.Join(lines, "\n"))
}
