package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vladjdk/gym-counter/internal/domain"
	"github.com/vladjdk/gym-counter/internal/service"
)

const cellWidth = 5

// gridStart is the first cell of the month grid: the weekStart on or before
// the first of month.
func gridStart(month domain.Day, weekStart time.Weekday) domain.Day {
	first := month.FirstOfMonth()
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	return first.AddDays(-offset)
}

func (a *App) renderMonth() string {
	var b strings.Builder

	title := a.month.Time(nil).Format("January 2006")
	prev, next := "‹", "›"
	if !a.canPage(-1) {
		prev = " "
	}
	if !a.canPage(1) {
		next = " "
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s %s", prev, title, next)))
	b.WriteString("\n\n")

	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(a.weekStart) + i) % 7)
		b.WriteString(weekdayStyle.Render(fmt.Sprintf("%*s", cellWidth, wd.String()[:2])))
	}
	b.WriteString("\n")

	start := gridStart(a.month, a.weekStart)
	for week := 0; week < 6; week++ {
		rowStart := start.AddDays(week * 7)
		if week > 0 && !rowStart.SameMonth(a.month) {
			break
		}
		for i := 0; i < 7; i++ {
			d := rowStart.AddDays(i)
			if !d.SameMonth(a.month) {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			b.WriteString(a.renderCell(d))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderCell(d domain.Day) string {
	dec := a.binder.Decorate(d)
	marker := " "
	if dec.HasWorkout {
		marker = "•"
	}
	text := fmt.Sprintf("%*s%s", cellWidth-1, dec.Label, marker)

	style := mutedStyle
	switch {
	case !a.binder.InRange(a.today, d):
		style = outsideStyle
	case dec.HasWorkout:
		style = style.Foreground(lipgloss.Color(dec.Color)).Bold(true)
	default:
		style = style.Foreground(colorText)
	}
	if d == a.today {
		style = style.Inherit(todayStyle)
	}
	if d == a.cursor {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(text)
}

func renderStats(st service.Stats) string {
	parts := []string{headerStyle.Render(fmt.Sprintf("Total Workouts: %d", st.Total))}
	for _, c := range domain.Categories() {
		parts = append(parts, swatch(c.Color(), "●")+" "+mutedStyle.Render(fmt.Sprintf("%s %d", c.Label(), st.ByCategory[c])))
	}
	return strings.Join(parts, "   ")
}

func renderLegend() string {
	parts := make([]string, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		parts = append(parts, swatch(c.Color(), "● "+c.Label()))
	}
	return strings.Join(parts, "  ")
}
