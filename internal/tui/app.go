package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vladjdk/gym-counter/internal/binder"
	"github.com/vladjdk/gym-counter/internal/domain"
	"github.com/vladjdk/gym-counter/internal/service"
)

// Store is what the calendar reads and writes through.
type Store interface {
	binder.Store
	Load(ctx context.Context) error
	Stats() service.Stats
}

type Options struct {
	Location  *time.Location
	WeekStart time.Weekday
	Binder    binder.Options
	// Now overrides the clock.
	Now func() time.Time
}

// App is the calendar program. Store calls run synchronously inside Update,
// so the store only ever sees one writer.
type App struct {
	ctx    context.Context
	store  Store
	binder *binder.Binder
	log    *slog.Logger

	loc       *time.Location
	weekStart time.Weekday
	now       func() time.Time
	today     domain.Day
	cursor    domain.Day
	month     domain.Day

	// token is the store's change token at the last sync; stats are
	// recomputed whenever it is refreshed.
	token int
	stats service.Stats

	sheet     sheet
	calKeys   calendarKeys
	sheetKeys sheetKeys
	help      help.Model

	status    string
	statusErr bool
	width     int
}

func New(ctx context.Context, store Store, log *slog.Logger, opts Options) *App {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	a := &App{
		ctx:       ctx,
		store:     store,
		binder:    binder.New(store, opts.Binder),
		log:       log,
		loc:       opts.Location,
		weekStart: opts.WeekStart,
		now:       opts.Now,
		sheet:     newSheet(),
		calKeys:   newCalendarKeys(),
		sheetKeys: newSheetKeys(),
		help:      help.New(),
	}
	a.today = domain.DayOf(a.now().In(a.loc))
	a.cursor = a.today
	a.month = a.today.FirstOfMonth()
	a.sync()
	return a
}

// dayChangedMsg fires at local midnight.
type dayChangedMsg struct{}

func (a *App) Init() tea.Cmd { return a.midnight() }

// midnight schedules a dayChangedMsg for the start of the next local day.
func (a *App) midnight() tea.Cmd {
	now := a.now().In(a.loc)
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, a.loc)
	return tea.Tick(next.Sub(now), func(time.Time) tea.Msg { return dayChangedMsg{} })
}

// rollDay moves today forward to the clock's date. A cursor resting on the
// old today follows it; any other cursor stays put if it is still in range.
func (a *App) rollDay() {
	today := domain.DayOf(a.now().In(a.loc))
	if today == a.today {
		return
	}
	prev := a.today
	a.today = today
	a.log.Debug("day changed", "from", prev, "to", today)
	switch {
	case a.cursor == prev:
		a.moveCursor(today)
	case !a.binder.InRange(today, a.cursor):
		a.moveCursor(today)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		return a, nil
	case dayChangedMsg:
		a.rollDay()
		return a, a.midnight()
	case tea.KeyMsg:
		if a.binder.IsOpen() {
			return a.handleSheetKey(m)
		}
		return a.handleCalendarKey(m)
	}
	if a.binder.IsOpen() {
		// cursor blink and friends
		return a, a.sheet.update(msg)
	}
	return a, nil
}

func (a *App) handleCalendarKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	// timers do not advance while the machine sleeps
	a.rollDay()
	k := a.calKeys
	switch {
	case key.Matches(m, k.Quit):
		return a, tea.Quit
	case key.Matches(m, k.Left):
		a.moveCursor(a.cursor.AddDays(-1))
	case key.Matches(m, k.Right):
		a.moveCursor(a.cursor.AddDays(1))
	case key.Matches(m, k.Up):
		a.moveCursor(a.cursor.AddDays(-7))
	case key.Matches(m, k.Down):
		a.moveCursor(a.cursor.AddDays(7))
	case key.Matches(m, k.PrevMonth):
		a.page(-1)
	case key.Matches(m, k.NextMonth):
		a.page(1)
	case key.Matches(m, k.Today):
		a.moveCursor(a.today)
	case key.Matches(m, k.Open):
		return a, a.openSheet()
	case key.Matches(m, k.Refresh):
		a.refresh()
	case key.Matches(m, k.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) handleSheetKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.sheetKeys
	switch {
	case key.Matches(m, k.Quit):
		return a, tea.Quit
	case key.Matches(m, k.Cancel):
		a.binder.Cancel()
		a.sheet.blur()
		a.setStatus("", false)
		return a, nil
	case key.Matches(m, k.Save):
		a.save()
		return a, nil
	case key.Matches(m, k.Delete):
		if a.binder.HasExisting() {
			a.delete()
		}
		return a, nil
	case key.Matches(m, k.Next):
		return a, a.sheet.cycle(1)
	case key.Matches(m, k.Prev):
		return a, a.sheet.cycle(-1)
	}

	if a.sheet.focus == fieldCategory {
		switch {
		case key.Matches(m, k.CatPrev):
			a.binder.CycleCategory(-1)
		case key.Matches(m, k.CatNext):
			a.binder.CycleCategory(1)
		}
		return a, nil
	}

	cmd := a.sheet.update(m)
	a.binder.SetTitle(a.sheet.title.Value())
	a.binder.SetDescription(a.sheet.desc.Value())
	return a, cmd
}

// moveCursor keeps the cursor inside the visible range and the shown month
// on the cursor.
func (a *App) moveCursor(d domain.Day) {
	if !a.binder.InRange(a.today, d) {
		return
	}
	a.cursor = d
	a.month = d.FirstOfMonth()
}

func (a *App) canPage(step int) bool {
	from, to := a.binder.VisibleRange(a.today)
	m := a.month.AddMonths(step)
	return !m.Before(from.FirstOfMonth()) && !m.After(to.FirstOfMonth())
}

func (a *App) page(step int) {
	if !a.canPage(step) {
		return
	}
	from, to := a.binder.VisibleRange(a.today)
	target := a.cursor.AddMonths(step)
	if target.Before(from) {
		target = from
	}
	if target.After(to) {
		target = to
	}
	a.cursor = target
	a.month = target.FirstOfMonth()
}

func (a *App) openSheet() tea.Cmd {
	if !a.binder.Tap(a.cursor) {
		return nil
	}
	a.sheetKeys.canDelete = a.binder.HasExisting()
	a.setStatus("", false)
	return a.sheet.load(a.binder.Buffer())
}

func (a *App) save() {
	day, _ := a.binder.Selected()
	w, err := a.binder.Save(a.ctx)
	if err != nil {
		a.log.Error("save workout", "day", day, "err", err)
		a.setStatus("save failed: "+err.Error(), true)
		return
	}
	a.log.Info("workout saved", "day", w.Day, "category", w.Category, "id", w.ID)
	a.sheet.blur()
	a.sync()
	a.setStatus(fmt.Sprintf("saved %s: %s", w.Day, w.Category.Label()), false)
}

func (a *App) delete() {
	day, _ := a.binder.Selected()
	if err := a.binder.Delete(a.ctx); err != nil {
		a.log.Error("delete workout", "day", day, "err", err)
		a.setStatus("delete failed: "+err.Error(), true)
		return
	}
	a.log.Info("workout deleted", "day", day)
	a.sheet.blur()
	a.sync()
	a.setStatus(fmt.Sprintf("deleted %s", day), false)
}

// refresh re-reads the store. A failed read keeps the last snapshot on
// screen.
func (a *App) refresh() {
	if err := a.store.Load(a.ctx); err != nil {
		a.log.Warn("reload workouts", "err", err)
		a.setStatus("reload failed, showing last loaded workouts", true)
		return
	}
	prev := a.token
	a.sync()
	a.log.Debug("workouts reloaded", "count", a.token, "previous", prev)
	a.setStatus(fmt.Sprintf("reloaded %d workouts", a.token), false)
}

func (a *App) sync() {
	a.token = a.binder.ChangeToken()
	a.stats = a.store.Stats()
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func (a *App) View() string {
	sections := []string{renderStats(a.stats), "", a.renderMonth()}
	if a.binder.IsOpen() {
		day, _ := a.binder.Selected()
		sections = append(sections, a.sheet.view(day, a.binder.Buffer(), a.binder.HasExisting()))
	} else {
		sections = append(sections, a.renderSelection())
	}
	sections = append(sections, "", renderLegend())

	if a.status != "" {
		style := statusStyle
		if a.statusErr {
			style = statusErrStyle
		}
		sections = append(sections, style.Render(a.status))
	}
	if a.binder.IsOpen() {
		sections = append(sections, a.help.View(a.sheetKeys))
	} else {
		sections = append(sections, a.help.View(a.calKeys))
	}
	return strings.Join(sections, "\n")
}

// renderSelection describes the workout under the cursor.
func (a *App) renderSelection() string {
	date := a.cursor.Time(nil).Format("Mon 2 Jan 2006")
	dec := a.binder.Decorate(a.cursor)
	if !dec.HasWorkout {
		return mutedStyle.Render(date + " · no workout")
	}
	w, _ := a.store.FindByDay(a.cursor)
	title := w.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	line := headerStyle.Render(date) + " · " + swatch(dec.Color, title+" ("+w.Category.Label()+")")
	if w.Description != "" {
		line += "\n" + mutedStyle.Render(w.Description)
	}
	return line
}

// Cursor is the day under the calendar cursor.
func (a *App) Cursor() domain.Day { return a.cursor }
