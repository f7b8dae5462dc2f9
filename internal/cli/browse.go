package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cowandilla/clccal/internal/calendar"
	"github.com/cowandilla/clccal/internal/cli/formatter"
	"github.com/cowandilla/clccal/internal/domain"
	"github.com/cowandilla/clccal/internal/service"
)

type browseKeyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		PrevDay:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		NextDay:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		PrevWeek:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		NextWeek:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		PrevMonth: key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next month")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.PrevMonth, k.NextMonth, k.Today, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.Help, k.Quit},
	}
}

// monthLoadedMsg carries a freshly built month view and every record on
// the selected day.
type monthLoadedMsg struct {
	view *service.MonthView
	day  []domain.EventRecord
	err  error
}

// browseModel is an interactive month grid with a day detail pane. The
// selected day drives which month is shown.
type browseModel struct {
	calendar service.CalendarService
	today    time.Time
	selected time.Time
	view     *service.MonthView
	day      []domain.EventRecord
	loading  bool
	err      error
	keys     browseKeyMap
	help     help.Model
}

func newBrowseModel(cal service.CalendarService, today time.Time) *browseModel {
	today = domain.Day(today)
	return &browseModel{
		calendar: cal,
		today:    today,
		selected: today,
		loading:  true,
		keys:     newBrowseKeyMap(),
		help:     help.New(),
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.load()
}

func (m *browseModel) load() tea.Cmd {
	cal := m.calendar
	selected := m.selected
	return func() tea.Msg {
		ctx := context.Background()
		view, err := cal.Month(ctx, service.MonthRequest{
			Month:    calendar.MonthOf(selected),
			Selected: &selected,
		})
		if err != nil {
			return monthLoadedMsg{err: err}
		}
		day, err := cal.Records(ctx, calendar.NewWindow(selected, selected))
		if err != nil {
			return monthLoadedMsg{err: err}
		}
		var dated []domain.EventRecord
		for _, e := range day.Records {
			if !e.IsUndated() {
				dated = append(dated, e)
			}
		}
		return monthLoadedMsg{view: view, day: dated}
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monthLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.view = msg.view
			m.day = msg.day
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			return m.moveTo(domain.AddDays(m.selected, -1))
		case key.Matches(msg, m.keys.NextDay):
			return m.moveTo(domain.AddDays(m.selected, 1))
		case key.Matches(msg, m.keys.PrevWeek):
			return m.moveTo(domain.AddDays(m.selected, -7))
		case key.Matches(msg, m.keys.NextWeek):
			return m.moveTo(domain.AddDays(m.selected, 7))
		case key.Matches(msg, m.keys.PrevMonth):
			return m.moveTo(calendar.MonthOf(m.selected).Prev().First())
		case key.Matches(msg, m.keys.NextMonth):
			return m.moveTo(calendar.MonthOf(m.selected).Next().First())
		case key.Matches(msg, m.keys.Today):
			return m.moveTo(m.today)
		}
	}
	return m, nil
}

// moveTo selects d and reloads the month so the selection highlight
// follows.
func (m *browseModel) moveTo(d time.Time) (tea.Model, tea.Cmd) {
	m.selected = d
	m.loading = true
	return m, m.load()
}

func (m *browseModel) View() string {
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.view == nil {
		return "\n  " + formatter.Dim("Loading calendar...") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.FormatMonth(m.view))
	b.WriteString("\n" + formatter.Bold(calendar.FormatDay(m.selected)))
	if m.selected.Equal(m.today) {
		b.WriteString(" " + formatter.StyleToday.Render("TODAY"))
	}
	b.WriteString("\n")

	if len(m.day) == 0 {
		b.WriteString("  " + formatter.Dim("No events") + "\n")
	}
	for _, e := range m.day {
		b.WriteString(formatter.EntryLine(e) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the calendar month by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse needs an interactive terminal; try 'clccal month'")
			}
			p := tea.NewProgram(newBrowseModel(app.Calendar, app.now()), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
