package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"readspace/internal/adapters/tui/styles"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// CalendarKeyMap defines key bindings for the calendar view
type CalendarKeyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	Today     key.Binding
	Back      key.Binding
}

var CalendarKeys = CalendarKeyMap{
	PrevMonth: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous month"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next month"),
	),
	PrevDay: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous day"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next day"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "c"),
		key.WithHelp("esc", "back"),
	),
}

// CalendarModel shows a month of reading activity plus overall
// statistics. Day selection reveals which files were opened that day.
type CalendarModel struct {
	ViewState

	ws       *domain.Workspace
	activity ports.ActivityIndex

	month time.Month
	year  int
}

// NewCalendarModel creates a calendar anchored to the workspace's view
// state
func NewCalendarModel(ws *domain.Workspace, activity ports.ActivityIndex) *CalendarModel {
	return &CalendarModel{
		ws:       ws,
		activity: activity,
		month:    ws.CurrentMonth,
		year:     ws.CurrentYear,
	}
}

// Init initializes the calendar
func (m *CalendarModel) Init() tea.Cmd {
	m.month = m.ws.CurrentMonth
	m.year = m.ws.CurrentYear
	return nil
}

// Update handles messages for the calendar
func (m *CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, CalendarKeys.Back):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, CalendarKeys.PrevMonth):
			m.shiftMonth(-1)

		case key.Matches(msg, CalendarKeys.NextMonth):
			m.shiftMonth(1)

		case key.Matches(msg, CalendarKeys.PrevDay):
			m.shiftDay(-1)

		case key.Matches(msg, CalendarKeys.NextDay):
			m.shiftDay(1)

		case key.Matches(msg, CalendarKeys.Today):
			now := time.Now()
			m.month = now.Month()
			m.year = now.Year()
			m.ws.SelectedDate = now.Format(domain.DateFormat)
			m.syncViewState()
		}
	}

	return m, nil
}

func (m *CalendarModel) shiftMonth(delta int) {
	t := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.month = t.Month()
	m.year = t.Year()
	m.syncViewState()
}

func (m *CalendarModel) shiftDay(delta int) {
	selected := m.selectedTime()
	selected = selected.AddDate(0, 0, delta)
	m.month = selected.Month()
	m.year = selected.Year()
	m.ws.SelectedDate = selected.Format(domain.DateFormat)
	m.syncViewState()
}

func (m *CalendarModel) selectedTime() time.Time {
	if m.ws.SelectedDate != "" {
		if t, err := time.Parse(domain.DateFormat, m.ws.SelectedDate); err == nil {
			return t
		}
	}
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
}

func (m *CalendarModel) syncViewState() {
	m.ws.CurrentMonth = m.month
	m.ws.CurrentYear = m.year
}

// activeDates returns the month's active days, preferring the index and
// falling back to the ledger
func (m *CalendarModel) activeDates() map[string]bool {
	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	from := first.Format(domain.DateFormat)
	to := last.Format(domain.DateFormat)

	active := map[string]bool{}
	if m.activity != nil {
		if dates, err := m.activity.ActiveDates(from, to); err == nil {
			for _, d := range dates {
				active[d] = true
			}
			return active
		}
	}
	for _, d := range m.ws.Statistics.Dates() {
		if d >= from && d <= to {
			active[d] = true
		}
	}
	return active
}

// View renders the calendar
func (m *CalendarModel) View() string {
	var b strings.Builder

	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
	b.WriteString(styles.Title.Render(first.Format("January 2006")))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render(" Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	active := m.activeDates()
	today := time.Now().Format(domain.DateFormat)

	// Monday-first column for the 1st of the month.
	weekday := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", weekday))

	daysInMonth := first.AddDate(0, 1, -1).Day()
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(m.year, m.month, day, 0, 0, 0, 0, time.UTC).Format(domain.DateFormat)
		label := fmt.Sprintf("%2d", day)

		style := styles.CalendarDay
		switch {
		case date == m.ws.SelectedDate:
			style = styles.CalendarSelected
		case date == today:
			style = styles.CalendarToday
		case active[date]:
			style = styles.CalendarActive
		}
		b.WriteString(style.Render(label))

		weekday = (weekday + 1) % 7
		if weekday == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderDayDetail())
	b.WriteString(m.renderOverallStats())

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *CalendarModel) renderDayDetail() string {
	if m.ws.SelectedDate == "" {
		return ""
	}

	totals := m.ws.Statistics.FilesActiveOn(m.ws.SelectedDate)
	if m.activity != nil {
		if indexed, err := m.activity.TotalsFor(m.ws.SelectedDate); err == nil && len(indexed) > 0 {
			totals = indexed
		}
	}

	var b strings.Builder
	b.WriteString(styles.SectionHeader.Render(m.ws.SelectedDate))
	b.WriteString("\n")
	if len(totals) == 0 {
		b.WriteString(styles.MutedText.Render("No reading activity."))
		b.WriteString("\n")
		return b.String()
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s  %s\n", name,
			styles.Progress.Render(fmt.Sprintf("%d opens", totals[name])))
	}
	return b.String()
}

func (m *CalendarModel) renderOverallStats() string {
	stats := m.ws.Stats()

	var b strings.Builder
	b.WriteString(styles.SectionHeader.Render("Overall"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %d files, %d opens, %d active days, average progress %d%%\n",
		stats.FileCount, stats.TotalOpens, stats.ActiveDays, stats.AverageProgress)
	return b.String()
}

func (m *CalendarModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"h/l", "month"},
		{"j/k", "day"},
		{"t", "today"},
		{"esc", "back"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}
