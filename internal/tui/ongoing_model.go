package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ciprianm/pontaj/internal/clock"
	"github.com/ciprianm/pontaj/internal/models"
	"github.com/ciprianm/pontaj/internal/timesheet"
)

// OngoingModel is the live view of every open session across both tracks.
type OngoingModel struct {
	width  int
	height int

	store      timesheet.Store
	clk        clock.Clock
	loc        *time.Location
	memberName func(int64) string

	table table.Model
	err   error
}

// refreshTickMsg re-reads the store once per second.
type refreshTickMsg struct{}

// NewOngoingModel builds the live open-sessions view.
func NewOngoingModel(store timesheet.Store, clk clock.Clock, loc *time.Location, memberName func(int64) string) OngoingModel {
	columns := []table.Column{
		{Title: "TRACK", Width: 8},
		{Title: "MEMBER", Width: 22},
		{Title: "DATE", Width: 12},
		{Title: "START", Width: 10},
		{Title: "ELAPSED", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain))
	t.SetStyles(styles)

	m := OngoingModel{
		store:      store,
		clk:        clk,
		loc:        loc,
		memberName: memberName,
		table:      t,
	}
	m.reload()
	return m
}

// Init starts the refresh ticker.
func (m OngoingModel) Init() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// Update handles messages
func (m OngoingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshTickMsg:
		m.reload()
		return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return refreshTickMsg{}
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(maxInt(4, m.height-6))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.reload()
			return m, nil
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// reload re-reads open sessions for both namespaces.
func (m *OngoingModel) reload() {
	now := m.clk.Now()
	today := clock.DateString(now)

	var rows []table.Row
	for _, ns := range models.Namespaces {
		open, err := m.store.OpenSessions(ns)
		if err != nil {
			m.err = err
			return
		}
		for _, o := range open {
			elapsed := "stale"
			if o.Date == today {
				startAt, err := clock.ParseLocal(o.Date, o.Start, m.loc)
				if err == nil {
					elapsed = fmt.Sprintf("%dm", int(now.Sub(startAt).Minutes()))
				}
			}
			rows = append(rows, table.Row{string(ns), m.memberName(o.MemberID), o.Date, o.Start, elapsed})
		}
	}
	m.err = nil
	m.table.SetRows(rows)
}

// View renders the open-sessions table
func (m OngoingModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Render("ONGOING SESSIONS")

	if m.err != nil {
		errLine := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Render(fmt.Sprintf("Error: %v", m.err))
		return lipgloss.JoinVertical(lipgloss.Left, title, errLine)
	}

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render("No open sessions.")
	}

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("r refresh • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
