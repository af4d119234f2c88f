package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ciprianm/pontaj/internal/clock"
	"github.com/ciprianm/pontaj/internal/timesheet"
)

// RunOngoingTUI starts the live open-sessions view.
func RunOngoingTUI(store timesheet.Store, clk clock.Clock, loc *time.Location, memberName func(int64) string) error {
	model := NewOngoingModel(store, clk, loc, memberName)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
