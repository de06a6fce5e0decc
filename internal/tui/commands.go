package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/playbox/internal/catalog"
	"github.com/mmcdole/playbox/internal/refresh"
)

// Command factories for async operations

// Refresher is the part of refresh.Refresher the TUI drives. Manual
// refreshes share its no-overlap guard with the scheduled ones.
type Refresher interface {
	RunNow(ctx context.Context) error
	Status() refresh.Status
}

// RefreshCatalogCmd fetches every collection. The snapshot itself reaches
// the UI through the observer; this only reports completion.
func RefreshCatalogCmd(r Refresher) tea.Cmd {
	return func() tea.Msg {
		return CatalogLoadDoneMsg{Err: r.RunNow(context.Background())}
	}
}

// WaitForSnapshotCmd blocks until the next catalog snapshot is published
func WaitForSnapshotCmd(ch <-chan catalog.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return CatalogUpdatedMsg{Snapshot: snap}
	}
}

// TickCmd creates a tick command for spinner animation
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status message identified by seq after a delay
func ClearStatusCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
