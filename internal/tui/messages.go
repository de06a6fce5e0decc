package tui

import (
	"github.com/mmcdole/playbox/internal/catalog"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CatalogUpdatedMsg carries a snapshot published by the catalog service,
// whether from the cache, a manual refresh or the background refresher
type CatalogUpdatedMsg struct {
	Snapshot catalog.Snapshot
}

// CatalogLoadDoneMsg signals that a fetch started by the TUI finished
type CatalogLoadDoneMsg struct {
	Err error
}

// TickMsg drives the loading spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	Seq int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
