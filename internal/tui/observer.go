package tui

import "github.com/mmcdole/playbox/internal/catalog"

// SnapshotObserver adapts catalog.Service subscriptions to a channel for
// Bubble Tea. Only the latest undelivered snapshot is kept.
type SnapshotObserver struct {
	ch chan catalog.Snapshot
}

// NewSnapshotObserver creates a new channel-based observer.
func NewSnapshotObserver() *SnapshotObserver {
	return &SnapshotObserver{ch: make(chan catalog.Snapshot, 1)}
}

// OnSnapshot delivers snap, replacing any snapshot the UI has not read yet.
func (o *SnapshotObserver) OnSnapshot(snap catalog.Snapshot) {
	for {
		select {
		case o.ch <- snap:
			return
		default:
		}
		// Drop the stale snapshot and retry
		select {
		case <-o.ch:
		default:
		}
	}
}

// Channel returns the receive side for WaitForSnapshotCmd
func (o *SnapshotObserver) Channel() <-chan catalog.Snapshot {
	return o.ch
}
