package domain

// QueryState is the load state of a single catalog query
type QueryState int

const (
	QueryLoading QueryState = iota
	QueryLoaded
	QueryErrored
)

// String returns a human-readable representation of the query state
func (s QueryState) String() string {
	switch s {
	case QueryLoading:
		return "Loading"
	case QueryLoaded:
		return "Loaded"
	case QueryErrored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// Query is an independently loading result. Loading and Errored are both
// treated as absent by consumers.
type Query[T any] struct {
	State     QueryState
	Data      []T
	Err       error
	Revision  uint64 // Bumped only when Data changes content
	FromCache bool
}

// Absent reports whether the query has no usable data
func (q Query[T]) Absent() bool {
	return q.State != QueryLoaded
}

// Items returns the data, or nil when the query is absent
func (q Query[T]) Items() []T {
	if q.Absent() {
		return nil
	}
	return q.Data
}
