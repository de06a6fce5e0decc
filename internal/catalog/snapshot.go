package catalog

import (
	"time"

	"github.com/mmcdole/playbox/internal/browse"
	"github.com/mmcdole/playbox/internal/domain"
)

// Snapshot is the state of all five catalog queries at one point in time
type Snapshot struct {
	Movies domain.Query[domain.Movie]
	Genres domain.Query[domain.Genre]
	New    domain.Query[domain.Movie]
	Top    domain.Query[domain.Movie]
	Random domain.Query[domain.Movie]

	// FetchedAt is when the full movie list was last fetched, zero if never
	FetchedAt time.Time
}

// collection returns the query backing a categorized collection kind
func (s *Snapshot) collection(kind domain.CollectionKind) *domain.Query[domain.Movie] {
	switch kind {
	case domain.CollectionNew:
		return &s.New
	case domain.CollectionTop:
		return &s.Top
	case domain.CollectionRandom:
		return &s.Random
	default:
		return &s.Movies
	}
}

// Collections converts the snapshot into engine input. Absent queries
// become nil collections.
func (s Snapshot) Collections() browse.Collections {
	return browse.Collections{
		All:      s.Movies.Items(),
		New:      s.New.Items(),
		Top:      s.Top.Items(),
		Random:   s.Random.Items(),
		Revision: s.Movies.Revision,
	}
}

// Loading reports whether any query is still waiting for its first result
func (s Snapshot) Loading() bool {
	return s.Movies.State == domain.QueryLoading ||
		s.Genres.State == domain.QueryLoading ||
		s.New.State == domain.QueryLoading ||
		s.Top.State == domain.QueryLoading ||
		s.Random.State == domain.QueryLoading
}

// FromCache reports whether the full movie list was served from the cache
func (s Snapshot) FromCache() bool {
	return s.Movies.State == domain.QueryLoaded && s.Movies.FromCache
}

// Errors returns the errors recorded on each query
func (s Snapshot) Errors() []error {
	var errs []error
	for _, err := range []error{s.Movies.Err, s.Genres.Err, s.New.Err, s.Top.Err, s.Random.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
