package browse

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mmcdole/playbox/internal/domain"
)

// Mode controls how filter actions combine
type Mode string

const (
	// ModeExclusive makes every action overwrite the visible list from the
	// full collection; the last action wins.
	ModeExclusive Mode = "exclusive"

	// ModeCombined keeps all criteria active: the sort option picks the
	// source collection, then search AND genre AND year are applied.
	ModeCombined Mode = "combined"
)

// InvalidYearPolicy decides what a non-numeric year selection does
type InvalidYearPolicy string

const (
	// InvalidYearEmpty stores the selection; it matches no movies
	InvalidYearEmpty InvalidYearPolicy = "empty"

	// InvalidYearKeep ignores the selection and keeps the previous filter
	InvalidYearKeep InvalidYearPolicy = "keep"
)

// ParseMode converts a config string to a Mode
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeExclusive, ModeCombined:
		return m, nil
	case "":
		return ModeCombined, nil
	default:
		return "", fmt.Errorf("unknown filter mode %q", s)
	}
}

// ParseInvalidYearPolicy converts a config string to an InvalidYearPolicy
func ParseInvalidYearPolicy(s string) (InvalidYearPolicy, error) {
	switch p := InvalidYearPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case InvalidYearEmpty, InvalidYearKeep:
		return p, nil
	case "":
		return InvalidYearEmpty, nil
	default:
		return "", fmt.Errorf("unknown invalid year policy %q", s)
	}
}

// Options configures a Session
type Options struct {
	Mode        Mode
	InvalidYear InvalidYearPolicy
}

// DefaultOptions returns combined filtering with empty-match on bad years
func DefaultOptions() Options {
	return Options{Mode: ModeCombined, InvalidYear: InvalidYearEmpty}
}

// Session reduces user actions and collection changes into store updates.
// It is driven from a single goroutine (the UI loop).
type Session struct {
	store  *Store
	opts   Options
	logger *slog.Logger

	collections  Collections
	seenRevision uint64
	seen         bool
}

// NewSession creates a session writing into store
func NewSession(store *Store, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Mode == "" {
		opts.Mode = ModeCombined
	}
	if opts.InvalidYear == "" {
		opts.InvalidYear = InvalidYearEmpty
	}
	return &Session{store: store, opts: opts, logger: logger}
}

// Store returns the store the session writes to
func (s *Session) Store() *Store { return s.store }

// Options returns the session options
func (s *Session) Options() Options { return s.opts }

// Collections returns the collections last delivered to the session
func (s *Session) Collections() Collections { return s.collections }

// OnCollectionsChanged delivers freshly loaded collections. Derived years are
// recomputed only when the full collection's revision changes.
func (s *Session) OnCollectionsChanged(c Collections) {
	s.collections = c

	allChanged := !s.seen || c.Revision != s.seenRevision
	if allChanged {
		s.seen = true
		s.seenRevision = c.Revision
		years := DistinctYears(c.All)
		s.store.SetYears(years)
		s.logger.Debug("recomputed years", "revision", c.Revision, "movies", len(c.All), "years", len(years))
	}

	switch s.opts.Mode {
	case ModeExclusive:
		if allChanged {
			s.store.SetVisible(cloneOrEmpty(c.All))
		}
	default:
		s.recompute()
	}
}

// OnSearchChange records the search term and refilters
func (s *Session) OnSearchChange(text string) {
	patch := domain.CriteriaPatch{SearchTerm: &text}
	if s.opts.Mode == ModeExclusive {
		s.store.Update(patch, FilterBySearchTerm(s.collections.All, text))
	} else {
		s.apply(patch)
	}
	s.logger.Debug("search changed", "term", text, "visible", len(s.store.Visible()))
}

// OnGenreSelect records the genre selection and refilters
func (s *Session) OnGenreSelect(genreID string) {
	patch := domain.CriteriaPatch{SelectedGenre: &genreID}
	if s.opts.Mode == ModeExclusive {
		s.store.Update(patch, FilterByGenre(s.collections.All, genreID))
	} else {
		s.apply(patch)
	}
	s.logger.Debug("genre selected", "genre", genreID, "visible", len(s.store.Visible()))
}

// OnYearSelect records the year selection and refilters. Non-numeric input
// follows the session's InvalidYearPolicy.
func (s *Session) OnYearSelect(yearText string) {
	_, valid := domain.ParseYear(yearText)
	cleared := strings.TrimSpace(yearText) == ""

	if !valid && !(cleared && s.opts.Mode == ModeCombined) && s.opts.InvalidYear == InvalidYearKeep {
		s.logger.Debug("ignoring invalid year", "input", yearText)
		return
	}

	patch := domain.CriteriaPatch{SelectedYear: &yearText}
	if s.opts.Mode == ModeExclusive {
		s.store.Update(patch, FilterByYear(s.collections.All, yearText))
	} else {
		s.apply(patch)
	}
	s.logger.Debug("year selected", "year", yearText, "visible", len(s.store.Visible()))
}

// OnSortSelect records the sort selection and switches source collection
func (s *Session) OnSortSelect(opt domain.SortOption) {
	patch := domain.CriteriaPatch{SelectedSort: &opt}
	if s.opts.Mode == ModeExclusive {
		s.store.Update(patch, SelectSortedCollection(opt, s.collections))
	} else {
		s.apply(patch)
	}
	s.logger.Debug("sort selected", "sort", string(opt), "visible", len(s.store.Visible()))
}

// Reset clears every filter and shows the full collection
func (s *Session) Reset() {
	s.store.Reset(cloneOrEmpty(s.collections.All))
}

// apply merges patch and recomputes the combined view in one store update
func (s *Session) apply(patch domain.CriteriaPatch) {
	criteria := s.store.Criteria().Merge(patch)
	source := SourceFor(criteria.SelectedSort, s.collections)
	s.store.Update(patch, Apply(source, criteria))
}

func (s *Session) recompute() {
	s.apply(domain.CriteriaPatch{})
}

func cloneOrEmpty(movies []domain.Movie) []domain.Movie {
	if movies == nil {
		return []domain.Movie{}
	}
	return slices.Clone(movies)
}
