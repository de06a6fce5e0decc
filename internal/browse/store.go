package browse

import (
	"slices"
	"sync"

	"github.com/mmcdole/playbox/internal/domain"
)

// Snapshot is a consistent view of the store for rendering
type Snapshot struct {
	Criteria domain.FilterCriteria
	Visible  []domain.Movie
	Years    []int
}

// Store holds the live filter criteria, the visible movie list and the
// derived years. It performs no validation.
type Store struct {
	mu        sync.RWMutex
	criteria  domain.FilterCriteria
	visible   []domain.Movie
	years     []int
	observers []func(Snapshot)
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		visible: []domain.Movie{},
		years:   []int{},
	}
}

// Criteria returns the current filter criteria
func (s *Store) Criteria() domain.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// SetCriteria shallow-merges patch into the current criteria
func (s *Store) SetCriteria(patch domain.CriteriaPatch) {
	s.mu.Lock()
	s.criteria = s.criteria.Merge(patch)
	s.mu.Unlock()
	s.notify()
}

// Update merges patch into the criteria and replaces the visible list in one
// step, so observers never see one without the other.
func (s *Store) Update(patch domain.CriteriaPatch, movies []domain.Movie) {
	if movies == nil {
		movies = []domain.Movie{}
	}
	s.mu.Lock()
	s.criteria = s.criteria.Merge(patch)
	s.visible = movies
	s.mu.Unlock()
	s.notify()
}

// Reset clears every filter and replaces the visible list in one step
func (s *Store) Reset(movies []domain.Movie) {
	if movies == nil {
		movies = []domain.Movie{}
	}
	s.mu.Lock()
	s.criteria = domain.FilterCriteria{}
	s.visible = movies
	s.mu.Unlock()
	s.notify()
}

// Visible returns a copy of the visible movie list
func (s *Store) Visible() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.visible)
}

// SetVisible replaces the visible movie list wholesale
func (s *Store) SetVisible(movies []domain.Movie) {
	if movies == nil {
		movies = []domain.Movie{}
	}
	s.mu.Lock()
	s.visible = movies
	s.mu.Unlock()
	s.notify()
}

// Years returns a copy of the derived years
func (s *Store) Years() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.years)
}

// SetYears replaces the derived years
func (s *Store) SetYears(years []int) {
	if years == nil {
		years = []int{}
	}
	s.mu.Lock()
	s.years = years
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns the criteria, visible list and years together
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Criteria: s.criteria,
		Visible:  slices.Clone(s.visible),
		Years:    slices.Clone(s.years),
	}
}

// Subscribe registers fn to be called synchronously after every update
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	observers := slices.Clone(s.observers)
	s.mu.RUnlock()
	if len(observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range observers {
		fn(snap)
	}
}
