// Package browse computes what the movie grid shows: filtered subsets,
// categorized collections and the distinct years offered in the year picker.
//
// Every function here is pure and tolerates nil input. Results are never nil
// so callers can render them without checks.
package browse

import (
	"strings"

	"github.com/mmcdole/playbox/internal/domain"
)

// Collections holds the raw catalog collections the engine selects from.
// A nil slice means the collection has not arrived (or failed to load).
type Collections struct {
	All    []domain.Movie
	New    []domain.Movie
	Top    []domain.Movie
	Random []domain.Movie

	// Revision identifies the All collection. It changes whenever All is
	// replaced by a refetch.
	Revision uint64
}

// FilterBySearchTerm returns movies whose name contains term, ignoring case.
// An empty term matches everything in original order.
func FilterBySearchTerm(movies []domain.Movie, term string) []domain.Movie {
	needle := strings.ToLower(term)
	return filterMovies(movies, func(m domain.Movie) bool {
		return strings.Contains(strings.ToLower(m.Name), needle)
	})
}

// FilterByGenre returns movies whose genre reference equals genreID.
// An empty genreID is not special: it matches movies without a genre.
func FilterByGenre(movies []domain.Movie, genreID string) []domain.Movie {
	return filterMovies(movies, func(m domain.Movie) bool {
		return m.Genre == genreID
	})
}

// FilterByYear coerces year to an integer and returns the movies released
// that year. Non-numeric input matches nothing.
func FilterByYear(movies []domain.Movie, year string) []domain.Movie {
	y, ok := domain.ParseYear(year)
	if !ok {
		return []domain.Movie{}
	}
	return FilterByYearValue(movies, y)
}

// FilterByYearValue returns the movies released in year
func FilterByYearValue(movies []domain.Movie, year int) []domain.Movie {
	return filterMovies(movies, func(m domain.Movie) bool {
		return m.Year == year
	})
}

// SelectSortedCollection picks one of the pre-fetched categorized
// collections. Order is whatever the server returned; unknown options
// (including SortNone) select nothing.
func SelectSortedCollection(opt domain.SortOption, c Collections) []domain.Movie {
	var selected []domain.Movie
	switch opt {
	case domain.SortNew:
		selected = c.New
	case domain.SortTop:
		selected = c.Top
	case domain.SortRandom:
		selected = c.Random
	}
	if selected == nil {
		return []domain.Movie{}
	}
	return selected
}

// Apply returns the conjunction of every active predicate in criteria over
// source. Sort selection is not applied here; callers pick the source.
func Apply(source []domain.Movie, criteria domain.FilterCriteria) []domain.Movie {
	out := FilterBySearchTerm(source, criteria.SearchTerm)
	if criteria.SelectedGenre != "" {
		out = FilterByGenre(out, criteria.SelectedGenre)
	}
	if strings.TrimSpace(criteria.SelectedYear) != "" {
		year, ok := criteria.Year()
		if !ok {
			return []domain.Movie{}
		}
		out = FilterByYearValue(out, year)
	}
	return out
}

// SourceFor returns the collection a sort option draws from. SortNone means
// the full collection.
func SourceFor(opt domain.SortOption, c Collections) []domain.Movie {
	if opt == domain.SortNone {
		if c.All == nil {
			return []domain.Movie{}
		}
		return c.All
	}
	return SelectSortedCollection(opt, c)
}

func filterMovies(movies []domain.Movie, keep func(domain.Movie) bool) []domain.Movie {
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
