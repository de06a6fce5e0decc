package search

import (
	"strings"

	"github.com/mmcdole/playbox/internal/domain"
	"github.com/sahilm/fuzzy"
)

// GenreIndex implements sahilm/fuzzy.Source over genre names
type GenreIndex struct {
	genres     []domain.Genre
	lowerNames []string
}

// NewGenreIndex builds an index over genres
func NewGenreIndex(genres []domain.Genre) *GenreIndex {
	lower := make([]string, len(genres))
	for i, g := range genres {
		lower[i] = strings.ToLower(g.Name)
	}
	return &GenreIndex{genres: genres, lowerNames: lower}
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *GenreIndex) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of genres (implements fuzzy.Source)
func (idx *GenreIndex) Len() int { return len(idx.genres) }

// GenreMatch is a genre with the character positions that matched
type GenreMatch struct {
	Genre          domain.Genre
	MatchedIndexes []int
}

// Narrow returns the genres matching query, best first. An empty query
// returns every genre in its original order.
func (idx *GenreIndex) Narrow(query string) []GenreMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]GenreMatch, len(idx.genres))
		for i, g := range idx.genres {
			out[i] = GenreMatch{Genre: g}
		}
		return out
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), idx)
	out := make([]GenreMatch, len(matches))
	for i, m := range matches {
		out[i] = GenreMatch{Genre: idx.genres[m.Index], MatchedIndexes: m.MatchedIndexes}
	}
	return out
}
