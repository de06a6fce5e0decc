// Package search ranks movie titles and genre names for the interactive
// pickers and for "did you mean" hints when a search finds nothing.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/playbox/internal/domain"
)

// maxSuggestionDistance caps the edit distance for typo matches; shorter
// terms allow proportionally less
const maxSuggestionDistance = 6

// Suggestion is a movie title close to a search term that matched nothing
type Suggestion struct {
	Movie domain.Movie
	Score int // lower is better
}

// Suggest returns up to limit movies whose titles are close to term.
// It is meant for the case where the plain substring filter is empty,
// so it tolerates typos and out-of-order characters.
func Suggest(term string, movies []domain.Movie, limit int) []Suggestion {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(movies) == 0 || limit <= 0 {
		return nil
	}

	var ranked []Suggestion
	seen := make(map[string]bool, len(movies))
	for _, m := range movies {
		title := strings.ToLower(m.Name)
		if title == "" || seen[m.ID] {
			continue
		}
		score, ok := matchScore(title, term)
		if !ok {
			continue
		}
		seen[m.ID] = true
		ranked = append(ranked, Suggestion{Movie: m, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// matchScore scores title against term; lower is better
func matchScore(title, term string) (int, bool) {
	if title == term {
		return 0, true
	}
	if strings.HasPrefix(title, term) {
		return 10, true
	}
	if strings.Contains(title, term) {
		return 50, true
	}

	// Subsequence match ("drk knt" -> "the dark knight")
	if rank := fuzzy.RankMatchFold(term, title); rank >= 0 {
		return 100 + rank, true
	}

	// Typo tolerance against each word and the whole title
	best := fuzzy.LevenshteinDistance(term, title)
	for _, word := range strings.Fields(title) {
		if d := fuzzy.LevenshteinDistance(term, word); d < best {
			best = d
		}
	}
	if best > min(len(term)/3, maxSuggestionDistance) {
		return 0, false
	}
	return 1000 + best, true
}

// Titles returns the names of the suggestions in order
func Titles(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Movie.Name
	}
	return out
}
