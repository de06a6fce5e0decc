package browse

import (
	"slices"

	"github.com/mmcdole/playbox/internal/domain"
)

// DistinctYears returns every year present in movies exactly once, in order
// of first appearance.
func DistinctYears(movies []domain.Movie) []int {
	seen := make(map[int]bool, len(movies))
	years := make([]int, 0)
	for _, m := range movies {
		if seen[m.Year] {
			continue
		}
		seen[m.Year] = true
		years = append(years, m.Year)
	}
	return years
}

// SortedYearsDesc returns a newest-first copy of years for display
func SortedYearsDesc(years []int) []int {
	sorted := slices.Clone(years)
	slices.Sort(sorted)
	slices.Reverse(sorted)
	return sorted
}
