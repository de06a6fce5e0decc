package domain

import (
	"strconv"
	"strings"
)

// FilterCriteria is the user's current search/genre/year/sort selection.
// Exactly one is live per browse session.
type FilterCriteria struct {
	SearchTerm    string
	SelectedGenre string // Genre ID, empty means no genre selected
	SelectedYear  string // Year as entered, empty means no year selected
	SelectedSort  SortOption
}

// Year returns the selected year as an integer. ok is false when no year is
// selected or the text is not numeric.
func (c FilterCriteria) Year() (year int, ok bool) {
	return ParseYear(c.SelectedYear)
}

// IsZero reports whether no filter is active
func (c FilterCriteria) IsZero() bool {
	return c == FilterCriteria{}
}

// CriteriaPatch is a partial update. Nil fields are left untouched.
type CriteriaPatch struct {
	SearchTerm    *string
	SelectedGenre *string
	SelectedYear  *string
	SelectedSort  *SortOption
}

// Merge applies the non-nil fields of p onto c (shallow merge)
func (c FilterCriteria) Merge(p CriteriaPatch) FilterCriteria {
	if p.SearchTerm != nil {
		c.SearchTerm = *p.SearchTerm
	}
	if p.SelectedGenre != nil {
		c.SelectedGenre = *p.SelectedGenre
	}
	if p.SelectedYear != nil {
		c.SelectedYear = *p.SelectedYear
	}
	if p.SelectedSort != nil {
		c.SelectedSort = *p.SelectedSort
	}
	return c
}

// ParseYear coerces year text to an integer. Surrounding whitespace and a
// leading sign are accepted; anything else non-numeric is rejected.
func ParseYear(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return year, true
}
