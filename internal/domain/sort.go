package domain

// SortOption selects which categorized collection is shown.
// It is a selection among pre-fetched lists, not a comparator.
type SortOption string

const (
	SortNone   SortOption = ""
	SortNew    SortOption = "new"
	SortTop    SortOption = "top"
	SortRandom SortOption = "random"
)

// ParseSortOption converts user input without normalizing it. Values other
// than the exact option names are returned as-is and select nothing.
func ParseSortOption(s string) SortOption {
	return SortOption(s)
}

// IsKnown reports whether the option names a categorized collection
func (o SortOption) IsKnown() bool {
	switch o {
	case SortNew, SortTop, SortRandom:
		return true
	default:
		return false
	}
}

// String returns the display name for the sort option
func (o SortOption) String() string {
	switch o {
	case SortNone:
		return "Sort By"
	case SortNew:
		return "New Movies"
	case SortTop:
		return "Top Movies"
	case SortRandom:
		return "Random Movies"
	default:
		return "Unknown"
	}
}

// SortOptions returns the options offered in the sort picker
func SortOptions() []SortOption {
	return []SortOption{SortNone, SortNew, SortTop, SortRandom}
}
