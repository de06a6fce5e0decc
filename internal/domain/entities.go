package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Movie is a catalog entry served by the PlayBox backend
type Movie struct {
	ID    string // Server-specific unique identifier
	Name  string // Display title
	Genre string // Genre ID reference
	Year  int    // Release year

	// Display attributes (not used for filtering)
	Detail     string    // Plot synopsis
	Image      string    // Poster URL or path
	Cast       []string  // Cast members
	Rating     float64   // Average review rating (0-5 scale)
	NumReviews int       // Number of reviews
	CreatedAt  time.Time // When the movie was added to the catalog
}

// Description returns secondary info for a movie card
func (m Movie) Description() string {
	if m.Year > 0 {
		return fmt.Sprintf("%d", m.Year)
	}
	return ""
}

// Equal reports whether two movies carry the same content
func (m Movie) Equal(o Movie) bool {
	return m.ID == o.ID && m.Name == o.Name && m.Genre == o.Genre && m.Year == o.Year &&
		m.Detail == o.Detail && m.Image == o.Image && slices.Equal(m.Cast, o.Cast) &&
		m.Rating == o.Rating && m.NumReviews == o.NumReviews && m.CreatedAt.Equal(o.CreatedAt)
}

// FormattedRating returns the rating with review count (e.g., "4.2 (12)")
func (m Movie) FormattedRating() string {
	if m.NumReviews == 0 {
		return "No reviews"
	}
	return fmt.Sprintf("%.1f (%d)", m.Rating, m.NumReviews)
}

// CastLine joins the first n cast members
func (m Movie) CastLine(n int) string {
	if len(m.Cast) == 0 || n <= 0 {
		return ""
	}
	if len(m.Cast) <= n {
		return strings.Join(m.Cast, ", ")
	}
	return strings.Join(m.Cast[:n], ", ") + ", ..."
}

// Genre is a named category referenced by movies
type Genre struct {
	ID   string
	Name string
}

// GenreName resolves a genre ID against a genre list, falling back to the ID
func GenreName(genres []Genre, id string) string {
	for _, g := range genres {
		if g.ID == id {
			return g.Name
		}
	}
	return id
}

// CollectionKind identifies one of the catalog collections
type CollectionKind string

const (
	CollectionAll    CollectionKind = "all"
	CollectionNew    CollectionKind = "new"
	CollectionTop    CollectionKind = "top"
	CollectionRandom CollectionKind = "random"
)

// CategorizedKinds returns the pre-fetched categorized collections
func CategorizedKinds() []CollectionKind {
	return []CollectionKind{CollectionNew, CollectionTop, CollectionRandom}
}
