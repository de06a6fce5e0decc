package api

import (
	"strings"
	"time"

	"github.com/mmcdole/playbox/internal/domain"
)

// MapMovies converts backend movies to domain movies
func MapMovies(dtos []movieDTO, serverURL string) []domain.Movie {
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			continue
		}
		movies = append(movies, mapMovie(d, serverURL))
	}
	return movies
}

func mapMovie(d movieDTO, serverURL string) domain.Movie {
	m := domain.Movie{
		ID:         d.ID,
		Name:       d.Name,
		Genre:      d.Genre,
		Year:       d.Year,
		Detail:     d.Detail,
		Image:      resolveImageURL(d.Image, serverURL),
		Cast:       d.Cast,
		NumReviews: d.NumReviews,
	}

	if len(d.Reviews) > 0 {
		var total float64
		for _, r := range d.Reviews {
			total += r.Rating
		}
		m.Rating = total / float64(len(d.Reviews))
		if m.NumReviews == 0 {
			m.NumReviews = len(d.Reviews)
		}
	}

	if d.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
			m.CreatedAt = t
		}
	}

	return m
}

// MapGenres converts backend genres to domain genres
func MapGenres(dtos []genreDTO) []domain.Genre {
	genres := make([]domain.Genre, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			continue
		}
		genres = append(genres, domain.Genre{ID: d.ID, Name: d.Name})
	}
	return genres
}

// resolveImageURL makes server-relative upload paths absolute
func resolveImageURL(path, serverURL string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(serverURL, "/") + "/" + strings.TrimLeft(path, "/")
}
