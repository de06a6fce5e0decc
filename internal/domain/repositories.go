package domain

import "context"

// CatalogRepository provides network access to the catalog collections
// (implemented by the API client)
type CatalogRepository interface {
	// GetMovies returns the full movie collection
	GetMovies(ctx context.Context) ([]Movie, error)

	// GetGenres returns all genres
	GetGenres(ctx context.Context) ([]Genre, error)

	// GetCollection returns a categorized collection (new, top or random)
	GetCollection(ctx context.Context, kind CollectionKind) ([]Movie, error)
}
