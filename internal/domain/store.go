package domain

// Store handles the local collection cache (BoltDB + memory).
type Store interface {
	GetMovies() ([]Movie, bool)
	SaveMovies(movies []Movie) error

	GetGenres() ([]Genre, bool)
	SaveGenres(genres []Genre) error

	// Categorized collections (new, top, random)
	GetCollection(kind CollectionKind) ([]Movie, bool)
	SaveCollection(kind CollectionKind, movies []Movie) error

	// FetchedAt returns the unix timestamp of the last save for a collection
	FetchedAt(kind CollectionKind) (int64, bool)

	Close() error
}
