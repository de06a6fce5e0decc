// Package catalog acquires the movie, genre and categorized collections from
// the catalog server, backed by the local cache.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mmcdole/playbox/internal/domain"
)

// Service orchestrates catalog client + store operations.
type Service struct {
	repo   domain.CatalogRepository
	store  domain.Store
	logger *slog.Logger

	loadMu sync.Mutex // serializes Load

	mu        sync.RWMutex
	snap      Snapshot
	revision  uint64
	observers []func(Snapshot)
}

// NewService creates a new catalog service. Every query starts as loading.
func NewService(repo domain.CatalogRepository, store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, store: store, logger: logger}
}

// Snapshot returns the current state of every query
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers fn to receive every published snapshot
func (s *Service) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// LoadCached publishes whatever the cache holds. Queries with no cached data
// stay loading.
func (s *Service) LoadCached() Snapshot {
	s.mu.Lock()
	if movies, ok := s.store.GetMovies(); ok {
		s.snap.Movies = s.cachedQuery(movies)
	}
	if genres, ok := s.store.GetGenres(); ok {
		s.snap.Genres = domain.Query[domain.Genre]{State: domain.QueryLoaded, Data: genres, Revision: s.nextRevision(), FromCache: true}
	}
	for _, kind := range domain.CategorizedKinds() {
		if movies, ok := s.store.GetCollection(kind); ok {
			*s.snap.collection(kind) = s.cachedQuery(movies)
		}
	}
	if ts, ok := s.store.FetchedAt(domain.CollectionAll); ok {
		s.snap.FetchedAt = time.Unix(ts, 0)
	}
	snap := s.snap
	s.mu.Unlock()

	s.logger.Debug("loaded cached catalog", "movies", len(snap.Movies.Data), "genres", len(snap.Genres.Data))
	s.publish(snap)
	return snap
}

// Load fetches all five collections concurrently and publishes the result.
// A failed query keeps previously loaded data; with nothing to keep it
// becomes errored. A query whose content is unchanged keeps its revision.
// Calls are serialized so an older fetch never overwrites a newer one.
// The returned error joins every failure.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	var (
		wg                     sync.WaitGroup
		movies, newM, top, rnd fetchResult[domain.Movie]
		genres                 fetchResult[domain.Genre]
	)

	wg.Add(5)
	go func() { defer wg.Done(); movies = fetch(ctx, s.repo.GetMovies) }()
	go func() { defer wg.Done(); genres = fetch(ctx, s.repo.GetGenres) }()
	go func() { defer wg.Done(); newM = fetch(ctx, s.collectionFetcher(domain.CollectionNew)) }()
	go func() { defer wg.Done(); top = fetch(ctx, s.collectionFetcher(domain.CollectionTop)) }()
	go func() { defer wg.Done(); rnd = fetch(ctx, s.collectionFetcher(domain.CollectionRandom)) }()
	wg.Wait()

	s.persist(movies, genres, newM, top, rnd)

	s.mu.Lock()
	s.snap.Movies = applyResult(s.snap.Movies, movies, domain.Movie.Equal, s.nextRevision)
	s.snap.Genres = applyResult(s.snap.Genres, genres, sameGenre, s.nextRevision)
	s.snap.New = applyResult(s.snap.New, newM, domain.Movie.Equal, s.nextRevision)
	s.snap.Top = applyResult(s.snap.Top, top, domain.Movie.Equal, s.nextRevision)
	s.snap.Random = applyResult(s.snap.Random, rnd, domain.Movie.Equal, s.nextRevision)
	if movies.err == nil {
		s.snap.FetchedAt = time.Now()
	}
	snap := s.snap
	s.mu.Unlock()

	errs := labelErrors(map[string]error{
		"movies": movies.err,
		"genres": genres.err,
		"new":    newM.err,
		"top":    top.err,
		"random": rnd.err,
	})
	if errs != nil {
		s.logger.Error("catalog load incomplete", "error", errs)
	} else {
		s.logger.Debug("fetched catalog", "movies", len(movies.data), "genres", len(genres.data),
			"new", len(newM.data), "top", len(top.data), "random", len(rnd.data))
	}

	s.publish(snap)
	return snap, errs
}

// --- Private helpers ---

type fetchResult[T any] struct {
	data []T
	err  error
}

func fetch[T any](ctx context.Context, fn func(context.Context) ([]T, error)) fetchResult[T] {
	data, err := fn(ctx)
	return fetchResult[T]{data: data, err: err}
}

func (s *Service) collectionFetcher(kind domain.CollectionKind) func(context.Context) ([]domain.Movie, error) {
	return func(ctx context.Context) ([]domain.Movie, error) {
		return s.repo.GetCollection(ctx, kind)
	}
}

// persist saves successful fetches to the cache. Save failures are logged
// and never fail the load.
func (s *Service) persist(movies fetchResult[domain.Movie], genres fetchResult[domain.Genre], newM, top, rnd fetchResult[domain.Movie]) {
	if movies.err == nil {
		if err := s.store.SaveMovies(movies.data); err != nil {
			s.logger.Error("failed to save movies", "error", err)
		}
	}
	if genres.err == nil {
		if err := s.store.SaveGenres(genres.data); err != nil {
			s.logger.Error("failed to save genres", "error", err)
		}
	}
	lists := map[domain.CollectionKind]fetchResult[domain.Movie]{
		domain.CollectionNew:    newM,
		domain.CollectionTop:    top,
		domain.CollectionRandom: rnd,
	}
	for _, kind := range domain.CategorizedKinds() {
		res := lists[kind]
		if res.err != nil {
			continue
		}
		if err := s.store.SaveCollection(kind, res.data); err != nil {
			s.logger.Error("failed to save collection", "error", err, "kind", kind)
		}
	}
}

// applyResult folds a fetch result into the previous query state. Loaded data
// with the same content keeps its revision so consumers see no change.
func applyResult[T any](prev domain.Query[T], res fetchResult[T], eq func(a, b T) bool, next func() uint64) domain.Query[T] {
	if res.err != nil {
		if prev.State == domain.QueryLoaded {
			prev.Err = res.err
			return prev
		}
		return domain.Query[T]{State: domain.QueryErrored, Err: res.err, Revision: prev.Revision}
	}
	data := res.data
	if data == nil {
		data = []T{}
	}
	if prev.State == domain.QueryLoaded && slices.EqualFunc(prev.Data, data, eq) {
		return domain.Query[T]{State: domain.QueryLoaded, Data: prev.Data, Revision: prev.Revision}
	}
	return domain.Query[T]{State: domain.QueryLoaded, Data: data, Revision: next()}
}

func sameGenre(a, b domain.Genre) bool { return a == b }

func (s *Service) cachedQuery(movies []domain.Movie) domain.Query[domain.Movie] {
	return domain.Query[domain.Movie]{State: domain.QueryLoaded, Data: movies, Revision: s.nextRevision(), FromCache: true}
}

// nextRevision must be called with s.mu held
func (s *Service) nextRevision() uint64 {
	s.revision++
	return s.revision
}

func (s *Service) publish(snap Snapshot) {
	s.mu.RLock()
	observers := slices.Clone(s.observers)
	s.mu.RUnlock()
	for _, fn := range observers {
		fn(snap)
	}
}

func labelErrors(errs map[string]error) error {
	var joined []error
	for _, name := range []string{"movies", "genres", "new", "top", "random"} {
		if err := errs[name]; err != nil {
			joined = append(joined, fmt.Errorf("fetch %s: %w", name, err))
		}
	}
	return errors.Join(joined...)
}
