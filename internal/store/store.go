package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/playbox/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketMovies      = []byte("movies")
	bucketGenres      = []byte("genres")
	bucketCollections = []byte("collections")
	bucketMeta        = []byte("meta")
)

var allBuckets = [][]byte{bucketMovies, bucketGenres, bucketCollections, bucketMeta}

// CatalogStore implements domain.Store using BoltDB.
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	now func() time.Time
}

// NewCatalogStore opens (or creates) the cache for serverURL under
// baseCacheDir. An empty baseCacheDir gives a memory-only store.
func NewCatalogStore(baseCacheDir, serverURL string) (*CatalogStore, error) {
	if baseCacheDir == "" {
		return &CatalogStore{cache: make(map[string][]byte), now: time.Now}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "playbox.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &CatalogStore{db: db, cache: make(map[string][]byte), now: time.Now}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *CatalogStore) touch(kind domain.CollectionKind) error {
	return s.set(bucketMeta, "ts:"+string(kind), s.now().Unix())
}

// === Movies ===

func (s *CatalogStore) GetMovies() ([]domain.Movie, bool) {
	var movies []domain.Movie
	ok := s.get(bucketMovies, "all", &movies)
	return movies, ok
}

func (s *CatalogStore) SaveMovies(movies []domain.Movie) error {
	if err := s.set(bucketMovies, "all", movies); err != nil {
		return err
	}
	return s.touch(domain.CollectionAll)
}

// === Genres ===

func (s *CatalogStore) GetGenres() ([]domain.Genre, bool) {
	var genres []domain.Genre
	ok := s.get(bucketGenres, "list", &genres)
	return genres, ok
}

func (s *CatalogStore) SaveGenres(genres []domain.Genre) error {
	return s.set(bucketGenres, "list", genres)
}

// === Categorized collections ===

func (s *CatalogStore) GetCollection(kind domain.CollectionKind) ([]domain.Movie, bool) {
	if kind == domain.CollectionAll {
		return s.GetMovies()
	}
	var movies []domain.Movie
	ok := s.get(bucketCollections, string(kind), &movies)
	return movies, ok
}

func (s *CatalogStore) SaveCollection(kind domain.CollectionKind, movies []domain.Movie) error {
	if kind == domain.CollectionAll {
		return s.SaveMovies(movies)
	}
	if err := s.set(bucketCollections, string(kind), movies); err != nil {
		return err
	}
	return s.touch(kind)
}

// FetchedAt returns when a collection was last saved
func (s *CatalogStore) FetchedAt(kind domain.CollectionKind) (int64, bool) {
	var ts int64
	ok := s.get(bucketMeta, "ts:"+string(kind), &ts)
	return ts, ok
}

// InvalidateAll wipes the entire cache
func (s *CatalogStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
