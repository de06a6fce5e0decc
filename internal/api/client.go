// Package api is the HTTP client for the PlayBox catalog backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/playbox/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "PlayBox-TUI/1.0"
)

// Endpoint paths
const (
	pathAllMovies    = "/api/v1/movies/all-movies"
	pathGenres       = "/api/v1/genre/genres"
	pathNewMovies    = "/api/v1/movies/new-movies"
	pathTopMovies    = "/api/v1/movies/top-movies"
	pathRandomMovies = "/api/v1/movies/random-movies"
)

// Client implements domain.CatalogRepository for the PlayBox backend
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new PlayBox API client. token is optional.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// doRequest performs a GET request and returns the response body
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		// The backend reads the session from the jwt cookie
		req.AddCookie(&http.Cookie{Name: "jwt", Value: c.token})
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("catalog request failed", "error", err, "url", reqURL)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "url", reqURL)
		return nil, fmt.Errorf("%w: %d %s", domain.ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func getJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.Error("JSON parse error", "error", err, "path", path, "bodyLen", len(body))
		return out, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}

// GetMovies returns the full movie collection
func (c *Client) GetMovies(ctx context.Context) ([]domain.Movie, error) {
	dtos, err := getJSON[[]movieDTO](ctx, c, pathAllMovies)
	if err != nil {
		return nil, err
	}
	return MapMovies(dtos, c.baseURL), nil
}

// GetGenres returns all genres
func (c *Client) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	dtos, err := getJSON[[]genreDTO](ctx, c, pathGenres)
	if err != nil {
		return nil, err
	}
	return MapGenres(dtos), nil
}

// GetCollection returns one of the categorized collections
func (c *Client) GetCollection(ctx context.Context, kind domain.CollectionKind) ([]domain.Movie, error) {
	var path string
	switch kind {
	case domain.CollectionNew:
		path = pathNewMovies
	case domain.CollectionTop:
		path = pathTopMovies
	case domain.CollectionRandom:
		path = pathRandomMovies
	case domain.CollectionAll:
		return c.GetMovies(ctx)
	default:
		return nil, fmt.Errorf("unknown collection: %s", kind)
	}

	dtos, err := getJSON[[]movieDTO](ctx, c, path)
	if err != nil {
		return nil, err
	}
	return MapMovies(dtos, c.baseURL), nil
}
