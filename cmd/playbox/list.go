package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/playbox/internal/browse"
	"github.com/mmcdole/playbox/internal/catalog"
	"github.com/mmcdole/playbox/internal/domain"
)

// catalogSource is the part of catalog.Service list mode needs
type catalogSource interface {
	LoadCached() catalog.Snapshot
	Load(ctx context.Context) (catalog.Snapshot, error)
}

// runList fetches the catalog once, applies the filter flags through the
// browse session and prints the visible movies
func runList(out, errOut io.Writer, svc catalogSource, session *browse.Session, f flags, timeout time.Duration) error {
	svc.LoadCached()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	snap, err := svc.Load(ctx)
	if err != nil {
		if snap.Movies.Absent() {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		fmt.Fprintf(errOut, "warning: %v (showing cached data)\n", err)
	}

	genres := snap.Genres.Items()
	session.OnCollectionsChanged(snap.Collections())
	applyFlags(errOut, session, genres, f)

	fmt.Fprintln(out, renderMovieTable(session.Store().Visible(), genres))
	return nil
}

// applyFlags replays the filter flags as user actions. Sort goes first
// because it picks the source collection.
func applyFlags(errOut io.Writer, session *browse.Session, genres []domain.Genre, f flags) {
	if f.sort != "" {
		opt := domain.ParseSortOption(f.sort)
		if !opt.IsKnown() {
			fmt.Fprintf(errOut, "warning: unknown sort %q selects no movies (use new, top or random)\n", f.sort)
		}
		session.OnSortSelect(opt)
	}
	if f.search != "" {
		session.OnSearchChange(f.search)
	}
	if f.genre != "" {
		session.OnGenreSelect(resolveGenre(genres, f.genre))
	}
	if f.year != "" {
		session.OnYearSelect(f.year)
	}
}

// resolveGenre maps a genre name (case-insensitive) or ID to its ID.
// Unknown input is returned unchanged and matches nothing.
func resolveGenre(genres []domain.Genre, input string) string {
	input = strings.TrimSpace(input)
	for _, g := range genres {
		if strings.EqualFold(g.Name, input) {
			return g.ID
		}
	}
	return input
}

// renderMovieTable renders movies as a borderless table
func renderMovieTable(movies []domain.Movie, genres []domain.Genre) string {
	if len(movies) == 0 {
		return "No movies"
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		Headers("TITLE", "YEAR", "GENRE", "RATING")

	for _, m := range movies {
		year := ""
		if m.Year != 0 {
			year = strconv.Itoa(m.Year)
		}
		t.Row(m.Name, year, domain.GenreName(genres, m.Genre), m.FormattedRating())
	}

	return t.String()
}
