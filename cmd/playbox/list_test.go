package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/playbox/internal/browse"
	"github.com/mmcdole/playbox/internal/catalog"
	"github.com/mmcdole/playbox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	snap catalog.Snapshot
	err  error
}

func (f *fakeSource) LoadCached() catalog.Snapshot { return catalog.Snapshot{} }

func (f *fakeSource) Load(context.Context) (catalog.Snapshot, error) { return f.snap, f.err }

var genres = []domain.Genre{{ID: "g1", Name: "Sci-Fi"}, {ID: "g2", Name: "Romance"}}

func testSnapshot() catalog.Snapshot {
	dune := domain.Movie{ID: "1", Name: "Dune", Genre: "g1", Year: 2021, Rating: 4.5, NumReviews: 2}
	arrival := domain.Movie{ID: "2", Name: "Arrival", Genre: "g1", Year: 2016}
	amelie := domain.Movie{ID: "3", Name: "Amelie", Genre: "g2", Year: 2001}
	loaded := func(movies ...domain.Movie) domain.Query[domain.Movie] {
		return domain.Query[domain.Movie]{State: domain.QueryLoaded, Data: movies, Revision: 1}
	}
	return catalog.Snapshot{
		Movies: loaded(dune, arrival, amelie),
		Genres: domain.Query[domain.Genre]{State: domain.QueryLoaded, Data: genres},
		New:    loaded(amelie),
		Top:    loaded(dune),
		Random: loaded(arrival),
	}
}

func newSession(mode browse.Mode) *browse.Session {
	return browse.NewSession(browse.NewStore(), browse.Options{Mode: mode}, nil)
}

func TestRunList(t *testing.T) {
	tests := []struct {
		name    string
		mode    browse.Mode
		f       flags
		want    []string
		notWant []string
	}{
		{"no flags", browse.ModeCombined, flags{}, []string{"Dune", "Arrival", "Amelie"}, nil},
		{"genre by name", browse.ModeCombined, flags{genre: "sci-fi"}, []string{"Dune", "Arrival"}, []string{"Amelie"}},
		{"genre and year combine", browse.ModeCombined, flags{genre: "g1", year: "2016"}, []string{"Arrival"}, []string{"Dune"}},
		{"exclusive last action wins", browse.ModeExclusive, flags{genre: "g1", year: "2001"}, []string{"Amelie"}, []string{"Dune", "Arrival"}},
		{"sort picks collection", browse.ModeCombined, flags{sort: "top"}, []string{"Dune", "4.5 (2)"}, []string{"Arrival"}},
		{"bad year matches nothing", browse.ModeCombined, flags{year: "abc"}, []string{"No movies"}, []string{"Dune"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			src := &fakeSource{snap: testSnapshot()}

			require.NoError(t, runList(&out, &errOut, src, newSession(tt.mode), tt.f, 0))
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out.String(), s)
			}
			assert.Empty(t, errOut.String())
		})
	}
}

func TestRunList_PartialFailureWarns(t *testing.T) {
	snap := testSnapshot()
	snap.Top = domain.Query[domain.Movie]{State: domain.QueryErrored, Err: domain.ErrServerOffline}

	var out, errOut bytes.Buffer
	src := &fakeSource{snap: snap, err: errors.New("fetch top: server offline")}

	require.NoError(t, runList(&out, &errOut, src, newSession(browse.ModeCombined), flags{sort: "top"}, 0))
	assert.Contains(t, out.String(), "No movies")
	assert.Contains(t, errOut.String(), "warning")
}

func TestRunList_NoMoviesFails(t *testing.T) {
	src := &fakeSource{
		snap: catalog.Snapshot{Movies: domain.Query[domain.Movie]{State: domain.QueryErrored}},
		err:  domain.ErrServerOffline,
	}

	err := runList(&bytes.Buffer{}, &bytes.Buffer{}, src, newSession(browse.ModeCombined), flags{}, 0)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestRunList_SortIsExact(t *testing.T) {
	for _, sort := range []string{"NEW", "Top", "latest"} {
		t.Run(sort, func(t *testing.T) {
			var out, errOut bytes.Buffer
			src := &fakeSource{snap: testSnapshot()}

			require.NoError(t, runList(&out, &errOut, src, newSession(browse.ModeExclusive), flags{sort: sort}, 0))
			assert.Contains(t, out.String(), "No movies")
			assert.Contains(t, errOut.String(), "unknown sort")
		})
	}
}

func TestResolveGenre(t *testing.T) {
	assert.Equal(t, "g2", resolveGenre(genres, " romance "))
	assert.Equal(t, "g1", resolveGenre(genres, "g1"))
	assert.Equal(t, "Horror", resolveGenre(genres, "Horror"))
}
