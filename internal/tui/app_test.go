package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/playbox/internal/browse"
	"github.com/mmcdole/playbox/internal/catalog"
	"github.com/mmcdole/playbox/internal/domain"
	"github.com/mmcdole/playbox/internal/refresh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls  int
	err    error
	status refresh.Status
}

func (f *fakeRefresher) RunNow(context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeRefresher) Status() refresh.Status { return f.status }

var (
	dune    = domain.Movie{ID: "1", Name: "Dune", Genre: "g1", Year: 2021}
	arrival = domain.Movie{ID: "2", Name: "Arrival", Genre: "g1", Year: 2016}
	amelie  = domain.Movie{ID: "3", Name: "Amelie", Genre: "g2", Year: 2001}
)

func loadedSnapshot() catalog.Snapshot {
	loaded := func(movies ...domain.Movie) domain.Query[domain.Movie] {
		return domain.Query[domain.Movie]{State: domain.QueryLoaded, Data: movies, Revision: 1}
	}
	return catalog.Snapshot{
		Movies: loaded(dune, arrival, amelie),
		Genres: domain.Query[domain.Genre]{State: domain.QueryLoaded, Data: []domain.Genre{
			{ID: "g1", Name: "Sci-Fi"},
			{ID: "g2", Name: "Romance"},
		}, Revision: 2},
		New:    loaded(dune),
		Top:    loaded(arrival),
		Random: loaded(amelie),
	}
}

func newTestModel(t *testing.T) (Model, *fakeRefresher) {
	t.Helper()
	refresher := &fakeRefresher{}
	session := browse.NewSession(browse.NewStore(), browse.DefaultOptions(), nil)
	m := NewModel(session, refresher, NewSnapshotObserver(), Options{Columns: 3, ShowBanner: true})

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = send(t, m, CatalogUpdatedMsg{Snapshot: loadedSnapshot()})
	m = send(t, m, CatalogLoadDoneMsg{})
	return m, refresher
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = send(t, m, msg)
	}
	return m
}

func visibleNames(m Model) []string {
	var names []string
	for _, mv := range m.Grid.Movies() {
		names = append(names, mv.Name)
	}
	return names
}

func TestModel_SnapshotPopulatesGrid(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, []string{"Dune", "Arrival", "Amelie"}, visibleNames(m))
	assert.Equal(t, []int{2021, 2016, 2001}, m.years)
	assert.False(t, m.loading())

	view := m.View()
	assert.Contains(t, view, "PlayBox")
	assert.Contains(t, view, "3 movies")
}

func TestModel_SearchFiltersOnEveryKeystroke(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "/")
	require.Equal(t, StateSearching, m.State)

	m = press(t, m, "a")
	assert.Equal(t, []string{"Arrival", "Amelie"}, visibleNames(m))

	m = press(t, m, "r")
	assert.Equal(t, []string{"Arrival"}, visibleNames(m))

	// Keys typed while searching never trigger bindings
	assert.Equal(t, StateSearching, m.State)

	m = press(t, m, "enter")
	assert.Equal(t, StateBrowsing, m.State)
	assert.Equal(t, "ar", m.criteria.SearchTerm)
}

func TestModel_EmptySearchSuggestsTitles(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "/", "a", "r", "i", "v", "a", "l")
	assert.Empty(t, visibleNames(m))

	view := m.View()
	assert.Contains(t, view, "No movies")
	assert.Contains(t, view, "Did you mean")
	assert.Contains(t, view, "Arrival")
}

func TestModel_PickersCombine(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "g")
	require.True(t, m.GenrePicker.IsVisible())
	m = press(t, m, "s", "c", "i", "enter")
	assert.False(t, m.GenrePicker.IsVisible())
	assert.Equal(t, "g1", m.criteria.SelectedGenre)
	assert.Equal(t, []string{"Dune", "Arrival"}, visibleNames(m))

	m = press(t, m, "y")
	require.True(t, m.YearPicker.IsVisible())
	m = press(t, m, "j", "enter") // All Years, 2021, ...
	assert.Equal(t, "2021", m.criteria.SelectedYear)
	assert.Equal(t, []string{"Dune"}, visibleNames(m))

	m = press(t, m, "s", "j", "j", "enter") // Top Movies
	assert.Equal(t, domain.SortTop, m.criteria.SelectedSort)
	assert.Empty(t, visibleNames(m))
	assert.Contains(t, m.View(), "No movies")

	m = press(t, m, "x")
	assert.True(t, m.criteria.IsZero())
	assert.Equal(t, []string{"Dune", "Arrival", "Amelie"}, visibleNames(m))
	assert.Equal(t, "Filters cleared", m.StatusMsg)

	m = press(t, m, "x")
	assert.Equal(t, "No filters to clear", m.StatusMsg)
}

func TestModel_PickerEscapeKeepsCriteria(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "y", "j", "esc")
	assert.False(t, m.YearPicker.IsVisible())
	assert.Empty(t, m.criteria.SelectedYear)
	assert.Len(t, visibleNames(m), 3)
}

func TestModel_RefreshOnlyWhenIdle(t *testing.T) {
	refresher := &fakeRefresher{}
	session := browse.NewSession(browse.NewStore(), browse.DefaultOptions(), nil)
	m := NewModel(session, refresher, NewSnapshotObserver(), Options{Columns: 2})
	require.True(t, m.Refreshing)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd, "refresh ignored while initial load runs")

	m = send(t, next.(Model), CatalogLoadDoneMsg{})
	assert.False(t, m.Refreshing)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.NotNil(t, cmd)
	assert.True(t, next.(Model).Refreshing)
}

func TestRefreshCatalogCmd_RunsThroughRefresher(t *testing.T) {
	r := &fakeRefresher{err: refresh.ErrAlreadyRunning}

	msg := RefreshCatalogCmd(r)()
	done, ok := msg.(CatalogLoadDoneMsg)
	require.True(t, ok)
	assert.Equal(t, 1, r.calls)
	assert.ErrorIs(t, done.Err, refresh.ErrAlreadyRunning)
}

func TestModel_RefreshAlreadyRunningIsNotAnError(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, CatalogLoadDoneMsg{Err: refresh.ErrAlreadyRunning})
	assert.False(t, m.Refreshing)
	assert.False(t, m.StatusIsErr)
	assert.Equal(t, "Refresh already in progress", m.StatusMsg)
}

func TestModel_StatusShowsFetchAndScheduleTimes(t *testing.T) {
	r := &fakeRefresher{status: refresh.Status{
		Interval: 10 * time.Minute,
		NextRun:  time.Now().Add(5*time.Minute + 30*time.Second),
	}}
	session := browse.NewSession(browse.NewStore(), browse.DefaultOptions(), nil)
	m := NewModel(session, r, NewSnapshotObserver(), Options{Columns: 2})
	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 30})

	snap := loadedSnapshot()
	snap.FetchedAt = time.Now().Add(-2 * time.Hour)
	m = send(t, m, CatalogUpdatedMsg{Snapshot: snap})
	m = send(t, m, CatalogLoadDoneMsg{})

	status := m.renderStatus()
	assert.Contains(t, status, "updated 2h ago")
	assert.Contains(t, status, "next 5m")
	assert.Contains(t, status, "3 movies")
}

func TestShortDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "0s"},
		{45 * time.Second, "45s"},
		{12 * time.Minute, "12m"},
		{3 * time.Hour, "3h"},
		{50 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shortDuration(tt.in))
	}
}

func TestModel_LoadErrorShowsStatus(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, CatalogLoadDoneMsg{Err: errors.New("fetch movies: server offline")})
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "server offline")

	// A stale clear does not wipe a newer message
	m = send(t, m, ClearStatusMsg{Seq: m.statusSeq - 1})
	assert.NotEmpty(t, m.StatusMsg)
	m = send(t, m, ClearStatusMsg{Seq: m.statusSeq})
	assert.Empty(t, m.StatusMsg)
}

func TestModel_ErroredCatalogRendersEmptyGrid(t *testing.T) {
	refresher := &fakeRefresher{}
	session := browse.NewSession(browse.NewStore(), browse.DefaultOptions(), nil)
	m := NewModel(session, refresher, NewSnapshotObserver(), Options{Columns: 2})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	offline := errors.New("server offline")
	m = send(t, m, CatalogUpdatedMsg{Snapshot: catalog.Snapshot{
		Movies: domain.Query[domain.Movie]{State: domain.QueryErrored, Err: offline},
		Genres: domain.Query[domain.Genre]{State: domain.QueryErrored, Err: offline},
		New:    domain.Query[domain.Movie]{State: domain.QueryErrored, Err: offline},
		Top:    domain.Query[domain.Movie]{State: domain.QueryErrored, Err: offline},
		Random: domain.Query[domain.Movie]{State: domain.QueryErrored, Err: offline},
	}})
	m = send(t, m, CatalogLoadDoneMsg{})

	view := m.View()
	assert.Contains(t, view, "No movies")
	assert.Contains(t, view, "offline")
}

func TestSnapshotObserver_KeepsLatest(t *testing.T) {
	obs := NewSnapshotObserver()

	first := loadedSnapshot()
	second := loadedSnapshot()
	second.Movies.Revision = 7

	obs.OnSnapshot(first)
	obs.OnSnapshot(second)

	msg := WaitForSnapshotCmd(obs.Channel())()
	updated, ok := msg.(CatalogUpdatedMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(7), updated.Snapshot.Movies.Revision)
}
