package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/playbox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func makeMovies(n int) []domain.Movie {
	movies := make([]domain.Movie, n)
	for i := range movies {
		movies[i] = domain.Movie{ID: fmt.Sprintf("m%d", i), Name: fmt.Sprintf("Movie %d", i), Year: 2000 + i}
	}
	return movies
}

func newSizedGrid(columns, n int) MovieGrid {
	g := NewMovieGrid(columns)
	g.SetSize(columns*MinCardWidth*2, 2*CardHeight+ScrollIndicatorLines)
	g.SetMovies(makeMovies(n))
	return g
}

func TestMovieGrid_Navigation(t *testing.T) {
	g := newSizedGrid(3, 8) // rows: [0 1 2] [3 4 5] [6 7]

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 3, g.Cursor())

	g, _ = g.Update(runeKey("l"))
	g, _ = g.Update(runeKey("l"))
	assert.Equal(t, 5, g.Cursor())

	// Down into the partial last row lands on the last movie
	g, _ = g.Update(runeKey("j"))
	assert.Equal(t, 7, g.Cursor())

	g, _ = g.Update(runeKey("j"))
	assert.Equal(t, 7, g.Cursor())

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, g.Cursor())

	g, _ = g.Update(runeKey("h"))
	assert.Equal(t, 0, g.Cursor())

	g, _ = g.Update(runeKey("G"))
	assert.Equal(t, 7, g.Cursor())
}

func TestMovieGrid_ScrollsToCursor(t *testing.T) {
	g := newSizedGrid(2, 10) // 5 rows, 2 visible

	g, _ = g.Update(runeKey("G"))
	assert.Equal(t, 3, g.offset)
	assert.Contains(t, g.View(), "↑ more")
	assert.Contains(t, g.View(), "Movie 9")
	assert.NotContains(t, g.View(), "Movie 0")
}

func TestMovieGrid_SetMoviesKeepsSelection(t *testing.T) {
	g := newSizedGrid(3, 6)
	g, _ = g.Update(runeKey("l"))
	g, _ = g.Update(runeKey("l"))
	require.Equal(t, "m2", g.movies[g.Cursor()].ID)

	movies := makeMovies(6)
	g.SetMovies(movies[2:])
	sel, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "m2", sel.ID)

	g.SetMovies(movies[3:])
	assert.Equal(t, 0, g.Cursor())
}

func TestMovieGrid_EmptyView(t *testing.T) {
	g := NewMovieGrid(4)
	g.SetSize(80, 20)
	g.SetMovies([]domain.Movie{})

	_, ok := g.Selected()
	assert.False(t, ok)
	assert.Contains(t, g.View(), "No movies")
	assert.NotContains(t, g.View(), "Did you mean")

	g.SetSuggestions("arival", []string{"Arrival"})
	assert.Contains(t, g.View(), "Did you mean")
	assert.Contains(t, g.View(), "Arrival")

	// Keys on an empty grid are ignored
	g, _ = g.Update(runeKey("j"))
	assert.Equal(t, 0, g.Cursor())
}

func TestMovieGrid_CardShowsGenreAndRating(t *testing.T) {
	g := NewMovieGrid(1)
	g.SetSize(60, CardHeight+ScrollIndicatorLines)
	g.SetGenres([]domain.Genre{{ID: "g1", Name: "Sci-Fi"}})
	g.SetMovies([]domain.Movie{{ID: "1", Name: "Dune", Genre: "g1", Year: 2021, Rating: 4.5, NumReviews: 2}})

	view := g.View()
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "2021 · Sci-Fi")
	assert.Contains(t, view, "4.5 (2)")
}

func TestMovieGrid_ColumnsShrinkWithWidth(t *testing.T) {
	g := NewMovieGrid(4)
	g.SetSize(MinCardWidth*2, 30)
	assert.Equal(t, 2, g.Columns())

	g.SetSize(5, 30)
	assert.Equal(t, 1, g.Columns())
}

func TestPicker_FixedList(t *testing.T) {
	p := NewPicker()
	p.Show("Year", []PickerItem{
		{Label: "All Years", Value: ""},
		{Label: "2021", Value: "2021"},
		{Label: "2016", Value: "2016"},
	}, "2016")
	require.True(t, p.IsVisible())
	assert.Equal(t, 2, p.cursor)

	p, _, chosen := p.Update(runeKey("k"))
	assert.Nil(t, chosen)

	p, _, chosen = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, chosen)
	assert.Equal(t, "2021", chosen.Value)
	assert.False(t, p.IsVisible())
}

func TestPicker_Filterable(t *testing.T) {
	all := []PickerItem{{Label: "All Genres"}, {Label: "Drama", Value: "g1"}, {Label: "Sci-Fi", Value: "g2"}}
	narrow := func(q string) []PickerItem {
		if q == "" {
			return all
		}
		var out []PickerItem
		for _, it := range all[1:] {
			if it.Label[0] == q[0]-'a'+'A' {
				out = append(out, it)
			}
		}
		return out
	}

	p := NewPicker()
	p.ShowFilterable("Genre", narrow, "")
	assert.Len(t, p.Items(), 3)

	// Letters go to the filter, not to navigation
	p, _, _ = p.Update(runeKey("s"))
	require.Len(t, p.Items(), 1)
	assert.Equal(t, "Sci-Fi", p.Items()[0].Label)

	p, _, chosen := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, chosen)
	assert.Equal(t, "g2", chosen.Value)
}

func TestPicker_EscapeCancels(t *testing.T) {
	p := NewPicker()
	p.Show("Year", []PickerItem{{Label: "2021", Value: "2021"}}, "")

	p, _, chosen := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, chosen)
	assert.False(t, p.IsVisible())
	assert.Empty(t, p.View())
}

func TestSortModal(t *testing.T) {
	m := NewSortModal()
	handled, _ := m.HandleKey("j")
	assert.False(t, handled, "hidden modal ignores keys")

	m.Show(domain.SortNone)
	assert.Contains(t, m.View(), "All Movies")

	m.HandleKey("j")
	m.HandleKey("j")
	handled, sel := m.HandleKey("enter")
	assert.True(t, handled)
	require.NotNil(t, sel)
	assert.Equal(t, domain.SortTop, *sel)
	assert.False(t, m.IsVisible())
}
