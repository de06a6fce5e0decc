package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/playbox/internal/domain"
	"github.com/mmcdole/playbox/internal/tui/styles"
)

// Layout constants for movie cards
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Title, year/genre and rating lines
	CardContentLines = 3
	CardHeight       = CardContentLines + BorderHeight

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	MinCardWidth = 16
)

// MovieGrid renders the visible movies as rows of cards
type MovieGrid struct {
	movies []domain.Movie
	genres []domain.Genre

	columns int
	cursor  int
	offset  int // first visible row

	width  int
	height int

	// Shown in place of cards when there are no movies
	searchTerm  string
	suggestions []string

	keys GridKeyMap
}

// NewMovieGrid creates a grid with the preferred column count
func NewMovieGrid(columns int) MovieGrid {
	return MovieGrid{
		columns: max(columns, 1),
		keys:    DefaultGridKeyMap(),
	}
}

// SetMovies replaces the grid content. The cursor stays on the same movie
// when it is still present.
func (g *MovieGrid) SetMovies(movies []domain.Movie) {
	var selectedID string
	if m, ok := g.Selected(); ok {
		selectedID = m.ID
	}

	g.movies = movies
	g.cursor = 0
	if selectedID != "" {
		for i, m := range movies {
			if m.ID == selectedID {
				g.cursor = i
				break
			}
		}
	}
	g.ensureVisible()
}

// SetGenres sets the genres used to label cards
func (g *MovieGrid) SetGenres(genres []domain.Genre) {
	g.genres = genres
}

// SetSuggestions sets the "did you mean" titles shown for an empty search
func (g *MovieGrid) SetSuggestions(term string, titles []string) {
	g.searchTerm = term
	g.suggestions = titles
}

// SetSize updates the component dimensions
func (g *MovieGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// Movies returns the movies in the grid
func (g MovieGrid) Movies() []domain.Movie {
	return g.movies
}

// Cursor returns the current cursor position
func (g MovieGrid) Cursor() int {
	return g.cursor
}

// Selected returns the movie under the cursor
func (g MovieGrid) Selected() (domain.Movie, bool) {
	if g.cursor < 0 || g.cursor >= len(g.movies) {
		return domain.Movie{}, false
	}
	return g.movies[g.cursor], true
}

// Columns returns how many cards fit on a row at the current width
func (g MovieGrid) Columns() int {
	if g.width <= 0 {
		return g.columns
	}
	fit := g.width / MinCardWidth
	return max(min(g.columns, fit), 1)
}

// visibleRows returns how many card rows fit at the current height
func (g MovieGrid) visibleRows() int {
	return max((g.height-ScrollIndicatorLines)/CardHeight, 1)
}

func (g MovieGrid) rowCount() int {
	cols := g.Columns()
	return (len(g.movies) + cols - 1) / cols
}

// ensureVisible scrolls so the cursor's row is on screen
func (g *MovieGrid) ensureVisible() {
	if len(g.movies) == 0 {
		g.cursor = 0
		g.offset = 0
		return
	}
	g.cursor = min(max(g.cursor, 0), len(g.movies)-1)

	row := g.cursor / g.Columns()
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
	g.offset = max(min(g.offset, g.rowCount()-rows), 0)
}

// Update handles navigation keys
func (g MovieGrid) Update(msg tea.Msg) (MovieGrid, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(g.movies) == 0 {
		return g, nil
	}

	cols := g.Columns()
	page := g.visibleRows() * cols

	switch {
	case key.Matches(keyMsg, g.keys.Up):
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case key.Matches(keyMsg, g.keys.Down):
		if g.cursor+cols < len(g.movies) {
			g.cursor += cols
		} else if g.cursor/cols < g.rowCount()-1 {
			// Partial last row
			g.cursor = len(g.movies) - 1
		}
	case key.Matches(keyMsg, g.keys.Left):
		if g.cursor > 0 {
			g.cursor--
		}
	case key.Matches(keyMsg, g.keys.Right):
		if g.cursor < len(g.movies)-1 {
			g.cursor++
		}
	case key.Matches(keyMsg, g.keys.Home):
		g.cursor = 0
	case key.Matches(keyMsg, g.keys.End):
		g.cursor = len(g.movies) - 1
	case key.Matches(keyMsg, g.keys.PageUp):
		g.cursor = max(g.cursor-page, 0)
	case key.Matches(keyMsg, g.keys.PageDown):
		g.cursor = min(g.cursor+page, len(g.movies)-1)
	}

	g.ensureVisible()
	return g, nil
}

// View renders the grid
func (g MovieGrid) View() string {
	if len(g.movies) == 0 {
		return g.renderEmpty()
	}

	cols := g.Columns()
	cardWidth := max(g.width/cols, MinCardWidth)
	rows := g.visibleRows()

	var lines []string
	if g.offset > 0 {
		lines = append(lines, styles.DimStyle.Render("↑ more"))
	} else {
		lines = append(lines, "")
	}

	for r := g.offset; r < min(g.offset+rows, g.rowCount()); r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(g.movies) {
				break
			}
			cards = append(cards, g.renderCard(g.movies[i], cardWidth, i == g.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if g.offset+rows < g.rowCount() {
		lines = append(lines, styles.DimStyle.Render("↓ more"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderCard renders a single movie card of total width w
func (g MovieGrid) renderCard(m domain.Movie, w int, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	frameW, _ := style.GetFrameSize()
	inner := max(w-frameW, 1)

	title := styles.TitleStyle.Render(styles.Truncate(m.Name, inner))

	meta := m.Description()
	if name := domain.GenreName(g.genres, m.Genre); name != "" {
		if meta != "" {
			meta += " · "
		}
		meta += name
	}

	rating := styles.DimStyle.Render(m.FormattedRating())
	if m.NumReviews > 0 {
		rating = styles.RatingStyle.Render("★ " + styles.Truncate(m.FormattedRating(), inner-2))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.SubtitleStyle.Render(styles.Truncate(meta, inner)),
		rating,
	)

	return style.Width(inner + style.GetHorizontalPadding()).Render(content)
}

// renderEmpty renders the placeholder for an empty result
func (g MovieGrid) renderEmpty() string {
	lines := []string{"", styles.DimStyle.Render("No movies")}
	if len(g.suggestions) > 0 {
		quoted := make([]string, len(g.suggestions))
		for i, s := range g.suggestions {
			quoted[i] = styles.AccentStyle.Render(s)
		}
		lines = append(lines, "",
			styles.SubtitleStyle.Render("Nothing matches \""+g.searchTerm+"\". Did you mean: ")+
				strings.Join(quoted, styles.DimStyle.Render(", "))+
				styles.SubtitleStyle.Render("?"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
