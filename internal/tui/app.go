// Package tui is the interactive Bubble Tea front end: a banner, a search
// bar, genre/year/sort pickers and a grid of movie cards.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/playbox/internal/browse"
	"github.com/mmcdole/playbox/internal/catalog"
	"github.com/mmcdole/playbox/internal/domain"
	"github.com/mmcdole/playbox/internal/refresh"
	"github.com/mmcdole/playbox/internal/search"
	"github.com/mmcdole/playbox/internal/tui/components"
	"github.com/mmcdole/playbox/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateHelp
)

const (
	spinnerInterval = 100 * time.Millisecond
	statusTimeout   = 3 * time.Second
)

// Options configures the model
type Options struct {
	Columns         int
	ShowBanner      bool
	SuggestionLimit int
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Session   *browse.Session
	Refresher Refresher
	snapshots <-chan catalog.Snapshot
	opts      Options

	// UI Components
	SearchInput textinput.Model
	Grid        components.MovieGrid
	GenrePicker components.Picker
	YearPicker  components.Picker
	SortModal   components.SortModal

	// Data mirrored from the catalog and the browse store
	catalogSnap catalog.Snapshot
	genreIndex  *search.GenreIndex
	criteria    domain.FilterCriteria
	years       []int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	statusSeq    int
	Refreshing   bool
	ticking      bool
	SpinnerFrame int
	ShowDetails  bool
}

// NewModel creates a new application model. Fetches run through refresher;
// the snapshots they publish arrive through observer.
func NewModel(session *browse.Session, refresher Refresher, observer *SnapshotObserver, opts Options) Model {
	if opts.Columns < 1 {
		opts.Columns = 1
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = 3
	}

	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle
	ti.CharLimit = 80

	m := Model{
		State:       StateBrowsing,
		Session:     session,
		Refresher:   refresher,
		snapshots:   observer.Channel(),
		opts:        opts,
		SearchInput: ti,
		Grid:        components.NewMovieGrid(opts.Columns),
		GenrePicker: components.NewPicker(),
		YearPicker:  components.NewPicker(),
		SortModal:   components.NewSortModal(),
		genreIndex:  search.NewGenreIndex(nil),
		Refreshing:  true,
		ticking:     true,
	}
	m.syncFromStore()
	return m
}

// Init starts listening for snapshots and kicks off the first fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForSnapshotCmd(m.snapshots),
		RefreshCatalogCmd(m.Refresher),
		TickCmd(spinnerInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case CatalogUpdatedMsg:
		m.applySnapshot(msg.Snapshot)
		return m, WaitForSnapshotCmd(m.snapshots)

	case CatalogLoadDoneMsg:
		m.Refreshing = false
		if errors.Is(msg.Err, refresh.ErrAlreadyRunning) {
			return m, m.setStatus("Refresh already in progress", false)
		}
		if msg.Err != nil {
			return m, m.setStatus("Refresh failed: "+msg.Err.Error(), true)
		}
		return m, nil

	case TickMsg:
		if !m.loading() {
			m.ticking = false
			return m, nil
		}
		m.SpinnerFrame++
		return m, TickCmd(spinnerInterval)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case ErrMsg:
		return m, m.setStatus(msg.Error(), true)
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateSearching:
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.State = StateSearching
		return m, m.SearchInput.Focus()

	case key.Matches(msg, Keys.Genre):
		m.GenrePicker.ShowFilterable("Genre", m.genreItems, m.criteria.SelectedGenre)
		return m, textinput.Blink

	case key.Matches(msg, Keys.Year):
		m.YearPicker.Show("Year", m.yearItems(), strings.TrimSpace(m.criteria.SelectedYear))
		return m, nil

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.criteria.SelectedSort)
		return m, nil

	case key.Matches(msg, Keys.Reset):
		if m.criteria.IsZero() {
			return m, m.setStatus("No filters to clear", false)
		}
		m.Session.Reset()
		m.SearchInput.SetValue("")
		m.syncFromStore()
		return m, m.setStatus("Filters cleared", false)

	case key.Matches(msg, Keys.Refresh):
		return m, m.startRefresh()

	case key.Matches(msg, Keys.Enter):
		m.ShowDetails = !m.ShowDetails
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.ShowDetails {
			m.ShowDetails = false
			m.updateLayout()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Grid, cmd = m.Grid.Update(msg)
	return m, cmd
}

// routeToModal sends the key to whichever modal is open
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case m.GenrePicker.IsVisible():
		var cmd tea.Cmd
		var chosen *components.PickerItem
		m.GenrePicker, cmd, chosen = m.GenrePicker.Update(msg)
		if chosen != nil {
			m.Session.OnGenreSelect(chosen.Value)
			m.syncFromStore()
		}
		return true, m, cmd

	case m.YearPicker.IsVisible():
		var cmd tea.Cmd
		var chosen *components.PickerItem
		m.YearPicker, cmd, chosen = m.YearPicker.Update(msg)
		if chosen != nil {
			m.Session.OnYearSelect(chosen.Value)
			m.syncFromStore()
		}
		return true, m, cmd

	case m.SortModal.IsVisible():
		_, sel := m.SortModal.HandleKey(msg.String())
		if sel != nil {
			m.Session.OnSortSelect(*sel)
			m.syncFromStore()
		}
		return true, m, nil
	}
	return false, m, nil
}

// handleSearchKey feeds the search input; every edit refilters
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.SearchInput.Blur()
		m.State = StateBrowsing
		return m, nil
	}

	prev := m.SearchInput.Value()
	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if value := m.SearchInput.Value(); value != prev {
		m.Session.OnSearchChange(value)
		m.syncFromStore()
	}
	return m, cmd
}

// applySnapshot hands fresh collections to the session and refreshes the
// mirrored state
func (m *Model) applySnapshot(snap catalog.Snapshot) {
	m.catalogSnap = snap
	m.Session.OnCollectionsChanged(snap.Collections())

	genres := snap.Genres.Items()
	m.genreIndex = search.NewGenreIndex(genres)
	m.Grid.SetGenres(genres)
	m.syncFromStore()
}

// syncFromStore copies the browse store into the grid and filter bar
func (m *Model) syncFromStore() {
	snap := m.Session.Store().Snapshot()
	m.criteria = snap.Criteria
	m.years = snap.Years
	m.Grid.SetMovies(snap.Visible)

	term := strings.TrimSpace(snap.Criteria.SearchTerm)
	if len(snap.Visible) == 0 && term != "" {
		suggestions := search.Suggest(term, m.Session.Collections().All, m.opts.SuggestionLimit)
		m.Grid.SetSuggestions(term, search.Titles(suggestions))
	} else {
		m.Grid.SetSuggestions("", nil)
	}
}

// startRefresh launches a fetch unless one is already in flight
func (m *Model) startRefresh() tea.Cmd {
	if m.Refreshing {
		return nil
	}
	m.Refreshing = true
	cmds := []tea.Cmd{RefreshCatalogCmd(m.Refresher)}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, TickCmd(spinnerInterval))
	}
	return tea.Batch(cmds...)
}

// setStatus shows a temporary status message
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout, m.statusSeq)
}

// loading reports whether the spinner should run
func (m Model) loading() bool {
	return m.Refreshing || m.catalogSnap.Loading()
}

// genreItems narrows the genre list for the picker
func (m Model) genreItems(query string) []components.PickerItem {
	var items []components.PickerItem
	if strings.TrimSpace(query) == "" {
		items = append(items, components.PickerItem{Label: "All Genres", Value: ""})
	}
	for _, match := range m.genreIndex.Narrow(query) {
		items = append(items, components.PickerItem{
			Label:          match.Genre.Name,
			Value:          match.Genre.ID,
			MatchedIndexes: match.MatchedIndexes,
		})
	}
	return items
}

// yearItems lists the derived years, newest first
func (m Model) yearItems() []components.PickerItem {
	items := []components.PickerItem{{Label: "All Years", Value: ""}}
	for _, y := range browse.SortedYearsDesc(m.years) {
		s := strconv.Itoa(y)
		items = append(items, components.PickerItem{Label: s, Value: s})
	}
	return items
}

// genreLabel resolves the selected genre for display
func (m Model) genreLabel(id string) string {
	return domain.GenreName(m.catalogSnap.Genres.Items(), id)
}

// movieCountLabel formats the visible count
func movieCountLabel(n int) string {
	if n == 1 {
		return "1 movie"
	}
	return fmt.Sprintf("%d movies", n)
}
