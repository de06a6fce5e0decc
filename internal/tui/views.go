package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/playbox/internal/domain"
	"github.com/mmcdole/playbox/internal/tui/components"
	"github.com/mmcdole/playbox/internal/tui/styles"
)

// Vertical layout: filter bar, status line and footer take one line each
const (
	FilterBarHeight = 2 // includes a blank separator
	StatusHeight    = 1
	FooterHeight    = 1
	DetailsHeight   = 4
)

// bannerVisible reports whether the banner fits at the current height
func (m Model) bannerVisible() bool {
	return m.opts.ShowBanner && m.Height >= 20
}

// updateLayout resizes the grid to the space left by the chrome
func (m *Model) updateLayout() {
	chrome := FilterBarHeight + StatusHeight + FooterHeight
	if m.bannerVisible() {
		chrome += components.BannerHeight
	}
	if m.ShowDetails {
		chrome += DetailsHeight
	}
	m.SearchInput.Width = max(m.Width/3, 10)
	m.Grid.SetSize(m.Width, max(m.Height-chrome, components.CardHeight))
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.renderHelp())
	}

	var sections []string
	if m.bannerVisible() {
		sections = append(sections, components.RenderBanner(m.Width))
	}
	sections = append(sections, m.renderFilterBar(), "")
	sections = append(sections, m.Grid.View())
	if m.ShowDetails {
		sections = append(sections, m.renderDetails())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Pin status and footer to the bottom
	used := lipgloss.Height(content) + StatusHeight + FooterHeight
	if gap := m.Height - used; gap > 0 {
		content += strings.Repeat("\n", gap)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatus(), m.renderFooter())

	// Overlay modals if visible
	var modal string
	switch {
	case m.GenrePicker.IsVisible():
		modal = m.GenrePicker.View()
	case m.YearPicker.IsVisible():
		modal = m.YearPicker.View()
	case m.SortModal.IsVisible():
		modal = m.SortModal.View()
	}
	if modal != "" {
		view = lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
	}

	return view
}

// renderFilterBar renders the search input and the active filter badges
func (m Model) renderFilterBar() string {
	search := m.SearchInput.View()
	if m.State != StateSearching && m.SearchInput.Value() == "" {
		search = styles.DimStyle.Render("/ search")
	}

	badges := []string{
		filterBadge("Genre", m.genreLabel(m.criteria.SelectedGenre), m.criteria.SelectedGenre != ""),
		filterBadge("Year", strings.TrimSpace(m.criteria.SelectedYear), strings.TrimSpace(m.criteria.SelectedYear) != ""),
		filterBadge("", m.criteria.SelectedSort.String(), m.criteria.SelectedSort != domain.SortNone),
	}

	return search + "  " + strings.Join(badges, " ")
}

// filterBadge renders an active filter highlighted and an inactive one dimmed
func filterBadge(label, value string, active bool) string {
	if !active {
		if label == "" {
			return styles.DimBadgeStyle.Render(value)
		}
		return styles.DimBadgeStyle.Render("All " + label + "s")
	}
	if label == "" {
		return styles.BadgeStyle.Render(value)
	}
	return styles.BadgeStyle.Render(label + ": " + value)
}

// renderDetails renders the selected movie's synopsis and cast
func (m Model) renderDetails() string {
	movie, ok := m.Grid.Selected()
	if !ok {
		return styles.DimStyle.Render("Nothing selected")
	}

	width := max(m.Width-2, 10)
	title := styles.TitleStyle.Render(movie.Name)
	if movie.Year > 0 {
		title += styles.DimStyle.Render(" (" + movie.Description() + ")")
	}

	lines := []string{title}
	if movie.Detail != "" {
		lines = append(lines, styles.SubtitleStyle.Render(styles.Truncate(movie.Detail, width)))
	}
	if cast := movie.CastLine(4); cast != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate("Cast: "+cast, width)))
	}
	lines = append(lines, styles.RatingStyle.Render(movie.FormattedRating()))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStatus renders the status message on the left and catalog state
// on the right
func (m Model) renderStatus() string {
	var left string
	switch {
	case m.loading():
		frame := styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)]
		left = styles.AccentStyle.Render(frame) + " " + styles.DimStyle.Render("Loading catalog...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var parts []string
	if errs := m.catalogSnap.Errors(); len(errs) > 0 {
		parts = append(parts, styles.ErrorStyle.Render("offline"))
	} else if m.catalogSnap.FromCache() {
		parts = append(parts, styles.DimStyle.Render("cached"))
	}
	if fetched := m.catalogSnap.FetchedAt; !fetched.IsZero() {
		parts = append(parts, styles.DimStyle.Render("updated "+shortDuration(time.Since(fetched))+" ago"))
	}
	if m.Refresher != nil {
		if next := m.Refresher.Status().NextRun; !next.IsZero() {
			parts = append(parts, styles.DimStyle.Render("next "+shortDuration(time.Until(next))))
		}
	}
	parts = append(parts, styles.SubtitleStyle.Render(movieCountLabel(len(m.Grid.Movies()))))
	right := strings.Join(parts, styles.DimStyle.Render(" · "))

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// shortDuration formats d as a compact age like "45s", "12m" or "3d"
func shortDuration(d time.Duration) string {
	d = max(d, 0)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// renderFooter renders the key hints
func (m Model) renderFooter() string {
	var hints []string
	for _, b := range footerBindings() {
		h := b.Help()
		hints = append(hints, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return lipgloss.NewStyle().MaxWidth(max(m.Width, 1)).Render(strings.Join(hints, "  "))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Filter", []struct{ key, desc string }{
			{"/", "search by title"},
			{"g", "pick a genre (type to narrow)"},
			{"y", "pick a year"},
			{"s", "browse new, top or random movies"},
			{"x", "clear every filter"},
		}},
		{"Browse", []struct{ key, desc string }{
			{"h j k l", "move"},
			{"PgUp/PgDn", "page"},
			{"enter", "toggle details"},
			{"r", "refresh catalog"},
			{"q", "quit"},
		}},
	}

	var lines []string
	for _, s := range sections {
		lines = append(lines, styles.AccentStyle.Render(s.title))
		for _, b := range s.bindings {
			lines = append(lines, "  "+styles.HelpKeyStyle.Render(styles.Pad(b.key, 10))+styles.HelpDescStyle.Render(b.desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, styles.DimStyle.Render("esc to close"))

	return styles.ModalStyle.Render(styles.ModalTitleStyle.Render("Keys") + "\n" + strings.Join(lines, "\n"))
}
