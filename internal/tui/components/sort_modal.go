package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/playbox/internal/domain"
	"github.com/mmcdole/playbox/internal/tui/styles"
)

// SortModal is a small popup for choosing which categorized collection to
// browse
type SortModal struct {
	visible bool
	options []domain.SortOption
	cursor  int
	active  domain.SortOption
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: domain.SortOptions()}
}

// Show displays the modal with the cursor on the active option
func (m *SortModal) Show(active domain.SortOption) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *domain.SortOption) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case "esc", "s":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		selected := i == m.cursor
		isActive := opt == m.active

		prefix := "  "
		if isActive {
			prefix = "✓ "
		}

		label := opt.String()
		if opt == domain.SortNone {
			label = "All Movies"
		}
		text := styles.Pad(prefix+label, 20)

		switch {
		case selected:
			lines = append(lines, styles.SelectedItemStyle.Render(text))
		case isActive:
			lines = append(lines, styles.ActiveItemStyle.Render(text))
		default:
			lines = append(lines, styles.NormalItemStyle.Render(text))
		}
	}

	content := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + content)
}
