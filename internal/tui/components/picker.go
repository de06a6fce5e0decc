package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/playbox/internal/tui/styles"
)

const (
	pickerWidth      = 28
	pickerMaxVisible = 10
)

// PickerItem is one selectable row in a Picker
type PickerItem struct {
	Label          string
	Value          string
	MatchedIndexes []int // rune positions highlighted in Label
}

// NarrowFunc returns the items to show for a filter query
type NarrowFunc func(query string) []PickerItem

// Picker is a modal list used for the genre and year selectors. When a
// NarrowFunc is set, typing filters the list.
type Picker struct {
	visible bool
	title   string
	items   []PickerItem
	active  string
	cursor  int
	offset  int

	narrow NarrowFunc
	filter textinput.Model

	keys PickerKeyMap
}

// NewPicker creates a hidden picker
func NewPicker() Picker {
	ti := textinput.New()
	ti.Placeholder = "type to narrow..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.PlaceholderStyle = styles.DimStyle
	ti.CharLimit = 40
	ti.Width = pickerWidth - 4

	return Picker{filter: ti, keys: DefaultPickerKeyMap()}
}

// Show displays a fixed list with the cursor on the active value
func (p *Picker) Show(title string, items []PickerItem, active string) {
	p.visible = true
	p.title = title
	p.items = items
	p.active = active
	p.narrow = nil
	p.filter.Blur()
	p.filter.SetValue("")
	p.moveToActive()
}

// ShowFilterable displays a list that narrows as the user types
func (p *Picker) ShowFilterable(title string, narrow NarrowFunc, active string) {
	p.visible = true
	p.title = title
	p.active = active
	p.narrow = narrow
	p.filter.SetValue("")
	p.filter.Focus()
	p.items = narrow("")
	p.moveToActive()
}

// Hide dismisses the picker
func (p *Picker) Hide() {
	p.visible = false
	p.filter.Blur()
}

// IsVisible returns whether the picker is shown
func (p Picker) IsVisible() bool {
	return p.visible
}

// Title returns the picker title
func (p Picker) Title() string {
	return p.title
}

// Items returns the rows currently listed
func (p Picker) Items() []PickerItem {
	return p.items
}

func (p *Picker) moveToActive() {
	p.cursor = 0
	p.offset = 0
	for i, it := range p.items {
		if it.Value == p.active {
			p.cursor = i
			break
		}
	}
	p.ensureVisible()
}

func (p *Picker) ensureVisible() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerMaxVisible {
		p.offset = p.cursor - pickerMaxVisible + 1
	}
}

// Update handles input. The returned item is non-nil when the user
// confirmed a choice; the picker hides itself on confirm or cancel.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd, *PickerItem) {
	if !p.visible {
		return p, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, p.keys.Cancel):
			p.Hide()
			return p, nil, nil
		case key.Matches(keyMsg, p.keys.Confirm):
			if len(p.items) == 0 {
				return p, nil, nil
			}
			chosen := p.items[p.cursor]
			p.Hide()
			return p, nil, &chosen
		case key.Matches(keyMsg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
				p.ensureVisible()
			}
			return p, nil, nil
		case key.Matches(keyMsg, p.keys.Down):
			if p.cursor < len(p.items)-1 {
				p.cursor++
				p.ensureVisible()
			}
			return p, nil, nil
		}

		if p.narrow == nil {
			switch keyMsg.String() {
			case "k":
				if p.cursor > 0 {
					p.cursor--
				}
			case "j":
				if p.cursor < len(p.items)-1 {
					p.cursor++
				}
			}
			p.ensureVisible()
			return p, nil, nil
		}
	}

	if p.narrow == nil {
		return p, nil, nil
	}

	prev := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != prev {
		p.items = p.narrow(p.filter.Value())
		p.cursor = 0
		p.offset = 0
	}
	return p, cmd, nil
}

// View renders the picker
func (p Picker) View() string {
	if !p.visible {
		return ""
	}

	var lines []string
	if p.narrow != nil {
		lines = append(lines, p.filter.View(), "")
	}

	if len(p.items) == 0 {
		lines = append(lines, styles.DimStyle.Render(styles.Pad("  no matches", pickerWidth)))
	}

	end := min(p.offset+pickerMaxVisible, len(p.items))
	for i := p.offset; i < end; i++ {
		it := p.items[i]

		prefix := "  "
		if it.Value == p.active {
			prefix = "✓ "
		}

		base := styles.NormalItemStyle
		switch {
		case i == p.cursor:
			base = styles.SelectedItemStyle
		case it.Value == p.active:
			base = styles.ActiveItemStyle
		}

		label := styles.Truncate(it.Label, pickerWidth-2)
		pad := strings.Repeat(" ", max(pickerWidth-2-lipgloss.Width(label), 0))
		lines = append(lines, base.Render(prefix)+styles.HighlightMatches(label, it.MatchedIndexes, base)+base.Render(pad))
	}

	if len(p.items) > end {
		lines = append(lines, styles.DimStyle.Render("  ↓ more"))
	}

	return styles.ModalStyle.Render(styles.ModalTitleStyle.Render(p.title) + "\n" + strings.Join(lines, "\n"))
}
