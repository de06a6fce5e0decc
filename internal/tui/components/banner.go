package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/playbox/internal/tui/styles"
)

const (
	BannerTitle   = "PlayBox"
	BannerTagline = "Cinematic Odyssey: Unveiling the Magic of Movies"
)

// BannerHeight is the number of lines RenderBanner occupies
const BannerHeight = 4

// RenderBanner renders the title banner across width
func RenderBanner(width int) string {
	inner := max(width-2, 1)
	title := styles.BannerTitleStyle.Render("▶ " + BannerTitle)
	tagline := styles.BannerTaglineStyle.Render(styles.Truncate(BannerTagline, inner))

	return styles.BannerStyle.
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, tagline))
}
