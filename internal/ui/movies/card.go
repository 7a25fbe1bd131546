package movies

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/movix/movix/internal/movie"
)

const (
	// AddToListLabel is the hover-only action on a card.
	AddToListLabel = "+ Add to List"

	posterLabel   = "[poster]"
	noPosterLabel = "[no poster]"
	ellipsis      = "…"
)

// CardOptions controls how one card is drawn.
type CardOptions struct {
	Width     int    // outer width including the frame
	ImageBase string // poster host; empty means movie.DefaultImageBase
	Hovered   bool
	Expanded  bool
}

// contentWidth is the text width left inside the frame and padding.
func (o CardOptions) contentWidth() int {
	return max(o.Width-4, 1)
}

// RenderCard draws one movie card. Missing poster or release date never
// fail: the poster shows a placeholder and the year is left out.
func RenderCard(m movie.Movie, o CardOptions) string {
	w := o.contentWidth()
	tier := m.Tier()

	poster := placeholderStyle.Render(noPosterLabel)
	if m.Poster(o.ImageBase) != "" {
		poster = metaStyle.Render(posterLabel)
	}
	badge := BadgeStyle(tier).Render("★ " + movie.FormatRating(m.VoteAverage))
	gap := max(w-lipgloss.Width(poster)-lipgloss.Width(badge), 1)

	lines := []string{
		poster + strings.Repeat(" ", gap) + badge,
		titleStyle.Render(Truncate(m.Title, w)),
		metaStyle.Render(Truncate(metaLine(m), w)),
	}
	if o.Hovered {
		lines = append(lines, actionStyle.Render(AddToListLabel))
	}
	if o.Expanded {
		lines = append(lines, detailLines(m, o.ImageBase, w)...)
	}

	style := cardStyle
	if o.Hovered {
		style = hoveredCardStyle
	}
	return style.Width(o.Width - 2).Render(strings.Join(lines, "\n"))
}

// metaLine is "2014 · 1234 votes", or just the vote count without a year.
func metaLine(m movie.Movie) string {
	votes := fmt.Sprintf("%d votes", m.VoteCount)
	if y := m.Year(); y != "" {
		return y + " · " + votes
	}
	return votes
}

// detailLines is the expanded view: full wrapped title, rating in the tier
// colour and the full poster URL.
func detailLines(m movie.Movie, base string, w int) []string {
	url := m.Poster(base)
	if url == "" {
		url = "none"
	}
	return []string{
		"",
		detailStyle.Width(w).Render(m.Title),
		RatingStyle(m.Tier()).Render("rating " + movie.FormatRating(m.VoteAverage)),
		detailStyle.Width(w).Render("poster " + url),
	}
}

// Truncate shortens s to at most w cells, ending with an ellipsis when cut.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, ellipsis)
}
