package movies

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/movix/movix/internal/movie"
)

// tierColors pairs the rating text colour with the badge background for one
// tier. Both are always looked up together.
type tierColors struct {
	text  lipgloss.Color
	badge lipgloss.Color
}

var palette = map[movie.Tier]tierColors{
	movie.TierHigh:   {text: lipgloss.Color("#4ade80"), badge: lipgloss.Color("#22c55e")},
	movie.TierGood:   {text: lipgloss.Color("#facc15"), badge: lipgloss.Color("#eab308")},
	movie.TierMedium: {text: lipgloss.Color("#fb923c"), badge: lipgloss.Color("#f97316")},
	movie.TierLow:    {text: lipgloss.Color("#f87171"), badge: lipgloss.Color("#ef4444")},
}

func colorsFor(t movie.Tier) tierColors {
	if c, ok := palette[t]; ok {
		return c
	}
	return palette[movie.TierLow]
}

// RatingStyle is the foreground style for a rating printed as text.
func RatingStyle(t movie.Tier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorsFor(t).text).Bold(true)
}

// BadgeStyle is the rating badge: white text on the tier background.
func BadgeStyle(t movie.Tier) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(colorsFor(t).badge).
		Bold(true).
		Padding(0, 1)
}

var (
	colorFrame      = lipgloss.Color("#334155") // slate-700
	colorFrameHover = lipgloss.Color("#94a3b8") // slate-400
	colorMuted      = lipgloss.Color("#9ca3af")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFrame).
			Padding(0, 1)

	hoveredCardStyle = cardStyle.
				Border(lipgloss.ThickBorder()).
				BorderForeground(colorFrameHover).
				Background(lipgloss.Color("#0f172a"))

	titleStyle       = lipgloss.NewStyle().Bold(true)
	metaStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	placeholderStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	actionStyle      = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(lipgloss.Color("#475569")).
				Padding(0, 1)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cbd5e1"))
)
