// Package movies renders recommendation results as a grid of cards.
package movies

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/movix/movix/internal/movie"
)

const (
	// MinCardWidth is the narrowest card the grid lays out.
	MinCardWidth = 24
	// MaxColumns caps the grid on wide terminals.
	MaxColumns = 6

	columnGap = 1
)

// Columns returns how many cards fit side by side in width cells, 1 to
// MaxColumns.
func Columns(width int) int {
	n := (width + columnGap) / (MinCardWidth + columnGap)
	return min(max(n, 1), MaxColumns)
}

// Grid is the movie list: the rated movies of one result, the hovered card
// and the expanded card. The zero value is an empty grid with nothing
// hovered.
type Grid struct {
	movies    []movie.Movie
	imageBase string
	width     int
	hovered   int // -1 when the grid is not focused
	expanded  int // -1 when no card is open
}

// NewGrid creates an empty grid drawing posters from imageBase.
func NewGrid(imageBase string) Grid {
	return Grid{imageBase: imageBase, hovered: -1, expanded: -1}
}

// SetMovies replaces the grid content with the rated subset of ms, in
// order. Hover and expansion are cleared.
func (g *Grid) SetMovies(ms []movie.Movie) {
	g.movies = movie.Rated(ms)
	g.hovered = -1
	g.expanded = -1
}

// SetWidth sets the available width in cells.
func (g *Grid) SetWidth(w int) {
	g.width = w
}

// Len returns the number of cards.
func (g Grid) Len() int { return len(g.movies) }

// Movies returns the rendered movies.
func (g Grid) Movies() []movie.Movie { return g.movies }

// Columns returns the column count for the current width.
func (g Grid) Columns() int { return Columns(g.width) }

// Hovered returns the hovered card index, or -1.
func (g Grid) Hovered() int {
	if g.movies == nil {
		return -1
	}
	return g.hovered
}

// Expanded returns the expanded card index, or -1.
func (g Grid) Expanded() int {
	if g.movies == nil {
		return -1
	}
	return g.expanded
}

// Hover marks card i as hovered. Only one card is hovered at a time; the
// last call wins. Out of range indexes are ignored.
func (g *Grid) Hover(i int) {
	if i >= 0 && i < len(g.movies) {
		g.hovered = i
	}
}

// Leave clears the hover.
func (g *Grid) Leave() {
	g.hovered = -1
}

// Move shifts the hover by delta cards. It reports false, leaving the hover
// as is, when the target falls outside the grid.
func (g *Grid) Move(delta int) bool {
	next := g.Hovered() + delta
	if g.Hovered() < 0 || next < 0 || next >= len(g.movies) {
		return false
	}
	g.hovered = next
	return true
}

// Toggle opens or closes the detail of the hovered card.
func (g *Grid) Toggle() (movie.Movie, bool) {
	i := g.Hovered()
	if i < 0 {
		return movie.Movie{}, false
	}
	if g.expanded == i {
		g.expanded = -1
		return g.movies[i], false
	}
	g.expanded = i
	return g.movies[i], true
}

// AddToList returns the hovered movie for the Add to List action. The
// action changes nothing in the grid, expansion included.
func (g Grid) AddToList() (movie.Movie, bool) {
	i := g.Hovered()
	if i < 0 {
		return movie.Movie{}, false
	}
	return g.movies[i], true
}

// cardWidth spreads the width evenly across the columns.
func (g Grid) cardWidth() int {
	cols := g.Columns()
	w := (g.width - (cols-1)*columnGap) / cols
	return max(w, MinCardWidth)
}

// rows renders one string per grid row.
func (g Grid) rows() []string {
	cols := g.Columns()
	w := g.cardWidth()
	gap := strings.Repeat(" ", columnGap)

	var rows []string
	for start := 0; start < len(g.movies); start += cols {
		end := min(start+cols, len(g.movies))
		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, gap)
			}
			cells = append(cells, RenderCard(g.movies[i], CardOptions{
				Width:     w,
				ImageBase: g.imageBase,
				Hovered:   i == g.Hovered(),
				Expanded:  i == g.Expanded(),
			}))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return rows
}

// View renders the grid. An empty grid renders as an empty string.
func (g Grid) View() string {
	return strings.Join(g.rows(), "\n")
}

// HoveredLine returns the first line of the row holding the hovered card,
// counted from the top of View, or -1 when nothing is hovered.
func (g Grid) HoveredLine() int {
	i := g.Hovered()
	if i < 0 {
		return -1
	}
	line := 0
	for _, r := range g.rows()[:i/g.Columns()] {
		line += lipgloss.Height(r)
	}
	return line
}
