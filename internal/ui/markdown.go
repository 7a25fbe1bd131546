package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/movix/movix/internal/logging"
)

// DefaultTheme is the glamour style used when none is configured.
const DefaultTheme = "dark"

// renderMarkdown renders md for a terminal of the given width. On renderer
// failure the raw text is returned along with the error.
func renderMarkdown(md, theme string, width int) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	if theme == "" {
		theme = DefaultTheme
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		logging.Warn("markdown renderer unavailable", "theme", theme, "error", err)
		return md, err
	}
	out, err := r.Render(md)
	if err != nil {
		logging.Warn("markdown render failed", "error", err)
		return md, err
	}
	return strings.Trim(out, "\n"), nil
}
