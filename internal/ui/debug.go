package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/movix/movix/internal/otel"
)

// debugPanelChrome is the number of lines DebugPanel's border and vertical
// padding take. Must follow the DebugPanel style.
const debugPanelChrome = 4

// debugOverlay renders request stats and recent events. Pure function.
// Returns empty string if ring is nil.
func debugOverlay(ring *otel.RingBuffer, dropped uint64, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()
	recent := ring.Last(20)

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Request Stats"))
	lines = append(lines, fmt.Sprintf("  History:    %d fetched, %d loaded, %d errors",
		stats[otel.KindHistoryFetch], stats[otel.KindHistoryLoaded], stats[otel.KindHistoryError]))
	lines = append(lines, fmt.Sprintf("  Searches:   %d started, %d complete, %d errors, %d stale",
		stats[otel.KindSearchStart], stats[otel.KindSearchComplete], stats[otel.KindSearchError], stats[otel.KindSearchStale]))
	lines = append(lines, fmt.Sprintf("  Cards:      %d opened, %d add to list",
		stats[otel.KindCardOpen], stats[otel.KindAddToList]))
	lines = append(lines, fmt.Sprintf("  Buffer:     %d / %d events, %d dropped", ring.Len(), ring.Cap(), dropped))
	if last := lastSearch(recent); last != "" {
		lines = append(lines, "  Last:       "+last)
	}
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range recent {
		line := fmt.Sprintf("  %6s  %-18s", formatAge(time.Since(e.Time)), string(e.Kind))
		if e.Query != "" {
			line += "  " + fmt.Sprintf("%q", truncateRunes(e.Query, 24))
		}
		if e.Msg != "" {
			line += "  " + truncateRunes(e.Msg, 32)
		}
		if e.Err != "" {
			line += "  ERR:" + truncateRunes(e.Err, 30)
		}
		if e.QueryID != "" {
			line += "  qid:" + truncateRunes(e.QueryID, 8)
		}
		lines = append(lines, line)
	}

	maxHeight := max(height-debugPanelChrome, 1)
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := min(96, width-4)
	panelWidth = max(panelWidth, 20)
	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// lastSearch summarizes the newest completed search in recent.
func lastSearch(recent []otel.Event) string {
	for i := len(recent) - 1; i >= 0; i-- {
		e := recent[i]
		if e.Kind == otel.KindSearchComplete {
			return fmt.Sprintf("#%d %d movies in %s", e.Seq, e.Count, e.Dur.Round(time.Millisecond))
		}
	}
	return ""
}

// formatAge formats a duration as a compact human string. Negative
// durations from clock skew clamp to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

// truncateRunes cuts s to n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	hints := StatusBarKey.Render("^e/esc") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [DEBUG]  " + hints)
}
