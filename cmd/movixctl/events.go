package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/movix/movix/internal/config"
)

// eventRecord mirrors otel.Event for decoding. Decoding into a local type
// keeps the viewer usable across schema changes.
type eventRecord struct {
	Time      time.Time      `json:"t"`
	Level     string         `json:"level"`
	Kind      string         `json:"kind"`
	Comp      string         `json:"comp"`
	SessionID string         `json:"session_id"`
	QueryID   string         `json:"qid"`
	Seq       uint64         `json:"seq"`
	DurMs     float64        `json:"dur_ms"`
	Count     int            `json:"count"`
	Query     string         `json:"query"`
	Err       string         `json:"err"`
	Msg       string         `json:"msg"`
	Extra     map[string]any `json:"extra"`
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level string) int {
	switch level {
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 0
	}
}

// eventFilter selects events. Empty fields match everything.
type eventFilter struct {
	kind    string // kind prefix, e.g. "search"
	level   string // minimum level
	comp    string
	qid     string
	session string
}

func (f eventFilter) match(ev eventRecord) bool {
	switch {
	case f.kind != "" && !strings.HasPrefix(ev.Kind, f.kind):
		return false
	case f.level != "" && levelRank(ev.Level) < levelRank(f.level):
		return false
	case f.comp != "" && ev.Comp != f.comp:
		return false
	case f.qid != "" && ev.QueryID != f.qid:
		return false
	case f.session != "" && !strings.HasPrefix(ev.SessionID, f.session):
		return false
	}
	return true
}

// formatEvent renders one event as a single human-readable line.
func formatEvent(ev eventRecord) string {
	lvl := strings.ToUpper(ev.Level)
	if lvl == "" {
		lvl = "?"
	}
	parts := []string{fmt.Sprintf("%s %-5s [%-4s] %-18s", ev.Time.Format("15:04:05.000"), lvl, ev.Comp, ev.Kind)}

	if ev.Seq > 0 {
		parts = append(parts, fmt.Sprintf("#%d", ev.Seq))
	}
	if ev.Query != "" {
		parts = append(parts, fmt.Sprintf("q=%q", ev.Query))
	}
	if ev.Msg != "" {
		parts = append(parts, "- "+ev.Msg)
	}
	if ev.DurMs > 0 {
		parts = append(parts, fmt.Sprintf("(%.*fms)", durPrecision(ev.DurMs), ev.DurMs))
	}
	if ev.Count > 0 {
		parts = append(parts, fmt.Sprintf("n=%d", ev.Count))
	}
	if ev.Err != "" {
		parts = append(parts, "err="+ev.Err)
	}
	return strings.Join(parts, " ")
}

func runEvents(cfg *config.Config, args []string, w io.Writer) int {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	tail := fs.Int("tail", 50, "Number of recent lines to show")
	follow := fs.Bool("f", false, "Follow mode (like tail -f)")
	var filter eventFilter
	fs.StringVar(&filter.kind, "kind", "", "Filter by event kind prefix (e.g. 'search')")
	fs.StringVar(&filter.level, "level", "", "Minimum level: debug, info, warn, error")
	fs.StringVar(&filter.comp, "comp", "", "Filter by component name")
	fs.StringVar(&filter.qid, "qid", "", "Filter by query ID")
	fs.StringVar(&filter.session, "session", "", "Filter by session ID prefix")
	rawJSON := fs.Bool("json", false, "Output raw JSON lines")
	path := fs.String("file", cfg.EventLogPath(), "Event log path")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintf(os.Stderr, "  Event log not found at %s\n", *path)
		fmt.Fprintf(os.Stderr, "  Run movix first to generate events.\n")
		return 1
	}
	defer f.Close()

	emit := func(l parsedLine) {
		if *rawJSON {
			fmt.Fprintln(w, string(l.raw))
			return
		}
		fmt.Fprintln(w, formatEvent(l.ev))
	}

	r := bufio.NewReader(f)
	for _, l := range readTailLines(r, *tail, filter.match) {
		emit(l)
	}
	if !*follow {
		return 0
	}

	// Follow mode: keep polling the same reader for appended lines.
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return 1
		}
		if l, ok := parseLine(line); ok && filter.match(l.ev) {
			emit(l)
		}
	}
}

type parsedLine struct {
	ev  eventRecord
	raw []byte
}

// parseLine decodes one JSONL line. Blank and malformed lines are skipped.
func parseLine(b []byte) (parsedLine, bool) {
	b = trimLine(b)
	if len(b) == 0 {
		return parsedLine{}, false
	}
	var ev eventRecord
	if json.Unmarshal(b, &ev) != nil {
		return parsedLine{}, false
	}
	return parsedLine{ev: ev, raw: append([]byte(nil), b...)}, true
}

// readTailLines reads r to EOF and returns the last n lines matching match.
func readTailLines(r *bufio.Reader, n int, match func(eventRecord) bool) []parsedLine {
	var ring []parsedLine
	for {
		line, err := r.ReadBytes('\n')
		if l, ok := parseLine(line); ok && match(l.ev) && n > 0 {
			if len(ring) == n {
				ring = append(ring[:0], ring[1:]...)
			}
			ring = append(ring, l)
		}
		if err != nil {
			return ring
		}
	}
}

func trimLine(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func durPrecision(ms float64) int {
	if ms >= 100 {
		return 0
	}
	if ms >= 1 {
		return 1
	}
	return 2
}
