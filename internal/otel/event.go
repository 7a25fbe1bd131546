// Package otel is the movix event log.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// them asynchronously through a buffered channel and a drain goroutine; an
// optional RingBuffer keeps the most recent events in memory for the debug
// overlay.
package otel

import (
	"time"

	json "github.com/goccy/go-json"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// History events
	KindHistoryFetch  EventKind = "history.fetch"
	KindHistoryLoaded EventKind = "history.loaded"
	KindHistoryError  EventKind = "history.error"

	// Search events
	KindSearchStart    EventKind = "search.start"
	KindSearchComplete EventKind = "search.complete"
	KindSearchError    EventKind = "search.error"
	KindSearchStale    EventKind = "search.stale"

	// UI events
	KindAddToList EventKind = "ui.add_to_list"
	KindCardOpen  EventKind = "ui.card_open"
	KindRender    EventKind = "ui.render_error"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"

	// Trace events, only with MOVIX_TRACE set
	KindMsgHandled EventKind = "trace.msg_handled"
)

// Event is the universal event record. Every field except Kind and Time is
// optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`       // "ui", "api", "main", "ctl"
	SessionID string         `json:"session_id,omitempty"` // same for the whole run
	QueryID   string         `json:"qid,omitempty"`        // search correlation ID
	Seq       uint64         `json:"seq,omitempty"`        // search sequence number
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count     int            `json:"count,omitempty"`
	Query     string         `json:"query,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}

// Failed reports whether the event records an error.
func (e Event) Failed() bool {
	return e.Level == LevelError || e.Err != ""
}
