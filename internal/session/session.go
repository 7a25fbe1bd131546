// Package session is the search state machine behind the movix view.
//
// A Session tracks the phase of the latest search, the last good result and
// the query history. Every search gets a Ticket carrying a monotonically
// increasing sequence number; only the ticket of the most recent search can
// settle the session, so a slow response can never overwrite a newer one.
//
// Session is a value type. Methods with pointer receivers mutate in place;
// accessors return copies so callers cannot alias internal slices.
package session

import (
	"slices"

	"github.com/movix/movix/internal/movie"
)

// Phase is the explicit state of the search view.
type Phase int

const (
	PhaseIdle      Phase = iota // no search issued yet
	PhaseSearching              // latest search in flight
	PhaseLoaded                 // latest search returned a result
	PhaseFailed                 // latest search failed; previous result kept
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Ticket identifies one issued search.
type Ticket struct {
	Seq   uint64
	Query string
}

// Session is the search state. The zero value is an idle session with empty
// history.
type Session struct {
	phase   Phase
	seq     uint64 // last issued sequence number
	pending string // query of the latest ticket
	result  *movie.Result
	err     error
	history []string
}

// Begin starts a search for query and returns its ticket. Any earlier ticket
// becomes stale.
func (s *Session) Begin(query string) Ticket {
	s.seq++
	s.pending = query
	s.phase = PhaseSearching
	return Ticket{Seq: s.seq, Query: query}
}

// Current reports whether t is the latest issued ticket.
func (s Session) Current(t Ticket) bool {
	return t.Seq != 0 && t.Seq == s.seq
}

// Resolve settles the latest search with a result. The query is appended to
// history unless an exact match is already present. Returns false and leaves
// the session unchanged when t is stale or the search already settled.
func (s *Session) Resolve(t Ticket, res movie.Result) bool {
	if !s.Current(t) || s.phase != PhaseSearching {
		return false
	}
	s.result = &res
	s.err = nil
	s.phase = PhaseLoaded
	s.history = AppendUnique(s.history, t.Query)
	return true
}

// Reject settles the latest search with an error. The previous result stays.
// Returns false when t is stale or the search already settled.
func (s *Session) Reject(t Ticket, err error) bool {
	if !s.Current(t) || s.phase != PhaseSearching {
		return false
	}
	s.err = err
	s.phase = PhaseFailed
	return true
}

// SetHistory replaces the history with entries as returned by the backend.
// Duplicates already present in entries are kept.
func (s *Session) SetHistory(entries []string) {
	s.history = slices.Clone(entries)
}

// Phase returns the current phase.
func (s Session) Phase() Phase { return s.phase }

// Loading reports whether the latest search is in flight.
func (s Session) Loading() bool { return s.phase == PhaseSearching }

// Pending returns the query of the latest search.
func (s Session) Pending() string { return s.pending }

// Seq returns the sequence number of the latest search, 0 if none.
func (s Session) Seq() uint64 { return s.seq }

// Result returns the last good result, or nil if none arrived yet.
func (s Session) Result() *movie.Result {
	if s.result == nil {
		return nil
	}
	r := *s.result
	r.SimilarMovies = slices.Clone(s.result.SimilarMovies)
	return &r
}

// Err returns the error of the latest failed search.
func (s Session) Err() error { return s.err }

// History returns a copy of the query history in insertion order.
func (s Session) History() []string {
	return slices.Clone(s.history)
}

// AppendUnique returns history with query appended, unless query already
// appears in it as an exact, case-sensitive match. It never modifies the
// backing array of history.
func AppendUnique(history []string, query string) []string {
	if slices.Contains(history, query) {
		return history
	}
	out := make([]string, len(history), len(history)+1)
	copy(out, history)
	return append(out, query)
}
