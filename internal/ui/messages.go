// Package ui provides the Bubble Tea TUI for movix.
package ui

import (
	"time"

	"github.com/movix/movix/internal/movie"
	"github.com/movix/movix/internal/session"
)

// HistoryLoaded is sent when the history fetch on startup settles.
type HistoryLoaded struct {
	History []string
	Err     error
}

// SearchCompleted is sent when a query request settles.
type SearchCompleted struct {
	Ticket  session.Ticket
	QueryID string // search correlation ID
	Result  movie.Result
	Err     error
	Dur     time.Duration
}
