// Package e2e drives the movix binary in a pseudo terminal against a fake
// backend.
package e2e

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
)

// fixtureBackend is a recommendation backend with canned answers. It
// records the queries it received.
type fixtureBackend struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
}

const fixtureResult = `{
  "recommendation": "## Picks\n\nStart with **Heat**, then try the rest.",
  "similar_movies": [
    {"id": 949, "title": "Heat", "poster_path": "/heat.jpg", "release_date": "1995-12-15", "vote_average": 7.9, "vote_count": 7000},
    {"id": 680, "title": "Pulp Fiction", "release_date": "1994-09-10", "vote_average": 8.5, "vote_count": 27000},
    {"id": 1, "title": "Hidden Unrated", "vote_average": 0, "vote_count": 0}
  ]
}`

func newFixtureBackend(t *testing.T) *fixtureBackend {
	t.Helper()
	fb := &fixtureBackend{}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/history":
			w.Write([]byte(`["sci-fi"]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/query":
			body, _ := io.ReadAll(r.Body)
			var req struct {
				Query string `json:"query"`
			}
			if err := json.Unmarshal(body, &req); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			fb.mu.Lock()
			fb.queries = append(fb.queries, req.Query)
			fb.mu.Unlock()
			w.Write([]byte(fixtureResult))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fb.Close)
	return fb
}

// Queries returns the queries received so far.
func (fb *fixtureBackend) Queries() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.queries...)
}
