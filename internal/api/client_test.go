package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api/history" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `["sci-fi", "comedy", "sci-fi"]`)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	got, err := c.History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if want := []string{"sci-fi", "comedy", "sci-fi"}; !slices.Equal(got, want) {
		t.Errorf("History() = %v, want %v", got, want)
	}
}

func TestHistoryNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `null`)
	}))
	defer server.Close()

	got, err := NewClient(server.URL).History(context.Background())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("History() = %v, want empty", got)
	}
}

func TestHistoryMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not": "an array"}`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).History(context.Background())
	if !errors.Is(err, ErrDecode) {
		t.Errorf("History() error = %v, want ErrDecode", err)
	}
}

func TestQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api/query" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content-type: %s", ct)
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Query != "  Space Opera " {
			t.Errorf("query should be sent untouched, got %q", req.Query)
		}

		io.WriteString(w, `{
			"recommendation": "## Pick\nDune",
			"similar_movies": [
				{"id": 438631, "title": "Dune", "poster_path": "/d.jpg", "release_date": "2021-09-15", "vote_average": 7.8, "vote_count": 11000},
				{"id": 1, "title": "Unrated", "vote_average": 0, "vote_count": 0}
			]
		}`)
	}))
	defer server.Close()

	res, err := NewClient(server.URL + "/").Query(context.Background(), "  Space Opera ")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.Recommendation != "## Pick\nDune" {
		t.Errorf("Recommendation = %q", res.Recommendation)
	}
	if len(res.SimilarMovies) != 2 {
		t.Fatalf("got %d movies, want 2 (filtering is a view concern)", len(res.SimilarMovies))
	}
	if res.SimilarMovies[0].ID != "438631" || res.SimilarMovies[0].VoteCount != 11000 {
		t.Errorf("unexpected movie: %+v", res.SimilarMovies[0])
	}
}

func TestQueryMissingMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"recommendation": "nothing found"}`)
	}))
	defer server.Close()

	res, err := NewClient(server.URL).Query(context.Background(), "x")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if res.SimilarMovies != nil {
		t.Errorf("SimilarMovies = %v, want nil", res.SimilarMovies)
	}
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"error": "boom"}`, ErrStatus},
		{"bad request", http.StatusBadRequest, `{"error": "Query is required"}`, ErrStatus},
		{"empty body", http.StatusOK, ``, ErrDecode},
		{"null body", http.StatusOK, `null`, ErrDecode},
		{"truncated json", http.StatusOK, `{"recommendation": "abc`, ErrDecode},
		{"html page", http.StatusOK, `<html>oops</html>`, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Query(context.Background(), "q")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Query() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(url)
	if _, err := c.History(context.Background()); !errors.Is(err, ErrTransport) {
		t.Errorf("History() error = %v, want ErrTransport", err)
	}
	if _, err := c.Query(context.Background(), "q"); !errors.Is(err, ErrTransport) {
		t.Errorf("Query() error = %v, want ErrTransport", err)
	}
}

func TestContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewClient(server.URL).Query(ctx, "q")
	if !errors.Is(err, ErrTransport) {
		t.Errorf("Query() error = %v, want ErrTransport", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Query() error = %v, want context.Canceled in chain", err)
	}
}

func TestWithTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewClient(server.URL, WithTimeout(30*time.Millisecond))
	if _, err := c.History(context.Background()); !errors.Is(err, ErrTransport) {
		t.Errorf("History() error = %v, want ErrTransport", err)
	}
}

func TestNoTimeoutByDefault(t *testing.T) {
	c := NewClient("http://localhost:5001")
	if c.client.Timeout != 0 {
		t.Errorf("default timeout = %v, want none", c.client.Timeout)
	}
	if c.BaseURL() != "http://localhost:5001" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
}

func TestWithRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	c := NewClient(server.URL, WithRateLimit(20))
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.History(context.Background()); err != nil {
			t.Fatalf("History() error = %v", err)
		}
	}
	// Burst of 1 at 20/s: the second and third calls wait ~50ms each.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 calls took %v, want rate limiting to space them out", elapsed)
	}
	if calls.Load() != 3 {
		t.Errorf("server saw %d calls, want 3", calls.Load())
	}
}

func TestNoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Query(context.Background(), "q")
	if !errors.Is(err, ErrStatus) {
		t.Errorf("Query() error = %v, want ErrStatus", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want exactly 1", calls.Load())
	}
}

func TestSnippet(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	if got := snippet(long); len(got) != 203 {
		t.Errorf("snippet length = %d, want 203", len(got))
	}
	if got := snippet([]byte("  short \n")); got != "short" {
		t.Errorf("snippet = %q", got)
	}
}
