// Package movie holds the display records returned by the recommendation
// backend and the pure presentation rules applied to them.
package movie

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// DefaultImageBase is the image host prefix poster paths are appended to.
const DefaultImageBase = "https://image.tmdb.org/t/p/w500"

// ID identifies a movie. The backend emits TMDB ids as numbers, but records
// that went through the document store can carry string ids, so both decode.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("movie: invalid id %s: %w", data, err)
		}
		*id = ID(s)
		return nil
	}
	if !isNumber(data) {
		return fmt.Errorf("movie: invalid id %s", data)
	}
	*id = ID(data)
	return nil
}

// MarshalJSON writes numeric ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if isNumber([]byte(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// isNumber reports whether b is a single JSON number literal, so anything
// UnmarshalJSON keeps verbatim is written back as the same number.
func isNumber(b []byte) bool {
	if len(b) == 0 || (b[0] != '-' && (b[0] < '0' || b[0] > '9')) {
		return false
	}
	return json.Valid(b)
}

// Movie is one record of a recommendation result. Display only.
type Movie struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}

// Result is the body of a successful query.
type Result struct {
	Recommendation string  `json:"recommendation"`
	SimilarMovies  []Movie `json:"similar_movies"`
}

// Rated drops unrated records (vote_average exactly 0) and keeps the
// received order. The input slice is not modified.
func Rated(movies []Movie) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if m.VoteAverage == 0 {
			continue
		}
		out = append(out, m)
	}
	return out
}

// PosterURL joins the image host base and a poster path.
// Returns "" when the record has no poster.
func PosterURL(base, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageBase
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(posterPath, "/")
}

// ReleaseYear is the part of an ISO-like date before the first "-".
// Returns "" when the date is absent.
func ReleaseYear(releaseDate string) string {
	year, _, _ := strings.Cut(releaseDate, "-")
	return year
}

// Year returns the movie's release year, or "" if unknown.
func (m Movie) Year() string {
	return ReleaseYear(m.ReleaseDate)
}

// Poster returns the full poster URL for the given image base.
func (m Movie) Poster(base string) string {
	return PosterURL(base, m.PosterPath)
}
