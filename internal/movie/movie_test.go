package movie

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		rating float64
		want   Tier
	}{
		{10, TierHigh},
		{8.0, TierHigh},
		{7.99, TierGood},
		{7.0, TierGood},
		{6.99, TierMedium},
		{6.0, TierMedium},
		{5.99, TierLow},
		{0.1, TierLow},
		{0, TierLow},
		{-3, TierLow},
		{math.NaN(), TierLow},
		{math.Inf(1), TierHigh},
	}
	for _, tt := range tests {
		if got := Classify(tt.rating); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestTierOrdering(t *testing.T) {
	if !(TierLow < TierMedium && TierMedium < TierGood && TierGood < TierHigh) {
		t.Error("tiers should be ordered low < medium < good < high")
	}
}

func TestTierString(t *testing.T) {
	want := map[Tier]string{TierHigh: "high", TierGood: "good", TierMedium: "medium", TierLow: "low"}
	for tier, name := range want {
		if tier.String() != name {
			t.Errorf("Tier(%d).String() = %q, want %q", tier, tier.String(), name)
		}
	}
}

func TestFormatRating(t *testing.T) {
	tests := map[float64]string{
		7.0:   "7.0",
		8.66:  "8.7",
		0.1:   "0.1",
		10:    "10.0",
		6.049: "6.0",
	}
	for in, want := range tests {
		if got := FormatRating(in); got != want {
			t.Errorf("FormatRating(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRated(t *testing.T) {
	in := []Movie{
		{ID: "1", Title: "Unrated", VoteAverage: 0},
		{ID: "2", Title: "Barely", VoteAverage: 0.1},
		{ID: "3", Title: "Great", VoteAverage: 8.4},
		{ID: "4", Title: "Also unrated", VoteAverage: 0},
		{ID: "5", Title: "Fine", VoteAverage: 6.5},
	}

	got := Rated(in)

	wantIDs := []ID{"2", "3", "5"}
	if len(got) != len(wantIDs) {
		t.Fatalf("Rated returned %d movies, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("Rated()[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
	if in[0].Title != "Unrated" || len(in) != 5 {
		t.Error("Rated should not modify its input")
	}
}

func TestRatedEmpty(t *testing.T) {
	if got := Rated(nil); len(got) != 0 {
		t.Errorf("Rated(nil) = %v, want empty", got)
	}
}

func TestPosterURL(t *testing.T) {
	tests := []struct {
		name, base, path, want string
	}{
		{"default base", "", "/abc.jpg", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"custom base", "https://img.example/w300/", "/x.png", "https://img.example/w300/x.png"},
		{"no leading slash", "https://img.example", "x.png", "https://img.example/x.png"},
		{"missing path", DefaultImageBase, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PosterURL(tt.base, tt.path); got != tt.want {
				t.Errorf("PosterURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
			}
		})
	}
}

func TestReleaseYear(t *testing.T) {
	tests := map[string]string{
		"2023-07-21": "2023",
		"1999":       "1999",
		"":           "",
		"-05-01":     "",
	}
	for in, want := range tests {
		if got := ReleaseYear(in); got != want {
			t.Errorf("ReleaseYear(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResultDecode(t *testing.T) {
	body := `{
		"recommendation": "**Try these**",
		"similar_movies": [
			{"id": 603, "title": "The Matrix", "poster_path": "/m.jpg", "release_date": "1999-03-30", "vote_average": 8.2, "vote_count": 24000},
			{"id": "abc", "title": "No Poster", "poster_path": null, "vote_average": 0, "vote_count": 0},
			{"title": "No ID", "vote_average": 5.5, "vote_count": 3}
		]
	}`

	var res Result
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if res.Recommendation != "**Try these**" {
		t.Errorf("Recommendation = %q", res.Recommendation)
	}
	if len(res.SimilarMovies) != 3 {
		t.Fatalf("got %d movies, want 3", len(res.SimilarMovies))
	}

	m := res.SimilarMovies[0]
	if m.ID != "603" || m.Title != "The Matrix" || m.Year() != "1999" || m.VoteCount != 24000 {
		t.Errorf("unexpected first movie: %+v", m)
	}
	if m.Tier() != TierHigh {
		t.Errorf("The Matrix tier = %v, want high", m.Tier())
	}
	if res.SimilarMovies[1].ID != "abc" || res.SimilarMovies[1].PosterPath != "" {
		t.Errorf("unexpected second movie: %+v", res.SimilarMovies[1])
	}
	if res.SimilarMovies[2].ID != "" {
		t.Errorf("missing id should decode empty, got %q", res.SimilarMovies[2].ID)
	}
}

func TestIDRejectsGarbage(t *testing.T) {
	for _, in := range []string{"true", "{}", "[1]", "NaN"} {
		var id ID
		if err := id.UnmarshalJSON([]byte(in)); err == nil {
			t.Errorf("UnmarshalJSON(%s) should fail", in)
		}
	}
}

func TestIDNumberRoundTrip(t *testing.T) {
	for _, in := range []string{"603", "603.0", "-1", "6.03e2"} {
		var id ID
		if err := json.Unmarshal([]byte(in), &id); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		out, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("Marshal(%q): %v", id, err)
		}
		if string(out) != in {
			t.Errorf("round trip of %s = %s, want the same number", in, out)
		}
	}
}

func TestIDMarshal(t *testing.T) {
	tests := map[ID]string{
		"603":   `603`,
		"abc":   `"abc"`,
		"NaN":   `"NaN"`,
		"0x1p4": `"0x1p4"`,
		"":      `null`,
	}
	for id, want := range tests {
		got, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("Marshal(%q): %v", id, err)
		}
		if string(got) != want {
			t.Errorf("Marshal(%q) = %s, want %s", id, got, want)
		}
	}
}
