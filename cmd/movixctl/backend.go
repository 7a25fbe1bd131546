package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/movix/movix/internal/api"
	"github.com/movix/movix/internal/config"
	"github.com/movix/movix/internal/logging"
	"github.com/movix/movix/internal/movie"
)

// clientFlags registers the flags shared by the backend commands.
func clientFlags(fs *flag.FlagSet, cfg *config.Config) (url *string, asJSON *bool) {
	url = fs.String("url", cfg.API.URL, "Backend base URL")
	asJSON = fs.Bool("json", false, "Print raw JSON")
	return url, asJSON
}

func newClient(cfg *config.Config, url string) *api.Client {
	return api.NewClient(url,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRateLimit(cfg.API.RatePerSecond),
	)
}

func runHistory(cfg *config.Config, args []string, w io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	url, asJSON := clientFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	history, err := newClient(cfg, *url).History(context.Background())
	if err != nil {
		logging.Error("history fetch failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if *asJSON {
		return writeJSON(w, history)
	}
	if len(history) == 0 {
		fmt.Fprintln(w, "No search history")
		return 0
	}
	for i, q := range history {
		fmt.Fprintf(w, "%3d  %s\n", i+1, q)
	}
	return 0
}

// queryOutcome is one query's result, kept in argument order.
type queryOutcome struct {
	Query  string       `json:"query"`
	Result movie.Result `json:"result"`
	Err    string       `json:"error,omitempty"`
}

func runQuery(cfg *config.Config, args []string, w io.Writer) int {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	url, asJSON := clientFlags(fs, cfg)
	limit := fs.Int("concurrency", 4, "Maximum queries in flight")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	queries := fs.Args()
	if len(queries) == 0 {
		fmt.Fprintln(os.Stderr, "usage: movixctl query [flags] <query> [<query>...]")
		return 2
	}

	outcomes := runQueries(context.Background(), newClient(cfg, *url), queries, *limit)

	if *asJSON {
		return writeJSON(w, outcomes)
	}
	failed := 0
	for i, o := range outcomes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if o.Err != "" {
			failed++
		}
		printOutcome(w, o, cfg.UI.ImageBase)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// runQueries sends every query, at most limit at a time. A failed query
// does not stop the others.
func runQueries(ctx context.Context, client *api.Client, queries []string, limit int) []queryOutcome {
	outcomes := make([]queryOutcome, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, q := range queries {
		i, q := i, q // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			res, err := client.Query(ctx, q)
			outcomes[i] = queryOutcome{Query: q, Result: res}
			if err != nil {
				logging.Warn("query failed", "query", q, "error", err)
				outcomes[i].Err = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return outcomes
}

func printOutcome(w io.Writer, o queryOutcome, imageBase string) {
	fmt.Fprintf(w, "== %q\n", o.Query)
	if o.Err != "" {
		fmt.Fprintf(w, "error: %s\n", o.Err)
		return
	}
	if rec := strings.TrimSpace(o.Result.Recommendation); rec != "" {
		fmt.Fprintln(w, rec)
		fmt.Fprintln(w)
	}

	rated := movie.Rated(o.Result.SimilarMovies)
	fmt.Fprintf(w, "Top Movies (%d):\n", len(rated))
	for _, m := range rated {
		line := fmt.Sprintf("  %4s %-6s  %s", movie.FormatRating(m.VoteAverage), m.Tier(), m.Title)
		if y := m.Year(); y != "" {
			line += " (" + y + ")"
		}
		line += fmt.Sprintf("  %d votes", m.VoteCount)
		if p := m.Poster(imageBase); p != "" {
			line += "  " + p
		}
		fmt.Fprintln(w, line)
	}
}

func writeJSON(w io.Writer, v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(w, string(data))
	return 0
}
