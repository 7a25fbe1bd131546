// Command movix is the terminal client for the movie recommendation service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/movix/movix/internal/api"
	"github.com/movix/movix/internal/config"
	"github.com/movix/movix/internal/logging"
	"github.com/movix/movix/internal/otel"
	"github.com/movix/movix/internal/session"
	"github.com/movix/movix/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "movix: %v\n", err)
		return 1
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "movix: failed to create data directory: %v\n", err)
		return 1
	}

	// The terminal belongs to the UI; without a log file, discard.
	if err := logging.Init(cfg.LogDir(), cfg.Logging.Level); err != nil {
		logging.SetOutput(io.Discard, cfg.Logging.Level)
	}
	defer logging.Close()

	events := openEventLog(cfg)
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	defer events.Close()

	logging.Info("config loaded", "api", cfg.API.URL, "timeout", cfg.API.Timeout, "rate", cfg.API.RatePerSecond)
	events.Info(otel.KindStartup, "main", "movix "+logging.Version)

	client := api.NewClient(cfg.API.URL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRateLimit(cfg.API.RatePerSecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ui.NewApp(ui.AppConfig{
		LoadHistory: func() tea.Cmd {
			return func() tea.Msg {
				history, err := client.History(ctx)
				return ui.HistoryLoaded{History: history, Err: err}
			}
		},
		Search: func(t session.Ticket, queryID string) tea.Cmd {
			return func() tea.Msg {
				start := time.Now()
				res, err := client.Query(ctx, t.Query)
				return ui.SearchCompleted{
					Ticket:  t,
					QueryID: queryID,
					Result:  res,
					Err:     err,
					Dur:     time.Since(start),
				}
			}
		},
		Events:    events,
		Ring:      ring,
		ImageBase: cfg.UI.ImageBase,
		Theme:     cfg.UI.Theme,
	})

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(app, opts...)

	// Run UI (blocks until quit)
	if _, err := program.Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		events.Error(otel.KindError, "main", err)
		fmt.Fprintf(os.Stderr, "movix: %v\n", err)
		return 1
	}
	events.Info(otel.KindShutdown, "main", "")
	return 0
}

// openEventLog appends to the JSONL event log, or discards events when the
// log is disabled or cannot be opened.
func openEventLog(cfg *config.Config) *otel.Logger {
	if !cfg.Logging.Events {
		return otel.NewNullLogger()
	}
	f, err := os.OpenFile(cfg.EventLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logging.Warn("event log disabled", "path", cfg.EventLogPath(), "error", err)
		return otel.NewNullLogger()
	}
	// The file stays open for the life of the process.
	return otel.NewLogger(f)
}
