// Command movixctl is the movix debug CLI.
//
// Usage:
//
//	movixctl                     Show help
//	movixctl history             Print the backend search history
//	movixctl query <q> [<q>...]  Run queries concurrently and print results
//	movixctl events              JSONL event log viewer
package main

import (
	"fmt"
	"os"

	"github.com/movix/movix/internal/config"
	"github.com/movix/movix/internal/logging"
)

const usage = `movixctl - movix debug CLI

Usage:
  movixctl <command> [flags]

Commands:
  history     Print the search history stored by the backend
  query       Run one or more queries and print recommendation and movies
  events      JSONL event log viewer

Environment:
  MOVIX_API_URL    Backend base URL (default: http://localhost:5001)
  MOVIX_CONFIG     Config file (default: ~/.movix/config.yaml)
  MOVIX_DATA_DIR   Data directory holding events.jsonl (default: ~/.movix)

Run 'movixctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "movixctl: %v\n", err)
		os.Exit(1)
	}
	logging.SetOutput(os.Stderr, "warn")

	switch cmd {
	case "history":
		os.Exit(runHistory(cfg, os.Args[1:], os.Stdout))
	case "query":
		os.Exit(runQuery(cfg, os.Args[1:], os.Stdout))
	case "events":
		os.Exit(runEvents(cfg, os.Args[1:], os.Stdout))
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "movixctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
