package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/creack/pty"
)

// terminalReplies answers the background colour (OSC 11) and cursor
// position (DSR) queries the program sends on startup. Without them it
// waits out the query timeout before drawing.
const terminalReplies = "\x1b]11;rgb:0000/0000/0000\x1b\\\x1b[1;1R"

// expectTimeout covers a cold start on a slow machine.
const expectTimeout = 15 * time.Second

// buildMovix builds the movix binary for testing.
func buildMovix(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "movix")

	rootDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// We are in test/e2e, go up 2 levels
	rootDir = filepath.Join(rootDir, "..", "..")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/movix")
	cmd.Dir = rootDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

func TestE2E_Search(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e test builds the binary")
	}
	binPath := buildMovix(t)
	backend := newFixtureBackend(t)
	dataDir := t.TempDir()

	cmd := exec.Command(binPath)
	cmd.Env = append(os.Environ(),
		"HOME="+t.TempDir(),
		"MOVIX_API_URL="+backend.URL,
		"MOVIX_DATA_DIR="+dataDir,
		"MOVIX_THEME=ascii",
		"MOVIX_LOG_LEVEL=debug",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 120, Rows: 50})
	if err != nil {
		t.Fatalf("failed to start pty: %v", err)
	}
	defer func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
	}()
	if _, err := ptmx.Write([]byte(terminalReplies)); err != nil {
		t.Fatalf("failed to answer terminal queries: %v", err)
	}

	var outputBuf bytes.Buffer
	console, err := expect.NewConsole(
		expect.WithStdin(ptmx),
		expect.WithStdout(&outputBuf),
		expect.WithDefaultTimeout(expectTimeout),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	defer console.Close()

	dumpLogs := func() {
		entries, _ := os.ReadDir(filepath.Join(dataDir, "logs"))
		for _, e := range entries {
			if logs, err := os.ReadFile(filepath.Join(dataDir, "logs", e.Name())); err == nil {
				t.Logf("%s:\n%s", e.Name(), logs)
			}
		}
	}
	expectString := func(step, s string) {
		t.Helper()
		t.Logf("Waiting for %s...", step)
		if _, err := console.ExpectString(s); err != nil {
			dumpLogs()
			t.Fatalf("%s: %q not found: %v\nOutput buffer:\n%s", step, s, err, outputBuf.String())
		}
	}
	// Keys go straight to the program's terminal.
	sendKeys := func(s string) {
		t.Helper()
		if _, err := ptmx.Write([]byte(s)); err != nil {
			t.Fatalf("failed to send %q: %v", s, err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	// 1. Startup
	expectString("startup", "Movix")
	time.Sleep(300 * time.Millisecond) // history fetch

	// 2. History panel lists the backend history
	sendKeys("\x12") // ctrl+r
	expectString("history panel", "sci-fi")
	sendKeys("\x1b") // esc hides it again

	// 3. Search
	sendKeys("heist")
	sendKeys("\r")
	expectString("recommendation", "LLM Movie Recommendation")
	expectString("movie grid", "Pulp Fiction")
	if strings.Contains(outputBuf.String(), "Hidden Unrated") {
		t.Error("unrated movie should not be rendered")
	}

	// 4. Quit
	sendKeys("\x03") // ctrl+c
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("process did not exit after ctrl+c")
	}

	if got := backend.Queries(); !slices.Equal(got, []string{"heist"}) {
		t.Errorf("backend queries = %v, want [heist]", got)
	}

	events, err := os.ReadFile(filepath.Join(dataDir, "events.jsonl"))
	if err != nil {
		t.Fatalf("event log missing: %v", err)
	}
	for _, kind := range []string{"sys.startup", "history.loaded", "search.start", "search.complete", "sys.shutdown"} {
		if !strings.Contains(string(events), `"kind":"`+kind+`"`) {
			t.Errorf("event log missing %s:\n%s", kind, events)
		}
	}
}
