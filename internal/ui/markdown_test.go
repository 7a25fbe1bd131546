package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out, err := renderMarkdown("Try **Heat**.", "notty", 60)
	if err != nil {
		t.Fatalf("renderMarkdown() error = %v", err)
	}
	if !strings.Contains(out, "Heat") {
		t.Errorf("rendered text lost content: %q", out)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	out, err := renderMarkdown("  \n", "notty", 60)
	if err != nil || out != "" {
		t.Errorf("renderMarkdown(blank) = %q, %v; want empty, nil", out, err)
	}
}

func TestRenderMarkdownUnknownTheme(t *testing.T) {
	out, err := renderMarkdown("plain text", "no-such-theme", 60)
	if err == nil {
		t.Fatal("unknown theme should report an error")
	}
	if out != "plain text" {
		t.Errorf("fallback = %q, want raw text", out)
	}
}
