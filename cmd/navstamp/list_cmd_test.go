package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRunList_TextOutput(t *testing.T) {
	vault := setupCommandTestVault(t)
	writeCommandTestNote(t, vault, "Blog/post.md", "---\ntitle: Field Notes\nnavigation:\n  icon: i-lucide-scroll\n---\nBody\n")
	writeCommandTestNote(t, vault, "plain.md", "# Plain Heading\n\ntext\n")

	var runErr error
	out := captureCommandStdout(t, func() {
		runErr = runList(false)
	})
	if runErr != nil {
		t.Fatalf("runList: %v", runErr)
	}

	if !strings.Contains(out, "Blog/post.md") || !strings.Contains(out, "i-lucide-scroll") {
		t.Fatalf("expected listed file with icon, got: %q", out)
	}
	if !strings.Contains(out, "Field Notes") {
		t.Fatalf("expected frontmatter title in output, got: %q", out)
	}
	if !strings.Contains(out, "Plain Heading") {
		t.Fatalf("expected heading title in output, got: %q", out)
	}
	if !strings.Contains(out, "no-frontmatter") {
		t.Fatalf("expected no-frontmatter status for plain file, got: %q", out)
	}
	if !strings.Contains(out, "2 files, 1 stamped, 1 missing") {
		t.Fatalf("expected summary line, got: %q", out)
	}
}

func TestRunList_JSONOutput(t *testing.T) {
	vault := setupCommandTestVault(t)
	writeCommandTestNote(t, vault, "About.md", "---\ntitle: About Me\n---\nHello\n")

	var runErr error
	out := captureCommandStdout(t, func() {
		runErr = runList(true)
	})
	if runErr != nil {
		t.Fatalf("runList: %v", runErr)
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("expected valid JSON array, got: %v (%q)", err, out)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %v", rows)
	}
	row := rows[0]
	if row["path"] != "About.md" || row["icon"] != "i-lucide-user" || row["source"] != "file" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row["status"] != "missing" {
		t.Fatalf("expected status 'missing' for unstamped file, got %v", row)
	}
	if row["title"] != "About Me" {
		t.Fatalf("expected frontmatter title, got %v", row)
	}
}

func TestRunList_FilenameFallbackTitle(t *testing.T) {
	vault := setupCommandTestVault(t)
	writeCommandTestNote(t, vault, "Research/untitled-draft.md", "no headings here\n")

	var runErr error
	out := captureCommandStdout(t, func() {
		runErr = runList(false)
	})
	if runErr != nil {
		t.Fatalf("runList: %v", runErr)
	}
	if !strings.Contains(out, "untitled-draft") {
		t.Fatalf("expected filename fallback title, got: %q", out)
	}
	if !strings.Contains(out, "i-lucide-microscope") {
		t.Fatalf("expected folder icon, got: %q", out)
	}
}
