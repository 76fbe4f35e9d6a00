package normalizer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNote(t *testing.T, dir, relPath, content string) string {
	t.Helper()
	fullPath := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return fullPath
}

func TestDirStoreList(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "Home.md", "# Home\n")
	writeNote(t, dir, "Blog/post.md", "# Post\n")
	writeNote(t, dir, "Blog/2024/deep.md", "# Deep\n")
	writeNote(t, dir, "notes.txt", "not markdown")

	store := NewDirStore(dir)
	files, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 markdown files, got %d: %v", len(files), files)
	}

	found := make(map[string]bool)
	for _, f := range files {
		found[f] = true
	}
	for _, want := range []string{"Home.md", "Blog/post.md", "Blog/2024/deep.md"} {
		if !found[want] {
			t.Errorf("expected file not found: %s", want)
		}
	}
}

func TestDirStoreListSkipDirs(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "keep.md", "# Keep\n")
	writeNote(t, dir, ".git/readme.md", "# Git internal\n")
	writeNote(t, dir, ".obsidian/plugin.md", "# Plugin\n")
	writeNote(t, dir, "node_modules/pkg/doc.md", "# Doc\n")
	writeNote(t, dir, ".navstamp/report.md", "# Report\n")

	store := NewDirStore(dir)
	files, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 markdown file, got %d: %v", len(files), files)
	}
	if files[0] != "keep.md" {
		t.Errorf("expected 'keep.md', got %q", files[0])
	}
}

func TestDirStoreListMissingRoot(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := store.List(); err == nil {
		t.Error("expected an error for a missing vault directory")
	}
}

func TestDirStoreReadWrite(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "Blog/post.md", "original")

	store := NewDirStore(dir)
	data, err := store.Read("Blog/post.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("expected 'original', got %q", data)
	}

	if err := store.Write("Blog/post.md", []byte("updated")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	onDisk, err := os.ReadFile(filepath.Join(dir, "Blog", "post.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != "updated" {
		t.Errorf("expected 'updated' on disk, got %q", onDisk)
	}
}

func TestDirStoreRoot(t *testing.T) {
	dir := t.TempDir()
	if got := NewDirStore(dir).Root(); got != dir {
		t.Errorf("expected root %q, got %q", dir, got)
	}
}
