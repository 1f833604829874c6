package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupVault(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func openIndex(t *testing.T, vaultPath string) *Index {
	t.Helper()
	idx := NewIndex()
	if err := idx.Open(vaultPath); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestSyncFullIndexesNotesAndLinks(t *testing.T) {
	vault := setupVault(t, map[string]string{
		"Root.md":          "links to [[Child]] and [[img.png]]",
		"Sub/Child.md":     "back to [[Root]]",
		"Sub/img.png":      "not-a-real-png",
		"Sub/notes.txt":    "ignored extension",
		".obsidian/config": "hidden dir skipped",
	})
	idx := openIndex(t, vault)

	stats, err := idx.SyncFull()
	if err != nil {
		t.Fatalf("SyncFull failed: %v", err)
	}
	if stats.NodesAdded != 3 {
		t.Errorf("expected 3 nodes added, got %d", stats.NodesAdded)
	}
	if stats.EdgesAdded != 3 {
		t.Errorf("expected 3 edges added, got %d", stats.EdgesAdded)
	}

	node, err := idx.GetNode("Sub/Child.md")
	if err != nil {
		t.Fatalf("GetNode failed: %v", err)
	}
	if node == nil || node.Basename != "child" {
		t.Errorf("unexpected node: %+v", node)
	}

	edges, err := idx.FindLinksFromFile("Root.md")
	if err != nil {
		t.Fatalf("FindLinksFromFile failed: %v", err)
	}
	if len(edges) != 2 {
		t.Errorf("expected 2 edges from Root.md, got %d", len(edges))
	}
}

func TestLookupBasenameShortestPathFirst(t *testing.T) {
	vault := setupVault(t, map[string]string{
		"Deep/Nested/Note.md": "far",
		"Note.md":             "near",
	})
	idx := openIndex(t, vault)
	if _, err := idx.SyncFull(); err != nil {
		t.Fatal(err)
	}

	nodes, err := idx.LookupBasename("note")
	if err != nil {
		t.Fatalf("LookupBasename failed: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(nodes))
	}
	if nodes[0].Path != "Note.md" {
		t.Errorf("expected shortest path first, got %q", nodes[0].Path)
	}
}

func TestSyncIncrementalDetectsChanges(t *testing.T) {
	vault := setupVault(t, map[string]string{
		"A.md": "[[B]]",
		"B.md": "original",
	})
	idx := openIndex(t, vault)
	if _, err := idx.SyncFull(); err != nil {
		t.Fatal(err)
	}

	// Modify one file, add one, delete one. mtime must move past the
	// recorded sync time for the change to register.
	future := time.Now().Add(2 * time.Second)
	if err := os.WriteFile(filepath.Join(vault, "B.md"), []byte("changed [[A]]"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Chtimes(filepath.Join(vault, "B.md"), future, future)
	if err := os.WriteFile(filepath.Join(vault, "C.md"), []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Chtimes(filepath.Join(vault, "C.md"), future, future)
	if err := os.Remove(filepath.Join(vault, "A.md")); err != nil {
		t.Fatal(err)
	}

	stats, err := idx.SyncIncremental()
	if err != nil {
		t.Fatalf("SyncIncremental failed: %v", err)
	}
	if stats.NodesAdded != 1 {
		t.Errorf("expected 1 node added, got %d", stats.NodesAdded)
	}
	if stats.NodesUpdated != 1 {
		t.Errorf("expected 1 node updated, got %d", stats.NodesUpdated)
	}
	if stats.NodesDeleted != 1 {
		t.Errorf("expected 1 node deleted, got %d", stats.NodesDeleted)
	}

	node, err := idx.GetNode("A.md")
	if err != nil {
		t.Fatal(err)
	}
	if node != nil {
		t.Error("deleted file should no longer be indexed")
	}

	edges, err := idx.FindLinksFromFile("B.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 1 || edges[0].TargetText != "A" {
		t.Errorf("expected refreshed edges for B.md, got %+v", edges)
	}
}

func TestFindLinksResolveThroughIndex(t *testing.T) {
	vault := setupVault(t, map[string]string{
		"Plan.md":      "see [[Child]] and [[Gone]]",
		"Sub/Child.md": "leaf",
	})
	idx := openIndex(t, vault)
	if _, err := idx.SyncFull(); err != nil {
		t.Fatal(err)
	}

	edges, err := idx.FindLinksFromFile("Plan.md")
	if err != nil {
		t.Fatalf("FindLinksFromFile failed: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}

	r := NewIndexResolver(idx)
	resolved := make(map[string]string)
	for _, edge := range edges {
		if ref, ok := r.Resolve(edge.TargetText, "Plan.md"); ok {
			resolved[edge.TargetText] = ref.Path
		}
	}
	if resolved["Child"] != "Sub/Child.md" {
		t.Errorf("Child resolved to %q, want Sub/Child.md", resolved["Child"])
	}
	if _, ok := resolved["Gone"]; ok {
		t.Error("Gone should not resolve")
	}
}

func TestNeedsFullRebuild(t *testing.T) {
	vault := setupVault(t, map[string]string{"A.md": "x"})
	idx := openIndex(t, vault)
	if idx.NeedsFullRebuild() {
		t.Error("freshly opened index should not need a rebuild")
	}
}

func TestIndexResolver(t *testing.T) {
	vault := setupVault(t, map[string]string{
		"Notes/Flow.excalidraw.md": "drawing",
		"Notes/shot.png":           "img",
		"Target.md":                "note",
	})
	idx := openIndex(t, vault)
	if _, err := idx.SyncFull(); err != nil {
		t.Fatal(err)
	}
	r := NewIndexResolver(idx)

	tests := []struct {
		name     string
		raw      string
		wantPath string
		wantOK   bool
	}{
		{"exact path", "Notes/shot.png", "Notes/shot.png", true},
		{"path without extension", "Target", "Target.md", true},
		{"bare basename", "target", "Target.md", true},
		{"full filename", "shot.png", "Notes/shot.png", true},
		{"drawing basename", "Flow.excalidraw", "Notes/Flow.excalidraw.md", true},
		{"unresolvable", "Missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := r.Resolve(tt.raw, "Source.md")
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && ref.Path != tt.wantPath {
				t.Errorf("Resolve(%q) = %q, want %q", tt.raw, ref.Path, tt.wantPath)
			}
		})
	}
}
