package search

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeIndexedSkill(t *testing.T, root, name, description string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: " + description + "\n---\n\n# " + name + "\n"
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestBuildIndexesValidSkill(t *testing.T) {
	root := t.TempDir()
	dir := writeIndexedSkill(t, root, "pdf-processing", "Extract text from PDF documents")

	idx := Build(root)
	if len(idx.Entries) != 1 {
		t.Fatalf("Build indexed %d skills, want 1", len(idx.Entries))
	}

	e := idx.Entries[0]
	if e.Name != "pdf-processing" {
		t.Errorf("Name = %q, want %q", e.Name, "pdf-processing")
	}
	if e.Description == "" {
		t.Error("Description is empty")
	}
	if e.Path != dir {
		t.Errorf("Path = %q, want %q", e.Path, dir)
	}
	if len(e.Keywords) == 0 {
		t.Error("no keywords extracted")
	}
	if e.ModTime == 0 {
		t.Error("ModTime not recorded")
	}
}

func TestBuildAndQuery(t *testing.T) {
	root := t.TempDir()
	writeIndexedSkill(t, root, "pdf-processing", "Extract text and tables from PDF documents")
	writeIndexedSkill(t, root, "commit-helper", "Write well formed commit messages")
	writeIndexedSkill(t, root, ".hidden", "should be skipped")

	idx := Build(root)
	if len(idx.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(idx.Entries))
	}

	tests := []struct {
		query string
		want  string
	}{
		{"pdf", "pdf-processing"},
		{"commit messages", "commit-helper"},
		{"extract tables", "pdf-processing"},
	}
	for _, tt := range tests {
		results := Query(idx, tt.query)
		if len(results) == 0 {
			t.Errorf("Query(%q) returned no results", tt.query)
			continue
		}
		if results[0].Entry.Name != tt.want {
			t.Errorf("Query(%q) best match = %q, want %q", tt.query, results[0].Entry.Name, tt.want)
		}
	}

	if results := Query(idx, "zzzzz"); results != nil {
		t.Errorf("expected no results for nonsense query, got %d", len(results))
	}
}

func TestQueryRanking(t *testing.T) {
	idx := &Index{Entries: []Entry{
		{Name: "docker-compose", Description: "Manage docker compose stacks", Keywords: []string{"docker", "compose", "stacks"}},
		{Name: "kubernetes-deploy", Description: "Deploy workloads, sometimes via docker images", Keywords: []string{"deploy", "workloads", "docker", "images"}},
	}}

	results := Query(idx, "docker")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Entry.Name != "docker-compose" {
		t.Errorf("expected name match ranked first, got %q", results[0].Entry.Name)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeIndexedSkill(t, root, "alpha", "first skill")

	idx := Build(root)
	if err := Save(root, idx); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("expected index, got nil")
	}
	if len(loaded.Entries) != 1 || loaded.Entries[0].Name != "alpha" {
		t.Fatalf("unexpected entries after round trip: %+v", loaded.Entries)
	}
}

func TestLoadMissingIndex(t *testing.T) {
	idx, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if idx != nil {
		t.Fatal("expected nil index for missing file")
	}
}

func TestIsStale(t *testing.T) {
	root := t.TempDir()
	writeIndexedSkill(t, root, "alpha", "first skill")

	idx := Build(root)
	if IsStale(root, idx) {
		t.Fatal("fresh index reported stale")
	}

	if IsStale(root, nil) != true {
		t.Fatal("nil index should be stale")
	}

	// Touching a SKILL.md invalidates the index.
	metaPath := filepath.Join(root, "alpha", "SKILL.md")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(metaPath, future, future); err != nil {
		t.Fatal(err)
	}
	if !IsStale(root, idx) {
		t.Fatal("modified skill not detected as stale")
	}

	// A new skill invalidates it too.
	idx = Build(root)
	writeIndexedSkill(t, root, "beta", "second skill")
	if !IsStale(root, idx) {
		t.Fatal("new skill not detected as stale")
	}

	// A removed skill invalidates it as well.
	idx = Build(root)
	if err := os.RemoveAll(filepath.Join(root, "beta")); err != nil {
		t.Fatal(err)
	}
	if !IsStale(root, idx) {
		t.Fatal("removed skill not detected as stale")
	}
}

func TestExtractKeywords(t *testing.T) {
	keywords := extractKeywords("Extract text, tables, and images from PDF documents when the user needs it")
	want := map[string]bool{"extract": true, "text": true, "tables": true, "images": true, "pdf": true, "documents": true, "user": true}
	for _, kw := range keywords {
		if !want[kw] {
			t.Errorf("unexpected keyword %q", kw)
		}
		delete(want, kw)
	}
	for kw := range want {
		t.Errorf("missing keyword %q", kw)
	}
}
