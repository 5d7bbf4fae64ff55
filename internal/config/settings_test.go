package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandSources(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"skill-a", "skill-b"} {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// Files must not match as sources
	if err := os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := &Settings{Sources: []string{filepath.Join(root, "*")}}

	dirs, err := s.ExpandSources()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("got %d dirs, want 2: %v", len(dirs), dirs)
	}
	if filepath.Base(dirs[0]) != "skill-a" || filepath.Base(dirs[1]) != "skill-b" {
		t.Errorf("unexpected matches: %v", dirs)
	}
}

func TestExpandSourcesDeduplicates(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "skill-a"), 0o755); err != nil {
		t.Fatal(err)
	}

	s := &Settings{Sources: []string{
		filepath.Join(root, "*"),
		filepath.Join(root, "skill-a"),
	}}

	dirs, err := s.ExpandSources()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dirs) != 1 {
		t.Errorf("got %d dirs, want 1: %v", len(dirs), dirs)
	}
}

func TestExpandSourcesEmpty(t *testing.T) {
	s := &Settings{}

	dirs, err := s.ExpandSources()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("expected no dirs, got %v", dirs)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandHome("~/skills")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "skills") {
		t.Errorf("got %q", got)
	}

	got, err = expandHome("/absolute/path")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/absolute/path" {
		t.Errorf("absolute path was rewritten: %q", got)
	}
}
