package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillsmith/internal/skill"
)

func TestCreate(t *testing.T) {
	parent := t.TempDir()

	dir, err := Create(parent, Options{
		Name:        "eye-tracking-analysis",
		Description: "Generates saliency heatmaps and an attention report",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, sub := range skill.ConventionalSubdirs {
		if _, err := os.Stat(filepath.Join(dir, sub, ".gitkeep")); err != nil {
			t.Errorf("missing %s/.gitkeep", sub)
		}
	}

	// The written SKILL.md must parse back as a valid skill
	s, err := skill.Load(filepath.Join(dir, skill.MetadataFileName))
	if err != nil {
		t.Fatalf("generated SKILL.md does not parse: %v", err)
	}
	if s.Name != "eye-tracking-analysis" {
		t.Errorf("name = %q", s.Name)
	}
	if s.Description != "Generates saliency heatmaps and an attention report" {
		t.Errorf("description = %q", s.Description)
	}
	if !strings.Contains(s.Body, "# Eye Tracking Analysis") {
		t.Errorf("body missing title heading:\n%s", s.Body)
	}

	// And pass validation
	if problems := skill.ValidateDir(dir); skill.HasErrors(problems) {
		t.Errorf("scaffolded skill fails validation: %v", problems)
	}
}

func TestCreateDefaultDescription(t *testing.T) {
	dir, err := Create(t.TempDir(), Options{Name: "bare"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := skill.Load(filepath.Join(dir, skill.MetadataFileName))
	if err != nil {
		t.Fatalf("generated SKILL.md does not parse: %v", err)
	}
	if s.Description == "" {
		t.Error("default description missing")
	}
}

func TestCreateRefusesExisting(t *testing.T) {
	parent := t.TempDir()

	if _, err := Create(parent, Options{Name: "dup"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Create(parent, Options{Name: "dup"}); err == nil {
		t.Fatal("expected error for existing skill")
	}
	if _, err := Create(parent, Options{Name: "dup", Force: true}); err != nil {
		t.Errorf("force overwrite failed: %v", err)
	}
}

func TestCreateInvalidNames(t *testing.T) {
	tests := []string{
		"",
		"Has-Caps",
		"under_score",
		"spaces here",
		"-leading",
		"trailing-",
		"path/separator",
	}

	for _, name := range tests {
		if _, err := Create(t.TempDir(), Options{Name: name}); err == nil {
			t.Errorf("name %q accepted, want error", name)
		}
	}
}
