package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"skillsmith/internal/skill"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `{
  "version": "1",
  "skills": [
    {"name": "saliency", "description": "heatmaps"},
    {"name": "pdf-report", "description": "reports"}
  ]
}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Skills) != 2 {
		t.Fatalf("got %d skills, want 2", len(m.Skills))
	}

	names := m.Names()
	if names[0] != "pdf-report" || names[1] != "saliency" {
		t.Errorf("names = %v", names)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := writeManifest(t, "{broken")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for corrupt manifest")
	}
}

func TestDrift(t *testing.T) {
	m := &Manifest{Skills: []Entry{
		{Name: "stable"},
		{Name: "removed-from-disk"},
	}}

	discovered := map[string]*skill.Skill{
		"stable":        {Name: "stable"},
		"fresh-on-disk": {Name: "fresh-on-disk"},
	}

	unlisted, orphaned := m.Drift(discovered)

	if len(unlisted) != 1 || unlisted[0] != "fresh-on-disk" {
		t.Errorf("unlisted = %v", unlisted)
	}
	if len(orphaned) != 1 || orphaned[0] != "removed-from-disk" {
		t.Errorf("orphaned = %v", orphaned)
	}
}

func TestDriftClean(t *testing.T) {
	m := &Manifest{Skills: []Entry{{Name: "only"}}}
	discovered := map[string]*skill.Skill{"only": {Name: "only"}}

	unlisted, orphaned := m.Drift(discovered)
	if len(unlisted) != 0 || len(orphaned) != 0 {
		t.Errorf("expected no drift, got unlisted=%v orphaned=%v", unlisted, orphaned)
	}
}
