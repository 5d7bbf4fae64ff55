// Package manifest reads the skill manifest generated by the external
// agent CLI. skillsmith never writes this file; it parses it to detect
// drift between what the agent advertises and what is on disk.
package manifest

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"

	"skillsmith/internal/skill"
)

// FileName is the manifest file the agent CLI maintains under its
// skills directory.
const FileName = "skills-manifest.json"

// Entry is one advertised skill.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path,omitempty"`
}

// Manifest is the generated manifest file.
type Manifest struct {
	Version     string    `json:"version,omitempty"`
	GeneratedAt time.Time `json:"generated_at,omitempty"`
	Skills      []Entry   `json:"skills"`
}

// Load reads a manifest from disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %s", path)
	}

	return &m, nil
}

// Names returns the sorted skill names in the manifest.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Skills))
	for _, e := range m.Skills {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Drift compares the manifest against discovered skills. Unlisted holds
// skills on disk the manifest misses (the agent cannot see them until
// the manifest is regenerated); orphaned holds manifest entries whose
// skill directory is gone.
func (m *Manifest) Drift(discovered map[string]*skill.Skill) (unlisted, orphaned []string) {
	inManifest := make(map[string]bool, len(m.Skills))
	for _, e := range m.Skills {
		inManifest[e.Name] = true
	}

	for name := range discovered {
		if !inManifest[name] {
			unlisted = append(unlisted, name)
		}
	}
	for _, e := range m.Skills {
		if _, ok := discovered[e.Name]; !ok {
			orphaned = append(orphaned, e.Name)
		}
	}

	sort.Strings(unlisted)
	sort.Strings(orphaned)
	return unlisted, orphaned
}
