package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, dir, name, description, body string) string {
	t.Helper()

	skillDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))

	content := "---\nname: " + name + "\ndescription: " + description + "\n---\n\n" + body
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, MetadataFileName), []byte(content), 0o644))

	return skillDir
}

func TestDiscoverSkills(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "pdf-report", "Builds PDF reports from markdown", "Run the converter script.")
	writeSkill(t, dir, "saliency", "Generates saliency heatmaps", "Call the analysis script.")

	d, err := NewDiscovery(WithDirs(dir))
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "Builds PDF reports from markdown", found["pdf-report"].Description)
	assert.Equal(t, filepath.Join(dir, "saliency"), found["saliency"].Directory)
	assert.Equal(t, "Call the analysis script.", found["saliency"].Body)
}

func TestDiscoverPrecedence(t *testing.T) {
	local := t.TempDir()
	global := t.TempDir()
	writeSkill(t, local, "deploy", "local version", "")
	writeSkill(t, global, "deploy", "global version", "")

	d, err := NewDiscovery(WithDirs(local, global))
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "local version", found["deploy"].Description)
}

func TestDiscoverSkipsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "good", "a valid skill", "body")

	// Directory without SKILL.md
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	// SKILL.md without frontmatter
	noFM := filepath.Join(dir, "no-frontmatter")
	require.NoError(t, os.MkdirAll(noFM, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(noFM, MetadataFileName), []byte("just markdown"), 0o644))

	// Loose file at the top level
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("readme"), 0o644))

	d, err := NewDiscovery(WithDirs(dir))
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Contains(t, found, "good")
}

func TestDiscoverMissingDir(t *testing.T) {
	d, err := NewDiscovery(WithDirs(filepath.Join(t.TempDir(), "does-not-exist")))
	require.NoError(t, err)

	found, err := d.Discover()
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "capture", "captures screenshots", "")

	d, err := NewDiscovery(WithDirs(dir))
	require.NoError(t, err)

	s, err := d.Get("capture")
	require.NoError(t, err)
	assert.Equal(t, "capture", s.Name)

	_, err = d.Get("nope")
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	dir := t.TempDir()
	writeSkill(t, dir, "zeta", "z", "")
	writeSkill(t, dir, "alpha", "a", "")

	d, err := NewDiscovery(WithDirs(dir))
	require.NoError(t, err)

	names, err := d.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestLoadRequiresNameAndDescription(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, MetadataFileName)
	require.NoError(t, os.WriteFile(path, []byte("---\nname: only-name\n---\nbody"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "description")

	require.NoError(t, os.WriteFile(path, []byte("---\ndescription: only desc\n---\nbody"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "name")
}

func TestExtractBody(t *testing.T) {
	assert.Equal(t, "no frontmatter here", extractBody("no frontmatter here"))
	assert.Equal(t, "body text", extractBody("---\nname: x\n---\n\nbody text"))
	assert.Equal(t, "---\nunterminated", extractBody("---\nunterminated"))
}

func TestFilterByAllowlist(t *testing.T) {
	all := map[string]*Skill{
		"a": {Name: "a"},
		"b": {Name: "b"},
	}

	assert.Len(t, FilterByAllowlist(all, nil), 2)

	filtered := FilterByAllowlist(all, []string{"b", "missing"})
	require.Len(t, filtered, 1)
	assert.Contains(t, filtered, "b")
}
