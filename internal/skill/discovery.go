package skill

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Discovery finds skills in configured directories. Directories listed
// first take precedence when two skills share a name.
type Discovery struct {
	dirs []string
}

// Option configures a Discovery.
type Option func(*Discovery) error

// WithDirs sets the skill directories to search, highest precedence first.
func WithDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.dirs = dirs
		return nil
	}
}

// WithDefaultDirs searches the project-local skill tree before the
// user-global one.
func WithDefaultDirs(agentDir string) Option {
	return func(d *Discovery) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		d.dirs = []string{
			filepath.Join(".", agentDir, "skills"),
			filepath.Join(home, agentDir, "skills"),
		}
		return nil
	}
}

// NewDiscovery creates a skill discovery instance.
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if len(d.dirs) == 0 {
		return nil, errors.New("no skill directories configured")
	}
	return d, nil
}

// Discover finds all skills from the configured directories.
func (d *Discovery) Discover() (map[string]*Skill, error) {
	found := make(map[string]*Skill)
	for _, dir := range d.dirs {
		d.discoverFromDir(dir, found)
	}
	return found, nil
}

// discoverFromDir scans one directory of skill subdirectories. Unreadable
// entries and directories without a parseable SKILL.md are skipped.
func (d *Discovery) discoverFromDir(dir string, found map[string]*Skill) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		entryPath := filepath.Join(dir, entry.Name())
		s, err := Load(filepath.Join(entryPath, MetadataFileName))
		if err != nil {
			continue
		}

		if _, exists := found[s.Name]; !exists {
			s.Directory = entryPath
			found[s.Name] = s
		}
	}
}

// Get returns a specific skill by name.
func (d *Discovery) Get(name string) (*Skill, error) {
	all, err := d.Discover()
	if err != nil {
		return nil, err
	}

	s, exists := all[name]
	if !exists {
		return nil, errors.Errorf("skill '%s' not found", name)
	}
	return s, nil
}

// Names returns the sorted names of all discovered skills.
func (d *Discovery) Names() ([]string, error) {
	all, err := d.Discover()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and parses a single SKILL.md file.
func Load(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)
	version, _ := metaData["version"].(string)

	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	return &Skill{
		Name:        name,
		Description: description,
		Version:     version,
		Body:        extractBody(string(content)),
	}, nil
}

// extractBody strips YAML frontmatter and returns the markdown body.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")
}

// FilterByAllowlist filters skills by an allowlist of names.
// An empty allowlist returns all skills.
func FilterByAllowlist(all map[string]*Skill, allowed []string) map[string]*Skill {
	if len(allowed) == 0 {
		return all
	}

	filtered := make(map[string]*Skill)
	for _, name := range allowed {
		if s, exists := all[name]; exists {
			filtered[name] = s
		}
	}
	return filtered
}
