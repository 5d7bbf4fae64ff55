// Package scaffold writes the template files for a new skill directory:
// SKILL.md with YAML frontmatter plus the conventional scripts, references
// and assets subdirectories.
package scaffold

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"skillsmith/internal/skill"
)

// Options controls skill creation.
type Options struct {
	Name        string
	Description string
	Force       bool // overwrite an existing skill directory
}

// Create writes a new skill directory under parent and returns its path.
func Create(parent string, opts Options) (string, error) {
	if err := validateName(opts.Name); err != nil {
		return "", err
	}
	if opts.Description == "" {
		opts.Description = "Describe when the agent should reach for this skill."
	}

	dir := filepath.Join(parent, opts.Name)
	if _, err := os.Stat(dir); err == nil && !opts.Force {
		return "", errors.Errorf("skill '%s' already exists at %s", opts.Name, dir)
	}

	for _, sub := range skill.ConventionalSubdirs {
		subdir := filepath.Join(dir, sub)
		if err := os.MkdirAll(subdir, 0o755); err != nil {
			return "", errors.Wrapf(err, "failed to create %s", subdir)
		}
		gitkeep := filepath.Join(subdir, ".gitkeep")
		if err := os.WriteFile(gitkeep, nil, 0o644); err != nil {
			return "", errors.Wrapf(err, "failed to create %s", gitkeep)
		}
	}

	content, err := renderMetadata(opts)
	if err != nil {
		return "", err
	}

	metaPath := filepath.Join(dir, skill.MetadataFileName)
	if err := os.WriteFile(metaPath, content, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", metaPath)
	}

	return dir, nil
}

// renderMetadata produces the SKILL.md template with frontmatter.
func renderMetadata(opts Options) ([]byte, error) {
	fm := skill.Metadata{
		Name:        opts.Name,
		Description: opts.Description,
	}

	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize frontmatter")
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(yamlBytes)
	b.WriteString("---\n\n")
	b.WriteString(bodyTemplate(opts.Name))

	return []byte(b.String()), nil
}

func bodyTemplate(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	title := strings.Join(words, " ")
	return `# ` + title + `

## When to use

Explain the situations where this skill applies.

## Instructions

1. Outline the steps the agent should follow.
2. Reference helper scripts under ` + "`scripts/`" + ` by relative path.
3. Keep supporting documents under ` + "`references/`" + ` and static files under ` + "`assets/`" + `.
`
}

// validateName enforces the directory-safe naming the skill tree expects:
// lowercase letters, digits, and hyphens.
func validateName(name string) error {
	if name == "" {
		return errors.New("skill name is required")
	}
	for _, r := range name {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !valid {
			return errors.Errorf("invalid skill name %q: use lowercase letters, digits, and hyphens", name)
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return errors.Errorf("invalid skill name %q: must not start or end with a hyphen", name)
	}
	return nil
}
