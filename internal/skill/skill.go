// Package skill models installed skills and discovers them on disk.
// A skill is a directory containing a SKILL.md file whose YAML frontmatter
// declares the skill's name and description; scripts, references and assets
// live in optional subdirectories next to it.
package skill

// MetadataFileName is the metadata file every valid skill directory carries.
const MetadataFileName = "SKILL.md"

// Subdirectories conventionally present in a skill directory.
var ConventionalSubdirs = []string{"scripts", "references", "assets"}

// Skill represents a discovered skill.
type Skill struct {
	Name        string // Unique name from frontmatter
	Description string // What the skill does, shown to the agent
	Version     string // Optional version from frontmatter
	Directory   string // Full path to the skill directory
	Body        string // SKILL.md body with frontmatter stripped
}

// Metadata is the YAML frontmatter of a SKILL.md file.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version,omitempty"`
}
