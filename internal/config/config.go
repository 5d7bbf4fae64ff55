// Package config resolves skillsmith's paths, settings, and tracked-source
// state.
//
// User config lives at ~/.config/skillsmith/ (or $XDG_CONFIG_HOME), the
// skill tree inside the agent's own directory (default ~/.claude/skills).
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	// ConfigDir is the subdirectory name under .config.
	ConfigDir = "skillsmith"
	// StateFile tracks reconciled skill sources.
	StateFile = "state.json"
)

// Paths holds the filesystem locations skillsmith works with.
type Paths struct {
	// Home is the user's home directory.
	Home string

	// UserConfigDir is ~/.config/skillsmith (or $XDG_CONFIG_HOME/skillsmith).
	UserConfigDir string
	// StateFile is UserConfigDir/state.json.
	StateFile string

	// ProjectRoot is the enclosing project directory, empty outside one.
	ProjectRoot string

	// AgentDir is the agent's own directory, e.g. ~/.claude.
	AgentDir string
	// SkillsDir is where skills are installed, e.g. ~/.claude/skills.
	SkillsDir string
}

// GetPaths returns the user-global paths for the given agent directory
// name (e.g. ".claude").
func GetPaths(agentDirName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user home directory")
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	userConfigDir := filepath.Join(configHome, ConfigDir)

	agentDir := filepath.Join(home, agentDirName)

	return &Paths{
		Home:          home,
		UserConfigDir: userConfigDir,
		StateFile:     filepath.Join(userConfigDir, StateFile),
		ProjectRoot:   findProjectRoot(),
		AgentDir:      agentDir,
		SkillsDir:     filepath.Join(agentDir, "skills"),
	}, nil
}

// GetLocalPaths returns project-local paths; state is kept inside the
// project so a repository carries its own skill tracking.
func GetLocalPaths(agentDirName string) (*Paths, error) {
	projectRoot := findProjectRoot()
	if projectRoot == "" {
		return nil, errors.New("not in a project directory")
	}

	paths, err := GetPaths(agentDirName)
	if err != nil {
		return nil, err
	}

	agentDir := filepath.Join(projectRoot, agentDirName)
	paths.ProjectRoot = projectRoot
	paths.AgentDir = agentDir
	paths.SkillsDir = filepath.Join(agentDir, "skills")
	paths.StateFile = filepath.Join(projectRoot, ".config", ConfigDir, StateFile)

	return paths, nil
}

// findProjectRoot walks up from the working directory looking for a
// .config/skillsmith directory or a .git directory.
func findProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		candidate := filepath.Join(dir, ".config", ConfigDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return dir
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// EnsureDirs creates the directories skillsmith needs.
func (p *Paths) EnsureDirs() error {
	dirs := []string{
		p.UserConfigDir,
		p.AgentDir,
		p.SkillsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	return nil
}

// TrackedSource records a skill source directory that setup or sync has
// reconciled into the skill tree.
type TrackedSource struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Hash     string    `json:"hash,omitempty"`
	AddedAt  time.Time `json:"added_at,omitempty"`
	SyncedAt time.Time `json:"synced_at,omitempty"`
}

// State is the persistent record of tracked sources.
type State struct {
	Version string          `json:"version"`
	Sources []TrackedSource `json:"sources"`
}

// LoadState loads state from disk, returning an empty state when the file
// does not exist yet.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Version: "1"}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	return &state, nil
}

// SaveState writes state to disk, creating the parent directory if needed.
func SaveState(path string, state *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create state directory")
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize state")
	}

	return os.WriteFile(path, data, 0o644)
}

// AddSource adds or replaces a tracked source by name.
func (s *State) AddSource(src TrackedSource) {
	s.RemoveSource(src.Name)
	s.Sources = append(s.Sources, src)
}

// RemoveSource removes a tracked source by name.
func (s *State) RemoveSource(name string) {
	filtered := make([]TrackedSource, 0, len(s.Sources))
	for _, src := range s.Sources {
		if src.Name != name {
			filtered = append(filtered, src)
		}
	}
	s.Sources = filtered
}

// FindSource returns the tracked source with the given name, or nil.
func (s *State) FindSource(name string) *TrackedSource {
	for i := range s.Sources {
		if s.Sources[i].Name == name {
			return &s.Sources[i]
		}
	}
	return nil
}
