package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Settings is the user-tunable configuration, resolved through viper from
// (highest precedence first) flags, SKILLSMITH_* environment variables,
// and ~/.config/skillsmith/config.yaml.
type Settings struct {
	// AgentDirName is the agent's dot-directory name, e.g. ".claude".
	AgentDirName string
	// AgentBin is the external agent CLI binary.
	AgentBin string
	// RegenArgs and ListArgs are the agent CLI subcommands skillsmith
	// invokes after changing the skill tree.
	RegenArgs []string
	ListArgs  []string

	// Remote is the git URL (or owner/repo shorthand) of the skills
	// backup repository cloned on first setup.
	Remote string
	// RemoteRef optionally pins a branch or tag.
	RemoteRef string

	// Sources are directory patterns (doublestar globs, ~ expanded) whose
	// skill directories get copied into the skill tree.
	Sources []string

	// IgnoreFile is the ignore-list file the setup flow appends to, and
	// IgnoreEntry the line kept present in it.
	IgnoreFile  string
	IgnoreEntry string

	// Allowed optionally restricts discovery to the named skills.
	Allowed []string
}

// InitViper wires viper's environment and config file handling. Called
// once from the root command.
func InitViper() {
	viper.SetEnvPrefix("SKILLSMITH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		viper.AddConfigPath(filepath.Join(configHome, ConfigDir))
	}
	viper.AddConfigPath(filepath.Join("$HOME", ".config", ConfigDir))
	viper.AddConfigPath(".")

	viper.SetDefault("agent.dir", ".claude")
	viper.SetDefault("agent.bin", "claude")
	viper.SetDefault("agent.regen_args", []string{"skills", "reload"})
	viper.SetDefault("agent.list_args", []string{"skills", "list"})
	viper.SetDefault("ignore.file", ".gitignore")
	viper.SetDefault("ignore.entry", ".claude/skills/")

	// Missing config file is fine; defaults and env still apply.
	_ = viper.ReadInConfig()
}

// LoadSettings materializes Settings from viper.
func LoadSettings() *Settings {
	return &Settings{
		AgentDirName: viper.GetString("agent.dir"),
		AgentBin:     viper.GetString("agent.bin"),
		RegenArgs:    viper.GetStringSlice("agent.regen_args"),
		ListArgs:     viper.GetStringSlice("agent.list_args"),
		Remote:       viper.GetString("remote.url"),
		RemoteRef:    viper.GetString("remote.ref"),
		Sources:      viper.GetStringSlice("sources"),
		IgnoreFile:   viper.GetString("ignore.file"),
		IgnoreEntry:  viper.GetString("ignore.entry"),
		Allowed:      viper.GetStringSlice("skills.allowed"),
	}
}

// ExpandSources resolves the configured source patterns to existing
// directories. Patterns support doublestar globs and a leading ~.
func (s *Settings) ExpandSources() ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, pattern := range s.Sources {
		expanded, err := expandHome(pattern)
		if err != nil {
			return nil, err
		}

		matches, err := doublestar.FilepathGlob(expanded)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid source pattern %q", pattern)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			if !seen[match] {
				seen[match] = true
				dirs = append(dirs, match)
			}
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
