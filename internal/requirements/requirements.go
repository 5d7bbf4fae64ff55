// Package requirements infers what a skill needs from its environment by
// scanning the SKILL.md body for environment variables and the bundled
// scripts for runtime interpreters.
package requirements

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"skillsmith/internal/skill"
)

// Type is the kind of requirement detected.
type Type string

const (
	TypeEnv     Type = "env"     // environment variable must be set
	TypeRuntime Type = "runtime" // interpreter must be on PATH
)

// Requirement is one detected need.
type Requirement struct {
	Type   Type   `json:"type"`
	Value  string `json:"value"`
	Source string `json:"source"` // "body" or "scripts/<file>"
}

// Result pairs a requirement with its verification outcome.
type Result struct {
	Requirement Requirement
	Satisfied   bool
	Message     string
}

var (
	envVarRe    = regexp.MustCompile(`\$\{?([A-Z][A-Z0-9_]{2,})\}?`)
	envExportRe = regexp.MustCompile(`export\s+([A-Z][A-Z0-9_]+)=`)

	// system-level variables that say nothing about the skill
	ignoredEnvVars = map[string]bool{
		"PATH": true, "HOME": true, "USER": true, "SHELL": true,
		"PWD": true, "OLDPWD": true, "TERM": true, "LANG": true,
		"LC_ALL": true, "EDITOR": true, "VISUAL": true,
		"XDG_CONFIG_HOME": true, "XDG_DATA_HOME": true,
		"TMPDIR": true, "TMP": true, "TEMP": true,
	}

	runtimeByExt = map[string]string{
		".py":   "python3",
		".js":   "node",
		".mjs":  "node",
		".cjs":  "node",
		".ts":   "node",
		".rb":   "ruby",
		".sh":   "bash",
		".bash": "bash",
	}
)

// Scan inspects a loaded skill and returns its deduplicated requirements.
func Scan(s *skill.Skill) []Requirement {
	seen := make(map[string]bool)
	var reqs []Requirement

	add := func(r Requirement) {
		key := string(r.Type) + ":" + r.Value
		if !seen[key] {
			seen[key] = true
			reqs = append(reqs, r)
		}
	}

	for _, line := range strings.Split(s.Body, "\n") {
		for _, re := range []*regexp.Regexp{envVarRe, envExportRe} {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				name := m[1]
				if ignoredEnvVars[name] {
					continue
				}
				add(Requirement{Type: TypeEnv, Value: name, Source: "body"})
			}
		}
	}

	for _, r := range fromScripts(s.Directory) {
		add(r)
	}

	return reqs
}

// fromScripts maps bundled script extensions to the interpreters they need.
func fromScripts(dir string) []Requirement {
	scriptsDir := filepath.Join(dir, "scripts")

	var reqs []Requirement
	filepath.Walk(scriptsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		runtime, ok := runtimeByExt[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = info.Name()
		}
		reqs = append(reqs, Requirement{Type: TypeRuntime, Value: runtime, Source: rel})
		return nil
	})
	return reqs
}

// Verify checks whether a single requirement is satisfied.
func Verify(req Requirement) Result {
	result := Result{Requirement: req}

	switch req.Type {
	case TypeRuntime:
		_, err := exec.LookPath(req.Value)
		result.Satisfied = err == nil
		if !result.Satisfied {
			result.Message = "interpreter not found on PATH: " + req.Value
		}
	case TypeEnv:
		result.Satisfied = os.Getenv(req.Value) != ""
		if !result.Satisfied {
			result.Message = "environment variable not set: " + req.Value
		}
	default:
		result.Satisfied = true
	}

	return result
}

// VerifyAll verifies every requirement in order.
func VerifyAll(reqs []Requirement) []Result {
	results := make([]Result, len(reqs))
	for i, req := range reqs {
		results[i] = Verify(req)
	}
	return results
}

// HasUnsatisfied reports whether any result failed verification.
func HasUnsatisfied(results []Result) bool {
	for _, r := range results {
		if !r.Satisfied {
			return true
		}
	}
	return false
}
