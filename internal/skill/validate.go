package skill

import (
	"fmt"
	"os"
	"path/filepath"
)

// Problem describes a single validation finding for a skill directory.
type Problem struct {
	Severity Severity
	Message  string
}

// Severity classifies a validation problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidateDir checks that a directory is a well-formed skill: SKILL.md
// exists, its frontmatter parses with name and description set, and the
// declared name matches the directory. The original setup scripts never
// enforced any of this; here a skill is only considered valid when it
// passes.
func ValidateDir(dir string) []Problem {
	var problems []Problem

	info, err := os.Stat(dir)
	if err != nil {
		return []Problem{{SeverityError, fmt.Sprintf("cannot read directory: %v", err)}}
	}
	if !info.IsDir() {
		return []Problem{{SeverityError, "not a directory"}}
	}

	metaPath := filepath.Join(dir, MetadataFileName)
	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		return []Problem{{SeverityError, MetadataFileName + " is missing"}}
	}

	s, err := Load(metaPath)
	if err != nil {
		return []Problem{{SeverityError, err.Error()}}
	}

	if s.Name != filepath.Base(dir) {
		problems = append(problems, Problem{
			SeverityWarning,
			fmt.Sprintf("frontmatter name '%s' does not match directory name '%s'", s.Name, filepath.Base(dir)),
		})
	}

	if s.Body == "" {
		problems = append(problems, Problem{SeverityWarning, "skill has no instructions body"})
	}

	return problems
}

// HasErrors reports whether any problem is of error severity.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}
