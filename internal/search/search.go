// Package search maintains a keyword index over the skill tree so lookups
// do not re-parse every SKILL.md on each query.
package search

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"skillsmith/internal/skill"
)

// IndexFileName is the index file written into the skill tree root.
const IndexFileName = ".skillsmith-index"

// Index is the on-disk search index.
type Index struct {
	Generated time.Time `yaml:"generated"`
	Entries   []Entry   `yaml:"entries"`
}

// Entry is one indexed skill.
type Entry struct {
	Name        string   `yaml:"name"`
	Path        string   `yaml:"path"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
	ModTime     int64    `yaml:"mod_time"`
}

// Result is a scored search match.
type Result struct {
	Entry Entry
	Score int
}

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"this": true, "that": true, "these": true, "those": true, "it": true,
	"its": true, "when": true, "needs": true, "use": true,
	"using": true, "used": true, "can": true, "any": true, "other": true,
}

var nonWord = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Load reads the index from a skill tree. A missing index returns (nil, nil).
func Load(skillsDir string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(skillsDir, IndexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var idx Index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// Save writes the index into a skill tree.
func Save(skillsDir string, idx *Index) error {
	data, err := yaml.Marshal(idx)
	if err != nil {
		return err
	}
	header := "# skillsmith search index, regenerated automatically\n"
	return os.WriteFile(filepath.Join(skillsDir, IndexFileName), append([]byte(header), data...), 0o644)
}

// IsStale reports whether any SKILL.md changed since the index was built.
func IsStale(skillsDir string, idx *Index) bool {
	if idx == nil {
		return true
	}

	entries, err := os.ReadDir(skillsDir)
	if err != nil {
		return true
	}

	indexed := make(map[string]int64, len(idx.Entries))
	for _, e := range idx.Entries {
		indexed[e.Path] = e.ModTime
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(skillsDir, entry.Name())
		info, err := os.Stat(filepath.Join(dir, skill.MetadataFileName))
		if err != nil {
			continue
		}
		if modTime, ok := indexed[dir]; !ok || modTime != info.ModTime().Unix() {
			return true
		}
		delete(indexed, dir)
	}

	// leftovers were removed from disk
	return len(indexed) > 0
}

// Build scans skill trees and produces a fresh index.
func Build(skillsDirs ...string) *Index {
	idx := &Index{Generated: time.Now(), Entries: []Entry{}}

	for _, dir := range skillsDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			e, err := indexSkill(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			idx.Entries = append(idx.Entries, *e)
		}
	}

	return idx
}

func indexSkill(dir string) (*Entry, error) {
	metaPath := filepath.Join(dir, skill.MetadataFileName)
	info, err := os.Stat(metaPath)
	if err != nil {
		return nil, err
	}

	s, err := skill.Load(metaPath)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Name:        s.Name,
		Path:        dir,
		Description: s.Description,
		Keywords:    extractKeywords(s.Description),
		ModTime:     info.ModTime().Unix(),
	}, nil
}

func extractKeywords(description string) []string {
	normalized := nonWord.ReplaceAllString(strings.ToLower(description), " ")

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(normalized) {
		if len(word) < 3 || stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}

// Query scores every indexed skill against the query words and returns
// matches ordered best first.
func Query(idx *Index, query string) []Result {
	if idx == nil || len(idx.Entries) == 0 {
		return nil
	}

	words := strings.Fields(strings.ToLower(query))
	var results []Result
	for _, e := range idx.Entries {
		if score := scoreEntry(e, words); score > 0 {
			results = append(results, Result{Entry: e, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.Name < results[j].Entry.Name
	})
	return results
}

func scoreEntry(e Entry, words []string) int {
	name := strings.ToLower(e.Name)
	desc := strings.ToLower(e.Description)

	score := 0
	for _, w := range words {
		switch {
		case name == w:
			score += 100
		case strings.Contains(name, w):
			score += 50
		}
		if strings.Contains(desc, w) {
			score += 10
		}
		for _, kw := range e.Keywords {
			switch {
			case kw == w:
				score += 20
			case strings.Contains(kw, w):
				score += 5
			}
		}
	}
	return score
}
