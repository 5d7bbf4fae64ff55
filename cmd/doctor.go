package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/gitrepo"
	"skillsmith/internal/manifest"
	"skillsmith/internal/requirements"
	"skillsmith/internal/skill"
	"skillsmith/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment and skill tree health",
	Long: `Verify everything the setup flow depends on:

  - git and the agent CLI are installed
  - the skill tree exists and is writable
  - the ignore-file entry is present
  - the agent's manifest matches the skills on disk`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	settings := config.LoadSettings()

	paths, err := config.GetPaths(settings.AgentDirName)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Diagnosing"))
	fmt.Println()

	healthy := true

	// External tools
	healthy = check(gitrepo.IsInstalled(), "git installed", "install git to enable remote restore") && healthy

	client := newAgentClient(settings)
	healthy = check(client.Installed(),
		fmt.Sprintf("agent CLI '%s' installed", settings.AgentBin),
		"skill manifest cannot be regenerated without it") && healthy

	// Skill tree
	info, err := os.Stat(paths.SkillsDir)
	treeOK := err == nil && info.IsDir()
	healthy = check(treeOK, "skill tree exists at "+paths.SkillsDir, "run 'skillsmith setup'") && healthy

	// Ignore entry
	ignorePath := settings.IgnoreFile
	if !filepath.IsAbs(ignorePath) && paths.ProjectRoot != "" {
		ignorePath = filepath.Join(paths.ProjectRoot, ignorePath)
	}
	entryPresent := ignoreHasEntry(ignorePath, settings.IgnoreEntry)
	check(entryPresent,
		fmt.Sprintf("ignore entry '%s' present in %s", settings.IgnoreEntry, ignorePath),
		"run 'skillsmith setup' to add it")

	// Manifest drift
	if treeOK {
		reportManifestDrift(paths, settings)
		reportUnmetRequirements(paths)
	}

	fmt.Println()
	if healthy {
		fmt.Println(ui.SuccessLine("Environment looks healthy"))
	} else {
		fmt.Println(ui.ErrorLine("Problems found; see above"))
	}
	fmt.Println(ui.PageFooter())

	if !healthy {
		os.Exit(1)
	}
}

// check prints a single diagnostic line and returns ok.
func check(ok bool, label, hint string) bool {
	if ok {
		fmt.Printf("  %s %s\n", ui.Success.Render("✓"), label)
		return true
	}
	fmt.Printf("  %s %s\n", ui.Error.Render("✗"), label)
	if hint != "" {
		fmt.Println(ui.Muted.Render("      " + hint))
	}
	return false
}

func ignoreHasEntry(path, entry string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == strings.TrimSpace(entry) {
			return true
		}
	}
	return false
}

// reportManifestDrift compares the manifest the agent CLI generated with
// the skills actually on disk.
func reportManifestDrift(paths *config.Paths, settings *config.Settings) {
	manifestPath := filepath.Join(paths.SkillsDir, manifest.FileName)

	m, err := manifest.Load(manifestPath)
	if err != nil {
		check(false, "skill manifest readable at "+manifestPath, "run 'skillsmith setup' to regenerate it")
		return
	}
	check(true, fmt.Sprintf("skill manifest lists %d skill(s)", len(m.Skills)), "")

	discovery, err := skill.NewDiscovery(skill.WithDirs(paths.SkillsDir))
	if err != nil {
		return
	}
	discovered, err := discovery.Discover()
	if err != nil {
		return
	}

	unlisted, orphaned := m.Drift(discovered)
	if len(unlisted) == 0 && len(orphaned) == 0 {
		check(true, "manifest matches skills on disk", "")
		return
	}

	check(false, "manifest out of date", "run 'skillsmith setup' to regenerate it")
	for _, name := range unlisted {
		fmt.Println(ui.Muted.Render("      on disk but not advertised: " + name))
	}
	for _, name := range orphaned {
		fmt.Println(ui.Muted.Render("      advertised but missing on disk: " + name))
	}
}

// reportUnmetRequirements scans every installed skill for environment
// variables and interpreters it needs but the host lacks. Unmet needs are
// warnings; the skill tree itself is still healthy.
func reportUnmetRequirements(paths *config.Paths) {
	discovery, err := skill.NewDiscovery(skill.WithDirs(paths.SkillsDir))
	if err != nil {
		return
	}
	discovered, err := discovery.Discover()
	if err != nil {
		return
	}

	names := make([]string, 0, len(discovered))
	for name := range discovered {
		names = append(names, name)
	}
	sort.Strings(names)

	unmet := 0
	for _, name := range names {
		s := discovered[name]
		for _, result := range requirements.VerifyAll(requirements.Scan(s)) {
			if result.Satisfied {
				continue
			}
			if unmet == 0 {
				fmt.Printf("  %s %s\n", ui.Warning.Render("!"), "some skills have unmet requirements")
			}
			unmet++
			fmt.Println(ui.Muted.Render("      " + name + ": " + result.Message))
		}
	}
	if unmet == 0 {
		check(true, "skill requirements satisfied", "")
	}
}
