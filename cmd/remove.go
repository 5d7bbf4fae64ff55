package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/skill"
	"skillsmith/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove an installed skill",
	Long: `Remove a skill directory from the skill tree.

Examples:
  skillsmith remove eye-tracking-analysis
  skillsmith remove workflow-helper --local`,
	Args: cobra.ExactArgs(1),
	Run:  runRemove,
}

var removeLocal bool

func init() {
	removeCmd.Flags().BoolVarP(&removeLocal, "local", "l", false, "Remove from the project-local skill tree")
}

func runRemove(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	name := args[0]
	settings := config.LoadSettings()

	paths, err := resolvePaths(settings, removeLocal)
	if err != nil {
		exitWithError(err.Error())
	}

	skillDir := filepath.Join(paths.SkillsDir, name)

	// Refuse to delete directories that are not skills.
	metaPath := filepath.Join(skillDir, skill.MetadataFileName)
	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		exitWithError(fmt.Sprintf("skill '%s' not found in %s", name, paths.SkillsDir))
	}

	if err := os.RemoveAll(skillDir); err != nil {
		exitWithError(fmt.Sprintf("failed to remove skill '%s': %v", name, err))
	}

	state, err := config.LoadState(paths.StateFile)
	if err == nil {
		state.RemoveSource(name)
		if err := config.SaveState(paths.StateFile, state); err != nil {
			fmt.Println(ui.WarningLine(fmt.Sprintf("Failed to update state: %v", err)))
		}
	}

	fmt.Println()
	fmt.Println(ui.SuccessLine(fmt.Sprintf("Removed skill '%s' from %s", name, skillDir)))
	fmt.Println()

	if !removeSkipManifest() {
		refreshManifest(ctx, settings)
	}
}

// removeSkipManifest reports whether the manifest refresh should be
// skipped because the agent CLI is absent. Removal still succeeds; the
// manifest just goes stale until the next setup.
func removeSkipManifest() bool {
	settings := config.LoadSettings()
	client := newAgentClient(settings)
	if client.Installed() {
		return false
	}
	fmt.Println(ui.WarningLine(fmt.Sprintf("Agent CLI '%s' not installed; manifest not regenerated", settings.AgentBin)))
	return true
}
