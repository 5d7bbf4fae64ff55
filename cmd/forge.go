package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/scaffold"
	"skillsmith/internal/ui"
)

var forgeCmd = &cobra.Command{
	Use:     "forge <name>",
	Aliases: []string{"new", "create"},
	Short:   "Forge a new skill from the template",
	Long: `Create a new skill directory with the standard layout:

  <name>/
    SKILL.md      metadata and instructions
    scripts/      helper scripts the skill calls
    references/   supporting documents
    assets/       static files

Examples:
  skillsmith forge eye-tracking-analysis -d "Generates saliency heatmaps"
  skillsmith forge workflow-helper --local`,
	Args: cobra.ExactArgs(1),
	Run:  runForge,
}

var (
	forgeDescription string
	forgeLocal       bool
	forgeForce       bool
)

func init() {
	forgeCmd.Flags().StringVarP(&forgeDescription, "description", "d", "", "What the skill does, shown to the agent")
	forgeCmd.Flags().BoolVarP(&forgeLocal, "local", "l", false, "Create in the project-local skill tree")
	forgeCmd.Flags().BoolVarP(&forgeForce, "force", "f", false, "Overwrite an existing skill")
}

func runForge(cmd *cobra.Command, args []string) {
	name := args[0]
	settings := config.LoadSettings()

	paths, err := resolvePaths(settings, forgeLocal)
	if err != nil {
		exitWithError(err.Error())
	}

	if err := paths.EnsureDirs(); err != nil {
		exitWithError(err.Error())
	}

	dir, err := scaffold.Create(paths.SkillsDir, scaffold.Options{
		Name:        name,
		Description: forgeDescription,
		Force:       forgeForce,
	})
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Printf("  %s %s\n", ui.SkillBadge(), ui.Render(ui.Highlight, name))
	fmt.Println()
	fmt.Println(ui.SuccessLine("Forged at " + dir))
	fmt.Println(ui.InfoLine("Edit SKILL.md, then run 'skillsmith setup' to refresh the manifest"))
	fmt.Println()
}
