package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/skill"
	"skillsmith/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Validate skill directories",
	Long: `Check that skill directories are well formed: SKILL.md present, its
frontmatter parseable with name and description set, and the declared name
matching the directory.

With no argument, every directory in the skill tree is checked, including
ones discovery would silently skip.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runValidate,
}

var validateLocal bool

func init() {
	validateCmd.Flags().BoolVarP(&validateLocal, "local", "l", false, "Validate the project-local skill tree")
}

func runValidate(cmd *cobra.Command, args []string) {
	settings := config.LoadSettings()

	paths, err := resolvePaths(settings, validateLocal)
	if err != nil {
		exitWithError(err.Error())
	}

	var dirs []string
	if len(args) == 1 {
		dirs = []string{filepath.Join(paths.SkillsDir, args[0])}
	} else {
		entries, err := os.ReadDir(paths.SkillsDir)
		if err != nil {
			exitWithError(fmt.Sprintf("cannot read skill tree %s: %v", paths.SkillsDir, err))
		}
		for _, entry := range entries {
			if entry.IsDir() {
				dirs = append(dirs, filepath.Join(paths.SkillsDir, entry.Name()))
			}
		}
		sort.Strings(dirs)
	}

	if len(dirs) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  Skill tree is empty, nothing to validate."))
		fmt.Println()
		return
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Validating"))
	fmt.Println()

	broken := 0
	for _, dir := range dirs {
		name := filepath.Base(dir)
		problems := skill.ValidateDir(dir)

		if len(problems) == 0 {
			fmt.Printf("  %s %s\n", ui.Success.Render("✓"), name)
			continue
		}

		if skill.HasErrors(problems) {
			broken++
			fmt.Printf("  %s %s\n", ui.Error.Render("✗"), name)
		} else {
			fmt.Printf("  %s %s\n", ui.Warning.Render("!"), name)
		}
		for _, p := range problems {
			fmt.Println(ui.Muted.Render("      " + string(p.Severity) + ": " + p.Message))
		}
	}

	fmt.Println()
	if broken > 0 {
		fmt.Println(ui.ErrorLine(fmt.Sprintf("%d of %d skill(s) invalid", broken, len(dirs))))
		fmt.Println()
		os.Exit(1)
	}
	fmt.Println(ui.SuccessLine(fmt.Sprintf("%d skill(s) valid", len(dirs))))
	fmt.Println()
}
