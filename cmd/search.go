package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/search"
	"skillsmith/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"find"},
	Short:   "Search installed skills by keyword",
	Long: `Search skill names, descriptions, and extracted keywords.

The index is rebuilt automatically when any skill changed since the last
search.

Examples:
  skillsmith search pdf
  skillsmith search "commit messages"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

var searchLocal bool

func init() {
	searchCmd.Flags().BoolVarP(&searchLocal, "local", "l", false, "Search the project-local skill tree")
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	settings := config.LoadSettings()

	paths, err := resolvePaths(settings, searchLocal)
	if err != nil {
		exitWithError(err.Error())
	}

	idx, err := search.Load(paths.SkillsDir)
	if err != nil {
		exitWithError(err.Error())
	}
	if search.IsStale(paths.SkillsDir, idx) {
		idx = search.Build(paths.SkillsDir)
		if err := search.Save(paths.SkillsDir, idx); err != nil {
			exitWithError(err.Error())
		}
	}

	results := search.Query(idx, query)
	if len(results) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No skills match '" + query + "'."))
		fmt.Println()
		return
	}

	fmt.Println()
	fmt.Println(ui.SectionHeader("Search Results"))
	fmt.Println()

	descWidth := ui.DescriptionWidth()
	descStyle := lipgloss.NewStyle().Foreground(ui.Gray)
	for _, r := range results {
		fmt.Printf("  %s %s\n", ui.SkillBadge(), ui.Render(ui.Highlight, r.Entry.Name))
		fmt.Printf("    %s\n", ui.Render(descStyle, ui.Truncate(r.Entry.Description, descWidth)))
	}

	fmt.Println()
	fmt.Println(ui.Render(ui.Dim, fmt.Sprintf("  %d match(es)", len(results))))
	fmt.Println(ui.PageFooter())
}
