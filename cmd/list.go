package cmd

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/skill"
	"skillsmith/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed skills",
	Long:    `Display every skill discovered in the project-local and user-global skill trees.`,
	Run:     runList,
}

var listShort bool

func init() {
	listCmd.Flags().BoolVar(&listShort, "short", false, "Truncate descriptions to one line")
}

func runList(cmd *cobra.Command, args []string) {
	settings := config.LoadSettings()

	discovery, err := skill.NewDiscovery(skill.WithDefaultDirs(settings.AgentDirName))
	if err != nil {
		exitWithError(err.Error())
	}

	all, err := discovery.Discover()
	if err != nil {
		exitWithError(err.Error())
	}
	all = skill.FilterByAllowlist(all, settings.Allowed)

	if len(all) == 0 {
		fmt.Print(ui.EmptyForge())
		return
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Println(ui.SectionHeader("Installed Skills"))
	fmt.Println()

	descWidth := ui.DescriptionWidth()
	for _, name := range names {
		s := all[name]

		fmt.Printf("  %s %s\n", ui.SkillBadge(), ui.Render(ui.Highlight, s.Name))
		fmt.Println(ui.Render(ui.Dim, "    "+s.Directory))

		descStyle := lipgloss.NewStyle().Foreground(ui.Gray)
		if listShort {
			fmt.Printf("    %s\n", ui.Render(descStyle, ui.Truncate(s.Description, descWidth)))
		} else {
			for _, line := range ui.WrapText(s.Description, descWidth) {
				fmt.Printf("    %s\n", ui.Render(descStyle, line))
			}
		}
		fmt.Println()
	}

	fmt.Println(ui.Render(ui.Dim, fmt.Sprintf("  %d skill(s) installed", len(all))))
	fmt.Println(ui.PageFooter())
}
