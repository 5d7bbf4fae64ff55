package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/requirements"
	"skillsmith/internal/skill"
	"skillsmith/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:     "info <name>",
	Aliases: []string{"show"},
	Short:   "Show a skill in detail",
	Long:    `Show a skill's metadata, location, and the beginning of its instructions.`,
	Args:    cobra.ExactArgs(1),
	Run:     runInfo,
}

const infoBodyPreviewLines = 20

func runInfo(cmd *cobra.Command, args []string) {
	name := args[0]
	settings := config.LoadSettings()

	discovery, err := skill.NewDiscovery(skill.WithDefaultDirs(settings.AgentDirName))
	if err != nil {
		exitWithError(err.Error())
	}

	s, err := discovery.Get(name)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  " + s.Name))
	fmt.Println()
	fmt.Printf("  %s\n", ui.SkillBadge())
	fmt.Println()

	if s.Description != "" {
		for _, line := range ui.WrapText(s.Description, ui.DescriptionWidth()) {
			fmt.Println("  " + line)
		}
		fmt.Println()
	}

	fmt.Println(ui.Subtitle.Render("  Details"))
	fmt.Println("  " + ui.Divider(40))
	if s.Version != "" {
		fmt.Printf("  Version:   %s\n", s.Version)
	}
	fmt.Printf("  Directory: %s\n", s.Directory)
	fmt.Println()

	reportRequirements(s)

	if s.Body == "" {
		return
	}

	fmt.Println(ui.Subtitle.Render("  Instructions"))
	fmt.Println("  " + ui.Divider(40))

	lines := strings.Split(s.Body, "\n")
	preview := lines
	if len(lines) > infoBodyPreviewLines {
		preview = lines[:infoBodyPreviewLines]
	}
	for _, line := range preview {
		fmt.Println(ui.Render(ui.Muted, "  "+line))
	}
	if len(lines) > infoBodyPreviewLines {
		fmt.Println(ui.Render(ui.Dim, fmt.Sprintf("  ... %d more line(s) in %s", len(lines)-infoBodyPreviewLines, skill.MetadataFileName)))
	}
	fmt.Println()
}

// reportRequirements lists what the skill needs from the environment and
// whether each need is currently met.
func reportRequirements(s *skill.Skill) {
	reqs := requirements.Scan(s)
	if len(reqs) == 0 {
		return
	}

	fmt.Println(ui.Subtitle.Render("  Requirements"))
	fmt.Println("  " + ui.Divider(40))
	for _, result := range requirements.VerifyAll(reqs) {
		req := result.Requirement
		if result.Satisfied {
			fmt.Printf("  %s %s (%s)\n", ui.Success.Render("✓"), req.Value, req.Type)
		} else {
			fmt.Printf("  %s %s\n", ui.Warning.Render("!"), result.Message)
		}
	}
	fmt.Println()
}
