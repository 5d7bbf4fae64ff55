package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/reconcile"
	"skillsmith/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Re-copy tracked skill sources that changed",
	Long: `Sync tracked skill sources into the skill tree.

Each source recorded by setup is hashed; sources whose contents changed
since the last sync are copied again, the rest are left alone. Finishes by
regenerating the agent's skill manifest.`,
	Run: runSync,
}

var (
	syncDry   bool
	syncLocal bool
)

func init() {
	syncCmd.Flags().BoolVar(&syncDry, "dry-run", false, "Check for changes without applying them")
	syncCmd.Flags().BoolVarP(&syncLocal, "local", "l", false, "Sync the project-local skill tree")
}

func runSync(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	settings := config.LoadSettings()

	paths, err := resolvePaths(settings, syncLocal)
	if err != nil {
		exitWithError(err.Error())
	}

	state, err := config.LoadState(paths.StateFile)
	if err != nil {
		exitWithError(err.Error())
	}

	if len(state.Sources) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No tracked sources. Run 'skillsmith setup' first."))
		fmt.Println()
		return
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  Syncing skill sources..."))
	fmt.Println()

	var updated, unchanged, failed int

	for i := range state.Sources {
		src := &state.Sources[i]
		fmt.Printf("  %s %s ", ui.SourceBadge(), ui.Render(ui.Highlight, src.Name))

		if _, err := os.Stat(src.Path); err != nil {
			fmt.Println(ui.Warning.Render("⚠ source missing"))
			failed++
			continue
		}

		hash, err := reconcile.HashTree(src.Path)
		if err != nil {
			fmt.Println(ui.Warning.Render("⚠ hash failed"))
			failed++
			continue
		}

		if hash == src.Hash {
			fmt.Println(ui.Muted.Render("✓ up to date"))
			unchanged++
			continue
		}

		if syncDry {
			fmt.Println(ui.Info.Render("↑ changes pending"))
			updated++
			continue
		}

		// Replace the installed copy with the changed source.
		target := filepath.Join(paths.SkillsDir, src.Name)
		if err := os.RemoveAll(target); err != nil {
			fmt.Println(ui.Warning.Render("⚠ remove failed"))
			failed++
			continue
		}
		if err := reconcile.CopyTree(src.Path, target); err != nil {
			fmt.Println(ui.Warning.Render("⚠ copy failed"))
			failed++
			continue
		}

		src.Hash = hash
		src.SyncedAt = time.Now()

		fmt.Println(ui.Success.Render("↑ updated"))
		updated++
	}

	if updated > 0 && !syncDry {
		if err := config.SaveState(paths.StateFile, state); err != nil {
			fmt.Println()
			fmt.Println(ui.WarningLine(fmt.Sprintf("Failed to save state: %v", err)))
		}
	}

	fmt.Println()
	fmt.Println(ui.Divider(50))
	fmt.Println()

	switch {
	case syncDry:
		fmt.Println(ui.Info.Render("  Dry run complete."))
	case updated > 0:
		fmt.Println(ui.Success.Render(fmt.Sprintf("  Updated %d source(s).", updated)))
	default:
		fmt.Println(ui.Success.Render("  All sources are up to date."))
	}

	if unchanged > 0 {
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  %d source(s) unchanged.", unchanged)))
	}
	if failed > 0 {
		fmt.Println(ui.Warning.Render(fmt.Sprintf("  %d source(s) failed to sync.", failed)))
	}
	fmt.Println()

	if updated > 0 && !syncDry {
		refreshManifest(ctx, settings)
	}
}
