package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"skillsmith/internal/agentcli"
	"skillsmith/internal/config"
	"skillsmith/internal/ghclient"
	"skillsmith/internal/gitrepo"
	"skillsmith/internal/reconcile"
	"skillsmith/internal/skill"
	"skillsmith/internal/ui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the agent's skill tree",
	Long: `Set up the agent's skill tree end to end.

The flow is idempotent; running it again is safe and skips work already
done:

  1. Ensure the skill tree and config directories exist
  2. Clone the remote skills repository if the tree is still empty
  3. Copy configured skill sources into the tree (existing skills kept)
  4. Keep the ignore-file entry for the skill tree present
  5. Regenerate the agent's skill manifest and list what it sees

Each step is checked; the first failure stops the run.`,
	Run: runSetup,
}

var (
	setupLocal        bool
	setupRemote       string
	setupRef          string
	setupSources      []string
	setupSkipManifest bool
)

func init() {
	setupCmd.Flags().BoolVarP(&setupLocal, "local", "l", false, "Set up the project-local skill tree instead of the user-global one")
	setupCmd.Flags().StringVar(&setupRemote, "remote", "", "Skills repository (owner/repo[@ref] or git URL), overrides config")
	setupCmd.Flags().StringVar(&setupRef, "ref", "", "Branch or tag to clone")
	setupCmd.Flags().StringArrayVarP(&setupSources, "source", "s", nil, "Skill source directory to copy in (repeatable)")
	setupCmd.Flags().BoolVar(&setupSkipManifest, "skip-manifest", false, "Skip the agent CLI manifest steps")
}

func runSetup(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	settings := config.LoadSettings()

	paths, err := resolvePaths(settings, setupLocal)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  Setting up the skill tree..."))
	fmt.Println()

	// Step 1: directories
	if err := paths.EnsureDirs(); err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.SuccessLine("Skill tree at " + paths.SkillsDir))

	state, err := config.LoadState(paths.StateFile)
	if err != nil {
		exitWithError(err.Error())
	}

	// Step 2: remote backup repository
	remote := settings.Remote
	if setupRemote != "" {
		remote = setupRemote
	}
	if remote != "" {
		if err := restoreFromRemote(ctx, remote, settings, paths); err != nil {
			exitWithError(err.Error())
		}
	}

	// Step 3: user skill sources
	sources, err := settings.ExpandSources()
	if err != nil {
		exitWithError(err.Error())
	}
	sources = append(sources, setupSources...)

	if len(sources) == 0 {
		fmt.Println(ui.WarningLine("No skill sources configured; nothing to copy"))
	} else {
		result, err := reconcile.SyncSources(ctx, sources, paths.SkillsDir)
		if err != nil {
			exitWithError(err.Error())
		}
		reportSync(result)
		trackSources(state, sources)
	}

	// Step 4: ignore file entry
	ignorePath := settings.IgnoreFile
	if !filepath.IsAbs(ignorePath) && paths.ProjectRoot != "" {
		ignorePath = filepath.Join(paths.ProjectRoot, ignorePath)
	}
	added, err := reconcile.EnsureLine(ctx, ignorePath, settings.IgnoreEntry)
	if err != nil {
		exitWithError(err.Error())
	}
	if added {
		fmt.Println(ui.SuccessLine(fmt.Sprintf("Added '%s' to %s", settings.IgnoreEntry, ignorePath)))
	} else {
		fmt.Println(ui.InfoLine(fmt.Sprintf("Ignore entry already present in %s", ignorePath)))
	}

	if err := config.SaveState(paths.StateFile, state); err != nil {
		exitWithError(err.Error())
	}

	// Step 5: agent manifest
	if !setupSkipManifest {
		refreshManifest(ctx, settings)
	}

	fmt.Println()
	fmt.Println(ui.Divider(50))
	fmt.Println()
	fmt.Println(ui.Highlight.Render("  Skill tree ready."))
	fmt.Println()
}

// restoreFromRemote clones the skills backup repository into the tree when
// the tree holds no skills yet. A populated tree skips the clone entirely.
func restoreFromRemote(ctx context.Context, remote string, settings *config.Settings, paths *config.Paths) error {
	if reconcile.Populated(paths.SkillsDir, skill.MetadataFileName) {
		fmt.Println(ui.InfoLine("Skill tree already populated, skipping clone"))
		return nil
	}

	if !gitrepo.IsInstalled() {
		return fmt.Errorf("git is not installed; cannot clone %s", remote)
	}

	cloneURL := remote
	ref := setupRef
	if ref == "" {
		ref = settings.RemoteRef
	}

	// owner/repo shorthand goes through the GitHub API for the clone URL
	// and default branch; other git URLs are used as-is.
	if ghclient.IsGitHubRemote(remote) {
		owner, repo, parsedRef, err := ghclient.ParseRemote(remote)
		if err != nil {
			return err
		}
		if ref == "" {
			ref = parsedRef
		}

		resolved, err := ghclient.New().Resolve(ctx, owner, repo)
		if err != nil {
			return err
		}
		cloneURL = resolved.CloneURL
		fmt.Println(ui.InfoLine(fmt.Sprintf("Resolved %s/%s (default branch %s)", owner, repo, resolved.DefaultBranch)))
	}

	tmpDir, err := os.MkdirTemp("", "skillsmith-clone-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	fmt.Println(ui.InfoLine("Cloning " + remote))
	if err := gitrepo.New().Clone(ctx, cloneURL, ref, tmpDir); err != nil {
		return err
	}

	// Backup repositories often nest their skills one folder deep.
	if _, err := reconcile.Flatten(ctx, tmpDir); err != nil {
		return err
	}

	skillDirs, err := findSkillDirs(tmpDir)
	if err != nil {
		return err
	}
	if len(skillDirs) == 0 {
		fmt.Println(ui.WarningLine("Remote repository contains no skills"))
		return nil
	}

	result, err := reconcile.SyncSources(ctx, skillDirs, paths.SkillsDir)
	if err != nil {
		return err
	}
	fmt.Println(ui.SuccessLine(fmt.Sprintf("Restored %d skill(s) from %s", len(result.Copied), remote)))
	return nil
}

// findSkillDirs walks root for directories containing a metadata file.
func findSkillDirs(root string) ([]string, error) {
	var skillDirs []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && (info.Name() == ".git" || info.Name() == "node_modules") {
			return filepath.SkipDir
		}

		if !info.IsDir() && info.Name() == skill.MetadataFileName {
			skillDirs = append(skillDirs, filepath.Dir(path))
		}

		return nil
	})

	return skillDirs, err
}

func reportSync(result *reconcile.SyncResult) {
	for _, name := range result.Copied {
		fmt.Println(ui.SuccessLine("Copied skill '" + name + "'"))
	}
	for _, name := range result.Skipped {
		fmt.Println(ui.InfoLine("Skill '" + name + "' already present, skipped"))
	}
}

// trackSources records the synced source directories in state so sync can
// detect later changes.
func trackSources(state *config.State, sources []string) {
	now := time.Now()
	for _, src := range sources {
		name := filepath.Base(filepath.Clean(src))
		hash, err := reconcile.HashTree(src)
		if err != nil {
			continue
		}

		tracked := state.FindSource(name)
		if tracked == nil {
			state.AddSource(config.TrackedSource{
				Name:     name,
				Path:     src,
				Hash:     hash,
				AddedAt:  now,
				SyncedAt: now,
			})
			continue
		}
		tracked.Path = src
		tracked.Hash = hash
		tracked.SyncedAt = now
	}
}

func newAgentClient(settings *config.Settings) *agentcli.Client {
	return agentcli.New(settings.AgentBin,
		agentcli.WithRegenArgs(settings.RegenArgs...),
		agentcli.WithListArgs(settings.ListArgs...))
}

// refreshManifest drives the external agent CLI: regenerate the manifest,
// then list what the agent now sees. Both exits are checked.
func refreshManifest(ctx context.Context, settings *config.Settings) {
	client := newAgentClient(settings)

	if !client.Installed() {
		exitWithError(fmt.Sprintf("agent CLI '%s' is not installed", settings.AgentBin))
	}

	if err := client.RegenerateManifest(ctx); err != nil {
		exitWithError(err.Error())
	}
	fmt.Println(ui.SuccessLine("Regenerated skill manifest"))

	names, err := client.ListInstalled(ctx)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println(ui.InfoLine(fmt.Sprintf("Agent sees %d skill(s):", len(names))))
	for _, name := range names {
		fmt.Println(ui.Muted.Render("      " + name))
	}
}
