package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"skillsmith/internal/config"
	"skillsmith/internal/logger"
	"skillsmith/internal/reconcile"
	"skillsmith/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch skill sources and re-sync on change",
	Long: `Continuously watch the configured skill source directories and copy
changed sources into the skill tree, then regenerate the agent's manifest.

Events are debounced so a burst of writes triggers a single sync.
Stop with Ctrl-C.`,
	Run: runWatch,
}

var (
	watchLocal    bool
	watchDebounce int
)

func init() {
	watchCmd.Flags().BoolVarP(&watchLocal, "local", "l", false, "Sync into the project-local skill tree")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500, "Debounce window in milliseconds")
}

func runWatch(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	settings := config.LoadSettings()

	paths, err := resolvePaths(settings, watchLocal)
	if err != nil {
		exitWithError(err.Error())
	}

	sources, err := settings.ExpandSources()
	if err != nil {
		exitWithError(err.Error())
	}
	if len(sources) == 0 {
		exitWithError("no skill sources configured; set 'sources' in config")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		exitWithError(err.Error())
	}
	defer watcher.Close()

	for _, src := range sources {
		if err := watcher.Add(src); err != nil {
			exitWithError(fmt.Sprintf("failed to watch %s: %v", src, err))
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println()
		fmt.Println(ui.WarningLine("Stopping watch..."))
		cancel()
	}()

	fmt.Println()
	fmt.Println(ui.Title.Render("  Watching skill sources..."))
	for _, src := range sources {
		fmt.Println(ui.Render(ui.Dim, "    "+src))
	}
	fmt.Println()

	debounce := time.Duration(watchDebounce) * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			logger.G(ctx).WithField("event", event.String()).Debug("file event")

			// Reset the debounce window on every event.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Println(ui.WarningLine(fmt.Sprintf("Watch error: %v", err)))

		case <-pending:
			resyncSources(ctx, settings, paths, sources)
		}
	}
}

// resyncSources re-copies every changed source and refreshes the manifest
// once when anything moved.
func resyncSources(ctx context.Context, settings *config.Settings, paths *config.Paths, sources []string) {
	state, err := config.LoadState(paths.StateFile)
	if err != nil {
		fmt.Println(ui.WarningLine(err.Error()))
		return
	}

	changed := 0
	for _, src := range sources {
		name := filepath.Base(filepath.Clean(src))

		hash, err := reconcile.HashTree(src)
		if err != nil {
			fmt.Println(ui.WarningLine(fmt.Sprintf("Failed to hash %s: %v", src, err)))
			continue
		}

		tracked := state.FindSource(name)
		if tracked != nil && tracked.Hash == hash {
			continue
		}

		target := filepath.Join(paths.SkillsDir, name)
		if err := os.RemoveAll(target); err != nil {
			fmt.Println(ui.WarningLine(fmt.Sprintf("Failed to replace %s: %v", name, err)))
			continue
		}
		if err := reconcile.CopyTree(src, target); err != nil {
			fmt.Println(ui.WarningLine(fmt.Sprintf("Failed to copy %s: %v", name, err)))
			continue
		}

		now := time.Now()
		if tracked == nil {
			state.AddSource(config.TrackedSource{Name: name, Path: src, Hash: hash, AddedAt: now, SyncedAt: now})
		} else {
			tracked.Hash = hash
			tracked.SyncedAt = now
		}

		fmt.Println(ui.SuccessLine(fmt.Sprintf("Synced '%s' (%s)", name, now.Format("15:04:05"))))
		changed++
	}

	if changed == 0 {
		return
	}

	if err := config.SaveState(paths.StateFile, state); err != nil {
		fmt.Println(ui.WarningLine(fmt.Sprintf("Failed to save state: %v", err)))
	}

	client := newAgentClient(settings)
	if !client.Installed() {
		return
	}
	if err := client.RegenerateManifest(ctx); err != nil {
		fmt.Println(ui.WarningLine(err.Error()))
		return
	}
	fmt.Println(ui.InfoLine("Manifest regenerated"))
}
