package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/microtype/compiler/load"
)

// debounceDelay coalesces editor write bursts into one regeneration.
const debounceDelay = 250 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Regenerate on declaration or config changes",
	Long: `watch generates once, then keeps watching the project directory and
every directory holding declaration files, regenerating on change.
Stop it with an interrupt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context(), projectDir(args))
	},
}

func runWatch(ctx context.Context, dir string) error {
	logger := newLogger()
	if err := runGenerate(ctx, dir); err != nil {
		// Keep watching: a diagnostic in the schema is exactly what the
		// user is about to fix.
		logger.Error("generate", "err", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := addWatchDirs(w, dir); err != nil {
		return err
	}
	logger.Info("watching for changes", "dir", dir)

	timer := time.NewTimer(debounceDelay)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(ev) {
				continue
			}
			logger.Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			if !pending {
				timer.Reset(debounceDelay)
				pending = true
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch", "err", err)
		case <-timer.C:
			pending = false
			if err := runGenerate(ctx, dir); err != nil {
				logger.Error("generate", "err", err)
			}
			// Inputs may have moved between directories.
			if err := addWatchDirs(w, dir); err != nil {
				logger.Error("watch", "err", err)
			}
		}
	}
}

// addWatchDirs registers the project directory and every directory a
// configured glob resolves declaration files in. Re-adding a watched
// directory is a no-op.
func addWatchDirs(w *fsnotify.Watcher, dir string) error {
	cfg, err := load.FromDir(dir)
	if err != nil {
		return err
	}
	paths, err := load.Discover(dir, cfg.Inputs)
	if err != nil {
		return err
	}
	dirs := map[string]bool{dir: true}
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return err
		}
	}
	return nil
}

// relevantEvent reports whether an event touches a declaration file or
// the project config.
func relevantEvent(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Ext(ev.Name) == load.Ext || filepath.Base(ev.Name) == load.ConfigFile
}
