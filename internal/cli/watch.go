package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchChecks runs the suites once, then again after every change to a
// suite file, until ctx is cancelled. Check failures are printed but do
// not stop the watch.
func watchChecks(ctx context.Context, opts *CheckOptions, paths []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rerun := func() {
		err := runChecks(opts, paths, cmd)
		if err != nil && !IsReported(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Watching for changes (Ctrl-C to stop)...")
	}

	rerun()
	err := watchSuites(ctx, paths, opts.log(), rerun)
	if err != nil {
		return WrapExitError(ExitCommandError, "watch failed", err)
	}
	return nil
}

// isSuiteFile reports whether path has a suite file extension.
func isSuiteFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}

// watchSuites monitors paths and calls onChange each time a suite file is
// written or created. Directories are watched with their subdirectories,
// except golden snapshot directories. It runs until ctx is cancelled.
func watchSuites(ctx context.Context, paths []string, logger *slog.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := addWatch(watcher, p); err != nil {
			return err
		}
	}
	logger.Info("check: watching for changes", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename, so Create counts as a change.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				_ = addWatch(watcher, event.Name)
				continue
			}
			if !isSuiteFile(event.Name) {
				continue
			}

			logger.Info("check: change detected", "path", event.Name)
			onChange()

			// Re-add single-file watches in case an atomic save replaced the inode.
			for _, p := range paths {
				if p == event.Name {
					_ = watcher.Add(p)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("check: watcher error", "err", err)
		}
	}
}

// addWatch adds p to the watcher; directories are added recursively.
func addWatch(watcher *fsnotify.Watcher, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(p)
	}
	return filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == "golden" {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
