package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/backmassage/bundlekit/internal/aliases"
	"github.com/backmassage/bundlekit/internal/bundle"
	"github.com/backmassage/bundlekit/internal/config"
	"github.com/backmassage/bundlekit/internal/logging"
)

// debounce is how long the watcher waits for a burst of events to settle
// before rebuilding.
const debounce = 150 * time.Millisecond

// Watch builds once, then rebuilds whenever a file under the entrypoints'
// common directory changes. Build failures are logged and the watcher keeps
// going. It returns when ctx is canceled.
func Watch(ctx context.Context, cfg *config.Config, log *logging.Logger, b bundle.Bundler) error {
	root, err := watchRoot(cfg.Entrypoints)
	if err != nil {
		return err
	}
	outDir, err := filepath.Abs(cfg.OutDir)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addTree(w, root, outDir); err != nil {
		return err
	}

	rebuild := func() {
		if _, err := Run(ctx, cfg, log, b); err != nil && ctx.Err() == nil {
			log.Error("Build failed: %v", err)
		}
	}

	rebuild()
	log.Info("Watching %s for changes", root)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if within(ev.Name, outDir) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addTree(w, ev.Name, outDir)
				}
			}
			log.Debug(cfg.Verbose, "Change: %s", ev)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error: %v", err)

		case <-fire:
			fire = nil
			log.Info("Rebuilding...")
			rebuild()
		}
	}
}

func watchRoot(entrypoints []string) (string, error) {
	dirs := make([]string, 0, len(entrypoints))
	for _, e := range entrypoints {
		abs, err := filepath.Abs(e)
		if err != nil {
			return "", err
		}
		dirs = append(dirs, filepath.Dir(abs))
	}
	root := aliases.CommonAncestor(dirs)
	if root == "" {
		return "", ErrNoCommonRoot
	}
	return root, nil
}

// addTree watches root and every directory below it, except outDir,
// node_modules and hidden directories.
func addTree(w *fsnotify.Watcher, root, outDir string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (name == "node_modules" || strings.HasPrefix(name, ".") || within(path, outDir)) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func within(path, dir string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
