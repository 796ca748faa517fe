package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/bundlekit/internal/aliases"
	"github.com/backmassage/bundlekit/internal/bundle"
	"github.com/backmassage/bundlekit/internal/config"
	"github.com/backmassage/bundlekit/internal/display"
	"github.com/backmassage/bundlekit/internal/emit"
	"github.com/backmassage/bundlekit/internal/inject"
	"github.com/backmassage/bundlekit/internal/logging"
	"github.com/backmassage/bundlekit/internal/manifest"
	"github.com/backmassage/bundlekit/internal/naming"
)

// ErrNoCommonRoot is returned when alias handling is on but the entrypoints
// share no ancestor directory.
var ErrNoCommonRoot = errors.New("could not determine a common ancestor directory")

// Run performs one build. Per-file injection problems are logged and
// counted; bundling, manifest, emission and (with StrictNames) naming
// collision failures abort the run and are returned.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, b bundle.Bundler) (*RunStats, error) {
	start := time.Now()
	stats := &RunStats{}

	if cfg.DryRun {
		log.Info("Dry run: nothing will be written")
	} else {
		if err := PrepareOutDir(cfg.OutDir, cfg.ClearOutDir, log); err != nil {
			return stats, err
		}
		if cfg.CopyPublicDir {
			if err := CopyPublicDir(cfg.PublicDir, cfg.OutDir, cfg.PublicPath, log); err != nil {
				return stats, err
			}
		}
	}

	if cfg.HandleAliases && !cfg.DryRun {
		if err := rewriteAliases(cfg, log); err != nil {
			return stats, err
		}
	}

	res, err := bundleOnce(ctx, cfg, log, b)
	if err != nil {
		return stats, err
	}
	stats.Outputs = len(res.Outputs)

	html, err := DiscoverHTML(cfg.OutDir)
	if err != nil {
		return stats, fmt.Errorf("discover HTML files: %w", err)
	}
	stats.HTMLFiles = len(html)

	doc, table := manifest.Synthesize(res.Outputs, naming.Resolve(cfg.Naming), html)
	if err := checkCollisions(cfg, log, table, stats); err != nil {
		return stats, err
	}

	if !cfg.DryRun {
		if err := manifest.WriteFile(cfg.OutDir, doc); err != nil {
			return stats, err
		}
		log.Debug(cfg.Verbose, "Wrote %s", filepath.Join(cfg.OutDir, manifest.FileName))
	}

	if cfg.InjectScriptTag && !cfg.DryRun {
		results := inject.Inject(table.Scripts(), cfg.FilesToInject, cfg.OutDir, cfg.PublicPath, log)
		stats.recordInjections(results)
	}

	written, err := emit.Write(ctx, cfg.OutDir, res, table.Entries(), emit.Options{DryRun: cfg.DryRun})
	if err != nil {
		return stats, err
	}
	stats.Written = written
	stats.Duration = time.Since(start)

	logSummary(cfg, log, stats)
	return stats, nil
}

func rewriteAliases(cfg *config.Config, log *logging.Logger) error {
	dirs := make([]string, 0, len(cfg.Entrypoints))
	for _, e := range cfg.Entrypoints {
		abs, err := filepath.Abs(e)
		if err != nil {
			return err
		}
		dirs = append(dirs, filepath.Dir(abs))
	}
	root := aliases.CommonAncestor(dirs)
	if root == "" {
		return ErrNoCommonRoot
	}

	modified, err := aliases.Rewrite(root, cfg.Aliases)
	for _, f := range modified {
		log.Info("Replaced import aliases in: %s", f)
	}
	if err != nil {
		return fmt.Errorf("rewrite aliases: %w", err)
	}
	return nil
}

func bundleOnce(ctx context.Context, cfg *config.Config, log *logging.Logger, b bundle.Bundler) (*bundle.Result, error) {
	env, err := bundle.EnvDefines(cfg.Env, cfg.EnvFile, os.Environ())
	if err != nil {
		return nil, err
	}

	log.Debug(cfg.Verbose, "Bundling %s", strings.Join(cfg.Entrypoints, ", "))
	res, err := b.Build(ctx, bundle.Options{
		Entrypoints: cfg.Entrypoints,
		OutDir:      cfg.OutDir,
		PublicPath:  cfg.BundlerPublicPath(),
		Format:      string(cfg.Format),
		Sourcemap:   string(cfg.Sourcemap),
		Minify:      cfg.Minify,
		Splitting:   cfg.Splitting,
		Define:      bundle.Defines(cfg.TrimmedPublicPath(), env, cfg.Define),
		External:    cfg.External,
	})
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		log.Warn("%s", w)
	}
	return res, nil
}

// checkCollisions reports outputs renamed onto the same path. The mapping
// is left untouched; StrictNames turns the first collision into an error.
func checkCollisions(cfg *config.Config, log *logging.Logger, table *manifest.RewriteTable, stats *RunStats) error {
	collisions := table.Collisions()
	stats.Collisions = len(collisions)
	for _, c := range collisions {
		log.Warn("Naming collision: %s is produced by %s", c.Path, strings.Join(c.Sources, ", "))
	}
	if cfg.StrictNames && len(collisions) > 0 {
		return fmt.Errorf("%w: %s", naming.ErrCollision, collisions[0].Path)
	}
	return nil
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	rows := make([]display.OutputRow, 0, len(stats.Written))
	for _, w := range stats.Written {
		rows = append(rows, display.OutputRow{Path: w.Path, Size: w.Size})
	}
	for _, line := range display.FormatOutputTable(rows) {
		log.Info("%s", line)
	}

	if cfg.InjectScriptTag && !cfg.DryRun {
		log.Info("Script tags: %d injected, %d replaced, %d up to date, %d skipped, %d failed",
			stats.Injected, stats.Replaced, stats.Unchanged, stats.InjectSkipped, stats.InjectFailed)
	}

	verb := "Built"
	if cfg.DryRun {
		verb = "Planned"
	}
	log.Success("%s %d files (%s) in %s", verb, len(stats.Written),
		display.FormatBytes(stats.TotalBytes()), stats.Duration.Round(time.Millisecond))
}
