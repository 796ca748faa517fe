package emit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/bundlekit/internal/bundle"
	"github.com/backmassage/bundlekit/internal/manifest"
)

// Options tunes Write.
type Options struct {
	// Limit caps concurrent writes; 0 means GOMAXPROCS.
	Limit int
	// DryRun resolves every entry without touching the disk.
	DryRun bool
}

// Written is one emitted file.
type Written struct {
	Path string // renamed path relative to the output directory
	Size int64
}

// Write places the output behind each entry at {outDir}/{entry.Renamed}.
// Results are returned in entry order. The first failure cancels the
// remaining writes and is returned.
func Write(ctx context.Context, outDir string, res *bundle.Result, entries []manifest.Rewrite, opts Options) ([]Written, error) {
	outputs := make([]*bundle.Output, len(entries))
	for i, e := range entries {
		o, ok := res.Find(e.Original)
		if !ok {
			return nil, fmt.Errorf("no bundler output for %s", e.Original)
		}
		outputs[i] = o
	}

	written := make([]Written, len(entries))
	for i, e := range entries {
		written[i] = Written{Path: e.Renamed, Size: int64(len(outputs[i].Contents))}
	}
	if opts.DryRun {
		return written, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, e := range entries {
		e := e
		target := filepath.Join(outDir, filepath.FromSlash(e.Renamed))
		out := outputs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := withRetry(gctx, func() error { return writeOutput(target, out) }); err != nil {
				return fmt.Errorf("write %s: %w", e.Renamed, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return written, nil
}

func writeOutput(target string, out *bundle.Output) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, out.Bytes(), 0o644)
}
