package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/backmassage/bundlekit/internal/bundle"
	"github.com/backmassage/bundlekit/internal/config"
	"github.com/backmassage/bundlekit/internal/logging"
	"github.com/backmassage/bundlekit/internal/naming"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeBundler returns a fixed output set and records the options it saw.
type fakeBundler struct {
	mu      sync.Mutex
	outputs []bundle.Output
	last    bundle.Options
	calls   atomic.Int32
}

func (f *fakeBundler) Build(_ context.Context, opts bundle.Options) (*bundle.Result, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = opts
	out := make([]bundle.Output, len(f.outputs))
	copy(out, f.outputs)
	return &bundle.Result{Outputs: out}, nil
}

func sampleOutputs() []bundle.Output {
	return []bundle.Output{
		{
			Path: "index.js", Kind: bundle.KindEntryPoint, Hash: "h1",
			MimeType:  bundle.MimeType("index.js"),
			SourceMap: &bundle.SourceMapRef{Path: "index.js.map", Hash: "m1"},
			Contents:  []byte("console.log('app')"),
		},
		{Path: "index.js.map", Kind: bundle.KindSourceMap, Hash: "m1", MimeType: bundle.MimeType("index.js.map"), Contents: []byte("{}")},
		{Path: "index.css", Kind: bundle.KindAsset, Hash: "c1", MimeType: bundle.MimeType("index.css"), Contents: []byte("body{}")},
		{Path: "chunk-z9.js", Kind: bundle.KindChunk, Hash: "z9", MimeType: bundle.MimeType("chunk-z9.js"), Contents: []byte("1")},
	}
}

func testLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

const publicIndex = `<!DOCTYPE html>
<html>
  <head>
    <link rel="icon" href="%PUBLIC_URL%/favicon.ico" />
    <script defer="defer" src="/index.js"></script>
  </head>
  <body></body>
</html>
`

func TestRun_FullBuild(t *testing.T) {
	root := t.TempDir()
	outDir := filepath.Join(root, "build")
	writeFile(t, filepath.Join(root, "public", "index.html"), publicIndex)
	writeFile(t, filepath.Join(outDir, "stale.txt"), "old")

	cfg := config.DefaultConfig()
	cfg.Entrypoints = []string{filepath.Join(root, "src", "index.ts")}
	cfg.OutDir = outDir
	cfg.ClearOutDir = true
	cfg.CopyPublicDir = true
	cfg.PublicDir = filepath.Join(root, "public")
	cfg.InjectScriptTag = true
	cfg.FilesToInject = [][]string{{filepath.Join(outDir, "index.html")}}
	log := testLogger(t, &cfg)
	fb := &fakeBundler{outputs: sampleOutputs()}

	stats, err := Run(context.Background(), &cfg, log, fb)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Outputs)
	assert.Equal(t, 1, stats.HTMLFiles)
	assert.Equal(t, 1, stats.Replaced)
	assert.Len(t, stats.Written, 4)
	assert.NoFileExists(t, filepath.Join(outDir, "stale.txt"))

	for _, f := range []string{"index-h1.js", "index-h1.js.map", "index-c1.css", "chunk-z9.js"} {
		assert.FileExists(t, filepath.Join(outDir, f))
	}
	assert.Equal(t, "console.log('app')", readFile(t, filepath.Join(outDir, "index-h1.js")))

	html := readFile(t, filepath.Join(outDir, "index.html"))
	assert.Contains(t, html, `href="/favicon.ico"`)
	assert.Contains(t, html, `<script defer="defer" src="index-h1.js"></script>`)
	assert.NotContains(t, html, `src="/index.js"`)

	var doc struct {
		Files       map[string]string `json:"files"`
		Entrypoints []string          `json:"entrypoints"`
	}
	require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(outDir, "asset-manifest.json"))), &doc))
	assert.Equal(t, map[string]string{
		"index.html":      "/index.html",
		"index.js":        "/index-h1.js",
		"index-h1.js.map": "/index-h1.js.map",
		"index.css":       "/index-c1.css",
		"chunk-z9.js":     "/chunk-z9.js",
	}, doc.Files)
	assert.Equal(t, []string{"index-h1.js", "index-c1.css"}, doc.Entrypoints)

	assert.Equal(t, "/", fb.last.PublicPath)
	assert.Equal(t, `"production"`, fb.last.Define["process.env.NODE_ENV"])

	// A second build converges on the same HTML.
	cfg.ClearOutDir = false
	cfg.CopyPublicDir = false
	stats, err = Run(context.Background(), &cfg, log, fb)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Unchanged)
	assert.Equal(t, html, readFile(t, filepath.Join(outDir, "index.html")))
}

func TestRun_DryRun(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Entrypoints = []string{filepath.Join(root, "index.ts")}
	cfg.OutDir = filepath.Join(root, "build")
	cfg.DryRun = true
	cfg.InjectScriptTag = true
	log := testLogger(t, &cfg)

	stats, err := Run(context.Background(), &cfg, log, &fakeBundler{outputs: sampleOutputs()})
	require.NoError(t, err)
	assert.Len(t, stats.Written, 4)
	assert.NoDirExists(t, cfg.OutDir)
}

func TestRun_Collisions(t *testing.T) {
	outputs := []bundle.Output{
		{Path: "a/util.js", Kind: bundle.KindChunk, Hash: "1", MimeType: bundle.MimeType("a.js"), Contents: []byte("a")},
		{Path: "b/util.js", Kind: bundle.KindChunk, Hash: "2", MimeType: bundle.MimeType("b.js"), Contents: []byte("b")},
	}

	for _, strict := range []bool{false, true} {
		root := t.TempDir()
		cfg := config.DefaultConfig()
		cfg.Entrypoints = []string{filepath.Join(root, "index.ts")}
		cfg.OutDir = filepath.Join(root, "build")
		cfg.Naming = naming.Spec{Chunk: "[name].[ext]"}
		cfg.StrictNames = strict
		log := testLogger(t, &cfg)

		stats, err := Run(context.Background(), &cfg, log, &fakeBundler{outputs: outputs})
		assert.Equal(t, 1, stats.Collisions)
		if strict {
			assert.ErrorIs(t, err, naming.ErrCollision)
			assert.NoFileExists(t, filepath.Join(cfg.OutDir, "asset-manifest.json"))
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestRun_Aliases(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	entry := filepath.Join(src, "index.ts")
	writeFile(t, entry, "import { x } from '@/lib/x'\n")

	cfg := config.DefaultConfig()
	cfg.Entrypoints = []string{entry}
	cfg.OutDir = filepath.Join(root, "build")
	cfg.HandleAliases = true
	cfg.Aliases = map[string]string{"@/": src}
	log := testLogger(t, &cfg)

	_, err := Run(context.Background(), &cfg, log, &fakeBundler{})
	require.NoError(t, err)
	assert.Equal(t, "import { x } from './lib/x'\n", readFile(t, entry))
}

func TestDiscoverHTML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b", "index.html"), "")
	writeFile(t, filepath.Join(dir, "a.html"), "")
	writeFile(t, filepath.Join(dir, "a", "deep", "x.html"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")

	files, err := DiscoverHTML(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.html", "a/deep/x.html", "b/index.html"}, files)

	files, err = DiscoverHTML(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestPrepareOutDir(t *testing.T) {
	cfg := config.DefaultConfig()
	log := testLogger(t, &cfg)
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, PrepareOutDir(dir, false, log))
	assert.DirExists(t, dir)

	writeFile(t, filepath.Join(dir, "keep.txt"), "x")
	require.NoError(t, PrepareOutDir(dir, false, log))
	assert.FileExists(t, filepath.Join(dir, "keep.txt"))

	require.NoError(t, PrepareOutDir(dir, true, log))
	assert.NoFileExists(t, filepath.Join(dir, "keep.txt"))
	assert.DirExists(t, dir)
}

func TestCopyPublicDir(t *testing.T) {
	root := t.TempDir()
	public := filepath.Join(root, "public")
	out := filepath.Join(root, "build")
	writeFile(t, filepath.Join(public, "index.html"), `<a href="%PUBLIC_URL%/x">%PUBLIC_URL%</a>`)
	writeFile(t, filepath.Join(public, "img", "logo.svg"), "<svg/>")

	cfg := config.DefaultConfig()
	log := testLogger(t, &cfg)
	require.NoError(t, CopyPublicDir(public, out, "/app///", log))

	assert.Equal(t, `<a href="/app/x">/app</a>`, readFile(t, filepath.Join(out, "index.html")))
	assert.Equal(t, "<svg/>", readFile(t, filepath.Join(out, "img", "logo.svg")))

	require.NoError(t, CopyPublicDir(filepath.Join(root, "nope"), out, "/", log))
}

func TestWatch_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "index.ts"), "1")

	cfg := config.DefaultConfig()
	cfg.Entrypoints = []string{filepath.Join(src, "index.ts")}
	cfg.OutDir = filepath.Join(root, "build")
	log := testLogger(t, &cfg)
	fb := &fakeBundler{outputs: sampleOutputs()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, &cfg, log, fb) }()

	require.Eventually(t, func() bool { return fb.calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	writeFile(t, filepath.Join(src, "other.ts"), "2")
	require.Eventually(t, func() bool { return fb.calls.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}
