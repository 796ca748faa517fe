package bundle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// assetLoaders makes common static files importable from scripts and
// stylesheets; they are emitted as separate asset outputs.
var assetLoaders = map[string]api.Loader{
	".png":   api.LoaderFile,
	".jpg":   api.LoaderFile,
	".jpeg":  api.LoaderFile,
	".gif":   api.LoaderFile,
	".svg":   api.LoaderFile,
	".webp":  api.LoaderFile,
	".avif":  api.LoaderFile,
	".ico":   api.LoaderFile,
	".woff":  api.LoaderFile,
	".woff2": api.LoaderFile,
	".ttf":   api.LoaderFile,
	".otf":   api.LoaderFile,
	".eot":   api.LoaderFile,
}

// Chunk and asset names carry esbuild's name hash: eight base32 characters
// after the last dash of the file stem.
const (
	chunkNames = "[name]-[hash]"
	assetNames = "[name]-[hash]"
)

var reNameHash = regexp.MustCompile(`-([A-Z2-7]{8})$`)

// Esbuild bundles in-process with the esbuild Go API. Nothing is written
// to disk; outputs are returned in memory.
type Esbuild struct{}

// NewEsbuild returns the esbuild-backed Bundler.
func NewEsbuild() *Esbuild { return &Esbuild{} }

// Build runs esbuild for opts. Bundler errors are returned as one error
// listing every message with its location; warnings are carried on the
// Result.
func (e *Esbuild) Build(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wd := opts.WorkingDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
	}
	outDir := opts.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(wd, outDir)
	}

	res := api.Build(api.BuildOptions{
		EntryPoints:       opts.Entrypoints,
		Bundle:            true,
		Write:             false,
		Metafile:          true,
		Outdir:            outDir,
		ChunkNames:        chunkNames,
		AssetNames:        assetNames,
		AbsWorkingDir:     wd,
		Platform:          api.PlatformBrowser,
		Format:            esbuildFormat(opts.Format),
		Sourcemap:         esbuildSourcemap(opts.Sourcemap),
		MinifyWhitespace:  opts.Minify,
		MinifyIdentifiers: opts.Minify,
		MinifySyntax:      opts.Minify,
		Splitting:         opts.Splitting,
		Define:            opts.Define,
		External:          opts.External,
		PublicPath:        opts.PublicPath,
		Loader:            assetLoaders,
		LogLevel:          api.LogLevelSilent,
	})
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("bundle failed: %s", formatMessages(res.Errors))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := convertOutputs(res.OutputFiles, res.Metafile, wd, outDir)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, formatMessage(w))
	}
	return result, nil
}

// convertOutputs maps esbuild output files onto Outputs, preserving the
// bundler's order, and links each output to its sibling ".map" output.
func convertOutputs(files []api.OutputFile, rawMeta, wd, outDir string) (*Result, error) {
	meta, err := parseMetafile(rawMeta)
	if err != nil {
		return nil, err
	}
	extracted := meta.cssBundles()

	result := &Result{Outputs: make([]Output, 0, len(files))}
	byPath := make(map[string]int, len(files))

	for _, f := range files {
		rel, err := filepath.Rel(outDir, f.Path)
		if err != nil {
			return nil, fmt.Errorf("output %s outside %s: %w", f.Path, outDir, err)
		}
		rel = filepath.ToSlash(rel)

		key := f.Path
		if k, err := filepath.Rel(wd, f.Path); err == nil {
			key = filepath.ToSlash(k)
		}

		hash := nameHash(rel)
		if hash == "" {
			hash = f.Hash
		}
		if hash == "" {
			hash = contentHash(f.Contents)
		}

		byPath[rel] = len(result.Outputs)
		result.Outputs = append(result.Outputs, Output{
			Path:     rel,
			Kind:     classify(rel, meta.Outputs[key], extracted[key]),
			Hash:     hash,
			MimeType: MimeType(rel),
			Contents: f.Contents,
		})
	}

	for i := range result.Outputs {
		o := &result.Outputs[i]
		if o.Kind == KindSourceMap {
			continue
		}
		if j, ok := byPath[o.Path+".map"]; ok {
			o.SourceMap = &SourceMapRef{Path: result.Outputs[j].Path, Hash: result.Outputs[j].Hash}
		}
	}
	return result, nil
}

// nameHash returns the hash esbuild embedded in the file name of rel, or ""
// when the name carries none. Entry points are named without one.
func nameHash(rel string) string {
	base := path.Base(strings.TrimSuffix(rel, ".map"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	if m := reNameHash.FindStringSubmatch(stem); m != nil {
		return m[1]
	}
	return ""
}

// contentHash is the fallback hash: the first 8 hex digits of SHA-256.
func contentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:8]
}

func esbuildFormat(f string) api.Format {
	switch f {
	case "esm":
		return api.FormatESModule
	case "cjs":
		return api.FormatCommonJS
	default:
		return api.FormatIIFE
	}
}

func esbuildSourcemap(s string) api.SourceMap {
	switch s {
	case "linked":
		return api.SourceMapLinked
	case "inline":
		return api.SourceMapInline
	case "external":
		return api.SourceMapExternal
	default:
		return api.SourceMapNone
	}
}

func formatMessages(msgs []api.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, formatMessage(m))
	}
	return strings.Join(parts, "; ")
}

func formatMessage(m api.Message) string {
	if m.Location == nil {
		return m.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text)
}
