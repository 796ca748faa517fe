package config

// This file binds CLI flags onto a pflag.FlagSet (owned by a cobra command)
// and applies them to a Config. Only flags the user actually set are
// copied, so values loaded from a config file survive unless overridden.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/backmassage/bundlekit/internal/naming"
)

// Flags holds the raw flag values registered by [BindFlags].
type Flags struct {
	fs *pflag.FlagSet

	outDir       string
	publicPath   string
	namingString string
	namingEntry  string
	namingChunk  string
	namingAsset  string
	format       string
	sourcemap    string
	minify       bool
	splitting    bool
	define       map[string]string
	external     []string
	env          string
	envFile      string
	clearOutDir  bool
	publicDir    string
	inject       []string
	aliases      map[string]string
	strictNames  bool
	watch        bool
	dryRun       bool
	verbose      bool
	forceColor   bool
	noColor      bool
	logFile      string
	configFile   string
}

// BindFlags registers every build flag on fs and returns a handle used to
// apply them after parsing.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	defineOutputFlags(fs, f)
	defineBundlerFlags(fs, f)
	definePostProcessFlags(fs, f)
	defineDisplayFlags(fs, f)
	return f
}

// ConfigFile returns the --config value ("" when unset).
func (f *Flags) ConfigFile() string { return f.configFile }

// defineOutputFlags registers --outdir, --public-path and the naming flags.
func defineOutputFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVarP(&f.outDir, "outdir", "o", "build", "Output directory")
	fs.StringVar(&f.publicPath, "public-path", "/", "Public URL prefix for emitted assets")
	fs.StringVar(&f.namingString, "naming", "", "Entry naming template (string form; chunk/asset keep defaults)")
	fs.StringVar(&f.namingEntry, "naming-entry", "", "Entry naming template (default "+naming.DefaultEntry+")")
	fs.StringVar(&f.namingChunk, "naming-chunk", "", "Chunk naming template (default "+naming.DefaultChunk+")")
	fs.StringVar(&f.namingAsset, "naming-asset", "", "Asset naming template (default "+naming.DefaultAsset+")")
	fs.BoolVar(&f.clearOutDir, "clean", false, "Remove the output directory before building")
	fs.StringVar(&f.publicDir, "public-dir", "", "Copy this directory into the output directory before building")
}

// defineBundlerFlags registers flags forwarded to the bundler.
func defineBundlerFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.format, "format", string(FormatIIFE), "Output format: iife | esm | cjs")
	fs.StringVar(&f.sourcemap, "sourcemap", string(SourcemapNone), "Sourcemaps: none | linked | inline | external")
	fs.BoolVar(&f.minify, "minify", false, "Minify whitespace, identifiers and syntax")
	fs.BoolVar(&f.splitting, "splitting", false, "Enable code splitting (esm only)")
	fs.StringToStringVar(&f.define, "define", nil, "Global constant replacement (key=value, repeatable)")
	fs.StringSliceVar(&f.external, "external", nil, "Modules to leave unbundled")
	fs.StringVar(&f.env, "env", "", "Inline process.env: inline | disable | PREFIX*")
	fs.StringVar(&f.envFile, "env-file", ".env", "Dotenv file read when inlining environment values")
}

// definePostProcessFlags registers injection, alias and collision flags.
func definePostProcessFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringArrayVar(&f.inject, "inject", nil,
		"Comma-separated HTML files for the next script output (repeat once per script, in order)")
	fs.StringToStringVar(&f.aliases, "alias", nil, "Import alias prefix to directory (e.g. @/=src)")
	fs.BoolVar(&f.strictNames, "strict-names", false, "Fail when two outputs are renamed to the same path")
	fs.BoolVarP(&f.watch, "watch", "w", false, "Rebuild when sources change")
	fs.BoolVarP(&f.dryRun, "dry-run", "d", false, "Compute the manifest but write nothing")
}

// defineDisplayFlags registers --color, --no-color, --verbose, --log, --config.
func defineDisplayFlags(fs *pflag.FlagSet, f *Flags) {
	fs.BoolVar(&f.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	fs.StringVarP(&f.logFile, "log", "l", "", "Append logs to file")
	fs.StringVarP(&f.configFile, "config", "c", "", "YAML config file")
}

// Apply copies every flag the user set into cfg. Positional arguments are
// appended to cfg.Entrypoints.
func (f *Flags) Apply(cfg *Config, args []string) error {
	changed := f.fs.Changed

	if changed("outdir") {
		cfg.OutDir = NormalizeDirArg(f.outDir)
	}
	if changed("public-path") {
		cfg.PublicPath = f.publicPath
	}
	if err := f.applyNaming(cfg); err != nil {
		return err
	}
	if changed("clean") {
		cfg.ClearOutDir = f.clearOutDir
	}
	if changed("public-dir") {
		cfg.PublicDir = f.publicDir
		cfg.CopyPublicDir = f.publicDir != ""
	}

	if changed("format") {
		cfg.Format = Format(strings.ToLower(f.format))
	}
	if changed("sourcemap") {
		cfg.Sourcemap = SourcemapMode(strings.ToLower(f.sourcemap))
	}
	if changed("minify") {
		cfg.Minify = f.minify
	}
	if changed("splitting") {
		cfg.Splitting = f.splitting
	}
	if changed("define") {
		if cfg.Define == nil {
			cfg.Define = map[string]string{}
		}
		for k, v := range f.define {
			cfg.Define[k] = v
		}
	}
	if changed("external") {
		cfg.External = append(cfg.External, f.external...)
	}
	if changed("env") {
		cfg.Env = f.env
	}
	if changed("env-file") {
		cfg.EnvFile = f.envFile
	}

	if changed("inject") {
		cfg.InjectScriptTag = true
		cfg.FilesToInject = parseInjectLists(f.inject)
	}
	if changed("alias") {
		if cfg.Aliases == nil {
			cfg.Aliases = map[string]string{}
		}
		for k, v := range f.aliases {
			cfg.Aliases[k] = v
		}
		cfg.HandleAliases = len(cfg.Aliases) > 0
	}
	if changed("strict-names") {
		cfg.StrictNames = f.strictNames
	}
	if changed("watch") {
		cfg.Watch = f.watch
	}
	if changed("dry-run") {
		cfg.DryRun = f.dryRun
	}

	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("log") {
		cfg.LogFile = f.logFile
	}
	if f.noColor {
		cfg.ColorMode = ColorNever
	} else if f.forceColor {
		cfg.ColorMode = ColorAlways
	}

	cfg.Entrypoints = append(cfg.Entrypoints, args...)
	return nil
}

// applyNaming maps the naming flags onto cfg.Naming. The string form and
// the per-kind form are mutually exclusive.
func (f *Flags) applyNaming(cfg *Config) error {
	changed := f.fs.Changed
	perKind := changed("naming-entry") || changed("naming-chunk") || changed("naming-asset")

	if changed("naming") {
		if perKind {
			return fmt.Errorf("--naming cannot be combined with --naming-entry/--naming-chunk/--naming-asset")
		}
		cfg.Naming = naming.StringSpec(f.namingString)
		return nil
	}
	if !perKind {
		return nil
	}
	// Flags extend an object-form file config but replace a string-form one.
	if cfg.Naming.IsString() {
		cfg.Naming = naming.Spec{}
	}
	if changed("naming-entry") {
		cfg.Naming.Entry = f.namingEntry
	}
	if changed("naming-chunk") {
		cfg.Naming.Chunk = f.namingChunk
	}
	if changed("naming-asset") {
		cfg.Naming.Asset = f.namingAsset
	}
	return nil
}

// parseInjectLists turns each --inject occurrence into one file list.
// An empty occurrence yields an empty list, keeping positions aligned.
func parseInjectLists(raw []string) [][]string {
	lists := make([][]string, 0, len(raw))
	for _, r := range raw {
		var files []string
		for _, p := range strings.Split(r, ",") {
			if p = strings.TrimSpace(p); p != "" {
				files = append(files, p)
			}
		}
		lists = append(lists, files)
	}
	return lists
}
