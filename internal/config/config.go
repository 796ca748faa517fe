// Package config holds runtime configuration: defaults, YAML config file
// loading, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/backmassage/bundlekit/internal/naming"
)

// --- Enum types for validated string fields ---

// Format is the bundle output module format.
type Format string

const (
	FormatIIFE Format = "iife" // Immediately-invoked function (default).
	FormatESM  Format = "esm"  // ES modules; required for splitting.
	FormatCJS  Format = "cjs"  // CommonJS.
)

// SourcemapMode controls sourcemap generation.
type SourcemapMode string

const (
	SourcemapNone     SourcemapMode = "none"
	SourcemapLinked   SourcemapMode = "linked"   // Separate .map plus sourceMappingURL comment.
	SourcemapInline   SourcemapMode = "inline"   // Embedded data URL; no .map outputs.
	SourcemapExternal SourcemapMode = "external" // Separate .map without a comment.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Env modes for inlining process.env values. Any other accepted value is a
// prefix pattern ending in "*" (e.g. "PUBLIC_*").
const (
	EnvInline  = "inline"
	EnvDisable = "disable"
)

// Sentinel validation errors.
var (
	ErrNoEntrypoints = errors.New("at least one entrypoint is required")
	ErrNoOutDir      = errors.New("an output directory is required")
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then an optional YAML file ([LoadFile]), then CLI flags ([Flags.Apply]).
type Config struct {
	// Build inputs and outputs.
	Entrypoints []string    `yaml:"entrypoints"`
	OutDir      string      `yaml:"outdir"`
	PublicPath  string      `yaml:"publicPath"` // Default: "/". Prefix for public URLs and legacy tag matching.
	Naming      naming.Spec `yaml:"-"`          // Decoded separately; zero value means default templates.

	// Bundler settings.
	Format    Format            `yaml:"format"`    // Default: "iife".
	Sourcemap SourcemapMode     `yaml:"sourcemap"` // Default: "none".
	Minify    bool              `yaml:"minify"`
	Splitting bool              `yaml:"splitting"`
	Define    map[string]string `yaml:"define"`
	External  []string          `yaml:"external"`
	Env       string            `yaml:"env"`     // "", "inline", "disable" or "PREFIX*".
	EnvFile   string            `yaml:"envFile"` // Default: ".env".

	// Output directory handling.
	ClearOutDir   bool   `yaml:"clearOutDir"`
	CopyPublicDir bool   `yaml:"copyPublicDir"`
	PublicDir     string `yaml:"publicDir"`

	// Script injection: FilesToInject[i] lists the HTML files that should
	// reference the i-th script output.
	InjectScriptTag bool       `yaml:"injectScriptTag"`
	FilesToInject   [][]string `yaml:"filesToInject"`

	// Import alias rewriting (alias prefix → target directory).
	HandleAliases bool              `yaml:"handleAliases"`
	Aliases       map[string]string `yaml:"aliases"`

	// StrictNames fails the build when two outputs rename to the same path.
	StrictNames bool `yaml:"strictNames"`

	// Behavior and display.
	Watch      bool      `yaml:"watch"`
	DryRun     bool      `yaml:"-"`
	Verbose    bool      `yaml:"verbose"`
	ColorMode  ColorMode `yaml:"color"` // Default: "auto".
	LogFile    string    `yaml:"log"`
	ConfigFile string    `yaml:"-"`
	CheckOnly  bool      `yaml:"-"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		OutDir:     "build",
		PublicPath: "/",
		Format:     FormatIIFE,
		Sourcemap:  SourcemapNone,
		EnvFile:    ".env",
		ColorMode:  ColorAuto,
		Define:     map[string]string{},
		Aliases:    map[string]string{},
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// TrimmedPublicPath returns PublicPath without trailing slashes ("/" → "").
func (c *Config) TrimmedPublicPath() string {
	return strings.TrimRight(c.PublicPath, "/")
}

// BundlerPublicPath returns PublicPath with exactly one trailing slash
// appended when missing, as the bundler expects.
func (c *Config) BundlerPublicPath() string {
	if strings.HasSuffix(c.PublicPath, "/") {
		return c.PublicPath
	}
	return c.PublicPath + "/"
}

// Validate checks enum fields and cross-field requirements.
// Entrypoints are not required in CheckOnly mode.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatIIFE, FormatESM, FormatCJS:
		// valid
	default:
		return errors.New("invalid format (use 'iife', 'esm' or 'cjs')")
	}

	switch c.Sourcemap {
	case SourcemapNone, SourcemapLinked, SourcemapInline, SourcemapExternal:
		// valid
	default:
		return errors.New("invalid sourcemap mode (use 'none', 'linked', 'inline' or 'external')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if err := validateEnv(c.Env); err != nil {
		return err
	}
	if c.Splitting && c.Format != FormatESM {
		return errors.New("splitting requires format 'esm'")
	}
	if c.CopyPublicDir && c.PublicDir == "" {
		return errors.New("copy-public requires a public directory")
	}
	if c.HandleAliases && len(c.Aliases) == 0 {
		return errors.New("alias handling enabled but no aliases configured")
	}
	if c.OutDir == "" {
		return ErrNoOutDir
	}
	c.OutDir = NormalizeDirArg(c.OutDir)

	if c.CheckOnly {
		return nil
	}
	if len(c.Entrypoints) == 0 {
		return ErrNoEntrypoints
	}
	return nil
}

func validateEnv(env string) error {
	switch {
	case env == "", env == EnvInline, env == EnvDisable:
		return nil
	case strings.HasSuffix(env, "*"):
		return nil
	default:
		return fmt.Errorf("invalid env mode %q (use 'inline', 'disable' or a 'PREFIX*' pattern)", env)
	}
}
