// Package check provides configuration diagnostics (the check subcommand)
// and the fatal pre-build validation (Preflight).
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/bundlekit/internal/config"
	"github.com/backmassage/bundlekit/internal/inject"
	"github.com/backmassage/bundlekit/internal/naming"
)

// Sentinel errors returned by Preflight.
var (
	ErrEntrypointMissing = errors.New("entrypoint not found")
	ErrOutDirNotDir      = errors.New("output path exists and is not a directory")
	ErrPublicDirMissing  = errors.New("public directory not found")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck reports on every part of cfg that a build depends on and
// returns false if any error was found. Warnings do not fail the check.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Configuration Check ===")

	ok := checkEntrypoints(cfg, log)
	ok = checkOutDir(cfg, log) && ok
	ok = checkPublicDir(cfg, log) && ok
	ok = checkInjectTargets(cfg, log) && ok
	checkNaming(cfg, log)
	checkAliases(cfg, log)

	if ok {
		log.Success("Configuration looks good")
	}
	return ok
}

func checkEntrypoints(cfg *config.Config, log Logger) bool {
	if len(cfg.Entrypoints) == 0 {
		log.Warn("No entrypoints configured")
		return true
	}
	ok := true
	for _, e := range cfg.Entrypoints {
		if _, err := os.Stat(e); err != nil {
			log.Error("Entrypoint not found: %s", e)
			ok = false
			continue
		}
		log.Success("Entrypoint: %s", e)
	}
	return ok
}

func checkOutDir(cfg *config.Config, log Logger) bool {
	info, err := os.Stat(cfg.OutDir)
	switch {
	case os.IsNotExist(err):
		log.Info("Output directory %s will be created", cfg.OutDir)
	case err != nil:
		log.Error("Output directory %s: %v", cfg.OutDir, err)
		return false
	case !info.IsDir():
		log.Error("Output path %s is not a directory", cfg.OutDir)
		return false
	case cfg.ClearOutDir:
		log.Info("Output directory %s will be cleared", cfg.OutDir)
	default:
		log.Info("Output directory: %s", cfg.OutDir)
	}
	return true
}

func checkPublicDir(cfg *config.Config, log Logger) bool {
	if !cfg.CopyPublicDir {
		return true
	}
	if _, err := os.Stat(cfg.PublicDir); err != nil {
		log.Error("Public directory not found: %s", cfg.PublicDir)
		return false
	}
	log.Success("Public directory: %s", cfg.PublicDir)
	return true
}

// checkInjectTargets verifies each injection target exists and has a
// </head>. Targets inside the output directory are looked up in the public
// directory when it will be copied there first.
func checkInjectTargets(cfg *config.Config, log Logger) bool {
	if !cfg.InjectScriptTag {
		return true
	}
	if len(cfg.FilesToInject) == 0 {
		log.Warn("Script injection enabled but no target files configured")
		return true
	}
	ok := true
	for i, files := range cfg.FilesToInject {
		for _, f := range files {
			src := sourceOf(cfg, f)
			data, err := os.ReadFile(src)
			if err != nil {
				log.Error("Inject target %d not readable: %s", i, f)
				ok = false
				continue
			}
			if !inject.HasHead(string(data)) {
				log.Warn("Inject target %d has no </head> and will be skipped: %s", i, f)
				continue
			}
			log.Debug(true, "Inject target %d: %s", i, f)
		}
	}
	return ok
}

// sourceOf maps a target under OutDir to the public directory file it is
// copied from, when public copying is on.
func sourceOf(cfg *config.Config, target string) string {
	if !cfg.CopyPublicDir {
		return target
	}
	rel, err := filepath.Rel(cfg.OutDir, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return target
	}
	candidate := filepath.Join(cfg.PublicDir, rel)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return target
}

func checkNaming(cfg *config.Config, log Logger) {
	t := naming.Resolve(cfg.Naming)
	for _, k := range []struct{ kind, tmpl string }{
		{"entry", t.Entry},
		{"chunk", t.Chunk},
		{"asset", t.Asset},
	} {
		if naming.HasHash(k.tmpl) {
			log.Info("Naming (%s): %s", k.kind, k.tmpl)
			continue
		}
		log.Warn("Naming (%s): %s has no [hash]; outputs with the same name will collide", k.kind, k.tmpl)
	}
}

func checkAliases(cfg *config.Config, log Logger) {
	if !cfg.HandleAliases {
		return
	}
	for alias, target := range cfg.Aliases {
		if _, err := os.Stat(target); err != nil {
			log.Warn("Alias %s points to a missing directory: %s", alias, target)
		}
	}
}

// Preflight is the fatal validation run before a build. It returns the
// first problem found as a sentinel-wrapped error.
func Preflight(cfg *config.Config) error {
	for _, e := range cfg.Entrypoints {
		if _, err := os.Stat(e); err != nil {
			return fmt.Errorf("%w: %s", ErrEntrypointMissing, e)
		}
	}
	if info, err := os.Stat(cfg.OutDir); err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutDirNotDir, cfg.OutDir)
	}
	if cfg.CopyPublicDir {
		if _, err := os.Stat(cfg.PublicDir); err != nil {
			return fmt.Errorf("%w: %s", ErrPublicDirMissing, cfg.PublicDir)
		}
	}
	return nil
}
