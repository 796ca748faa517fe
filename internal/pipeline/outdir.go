package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/bundlekit/internal/logging"
	"github.com/backmassage/bundlekit/internal/sandbox"
)

// PrepareOutDir makes sure outDir exists. With clean set an existing
// directory is emptied first; otherwise a non-empty directory only draws a
// warning.
func PrepareOutDir(outDir string, clean bool, log *logging.Logger) error {
	entries, err := os.ReadDir(outDir)
	switch {
	case os.IsNotExist(err):
		// created below
	case err != nil:
		return fmt.Errorf("read output directory: %w", err)
	case clean:
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("clear output directory: %w", err)
		}
	case len(entries) > 0:
		log.Warn("Output directory %s already exists and is not empty. Use --clean to clear it. Proceeding.", outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// CopyPublicDir copies publicDir into outDir and replaces %PUBLIC_URL% in
// every copied HTML file with publicPath minus its trailing slashes.
// A missing publicDir is reported and skipped.
func CopyPublicDir(publicDir, outDir, publicPath string, log *logging.Logger) error {
	if _, err := os.Stat(publicDir); err != nil {
		log.Warn("Public directory %s not found; nothing copied", publicDir)
		return nil
	}
	if err := sandbox.CopyTree(publicDir, outDir); err != nil {
		return fmt.Errorf("copy public directory: %w", err)
	}

	html, err := DiscoverHTML(outDir)
	if err != nil {
		return err
	}
	publicURL := strings.TrimRight(publicPath, "/")
	for _, rel := range html {
		path := filepath.Join(outDir, filepath.FromSlash(rel))
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !strings.Contains(string(data), "%PUBLIC_URL%") {
			continue
		}
		out := strings.ReplaceAll(string(data), "%PUBLIC_URL%", publicURL)
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return err
		}
		log.Info("Replaced %%PUBLIC_URL%% in: %s", path)
	}
	return nil
}
