package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

const htmlPattern = "**/*.html"

// DiscoverHTML returns every HTML file under outDir as an outdir-relative,
// slash-separated path, sorted. A missing outDir yields no files.
func DiscoverHTML(outDir string) ([]string, error) {
	files, err := doublestar.Glob(os.DirFS(outDir), htmlPattern, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
