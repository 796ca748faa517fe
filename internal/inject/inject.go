package inject

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/bundlekit/internal/manifest"
)

// Logger is the minimal logging interface needed by Inject.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Result records what happened to one target file for one script.
type Result struct {
	Script string // original script path
	File   string
	Action Action
	Err    error
}

// Inject applies each script to the HTML files listed at the same index of
// files. Scripts without a matching list are ignored. Failures are logged
// and recorded per file; they never stop the remaining files.
//
// Files are processed sequentially so several scripts targeting the same
// shell compose.
func Inject(scripts []manifest.Rewrite, files [][]string, outDir, publicPath string, log Logger) []Result {
	var results []Result
	for i, script := range scripts {
		if i >= len(files) {
			break
		}
		for _, file := range files[i] {
			res := injectFile(script, file, outDir, publicPath)
			logResult(log, res)
			results = append(results, res)
		}
	}
	return results
}

func injectFile(script manifest.Rewrite, file, outDir, publicPath string) Result {
	res := Result{Script: script.Original, File: file, Action: ActionFailed}

	src, err := relativeSrc(file, filepath.Join(outDir, filepath.FromSlash(script.Renamed)))
	if err != nil {
		res.Err = err
		return res
	}

	info, err := os.Stat(file)
	if err != nil {
		res.Err = err
		return res
	}
	data, err := os.ReadFile(file)
	if err != nil {
		res.Err = err
		return res
	}

	out, action, err := Rewrite(string(data), NewReference(script.Original, src, publicPath))
	res.Action, res.Err = action, err
	if err != nil || action == ActionUnchanged {
		return res
	}
	if err := os.WriteFile(file, []byte(out), info.Mode().Perm()); err != nil {
		res.Action, res.Err = ActionFailed, err
	}
	return res
}

// relativeSrc is the slash-separated path from the directory of file to
// script.
func relativeSrc(file, script string) (string, error) {
	from, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return "", err
	}
	to, err := filepath.Abs(script)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(from, to)
	if err != nil {
		return "", fmt.Errorf("relative path to %s: %w", script, err)
	}
	return filepath.ToSlash(rel), nil
}

func logResult(log Logger, r Result) {
	switch r.Action {
	case ActionUnchanged:
		log.Info("Script tag already up to date in: %s", r.File)
	case ActionInserted:
		log.Info("Injected script tag into: %s", r.File)
	case ActionReplaced:
		log.Info("Replaced script tag in: %s", r.File)
	case ActionSkipped:
		log.Warn("Could not find </head> tag in: %s. Skipping injection.", r.File)
	case ActionFailed:
		log.Error("Error processing file %s: %v", r.File, r.Err)
	}
}
