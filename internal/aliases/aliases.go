// Package aliases rewrites aliased import specifiers ("@/components/x")
// into relative paths, in place, for every script source under a root.
package aliases

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const sourcePattern = "**/*.{js,ts,jsx,tsx}"

type alias struct {
	prefix string
	target string
	re     *regexp.Regexp
}

// compile orders aliases longest prefix first so "@/lib/" wins over "@/".
func compile(aliases map[string]string) ([]alias, error) {
	out := make([]alias, 0, len(aliases))
	for prefix, target := range aliases {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, fmt.Errorf("alias %s: %w", prefix, err)
		}
		out = append(out, alias{
			prefix: prefix,
			target: abs,
			re: regexp.MustCompile(`import\s+(?:(?:\S+|\{[^}]+\})?\s+from\s+)*['"](` +
				regexp.QuoteMeta(prefix) + `.*?)['"]`),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].prefix) != len(out[j].prefix) {
			return len(out[i].prefix) > len(out[j].prefix)
		}
		return out[i].prefix < out[j].prefix
	})
	return out, nil
}

// Rewrite replaces aliased imports in every source file under root and
// returns the absolute paths of the files it changed, sorted.
// node_modules directories are not visited.
func Rewrite(root string, aliases map[string]string) ([]string, error) {
	if len(aliases) == 0 {
		return nil, nil
	}
	compiled, err := compile(aliases)
	if err != nil {
		return nil, err
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(root), sourcePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(matches)

	var modified []string
	for _, rel := range matches {
		if isVendored(rel) {
			continue
		}
		file := filepath.Join(root, filepath.FromSlash(rel))
		changed, err := rewriteFile(file, compiled)
		if err != nil {
			return modified, err
		}
		if changed {
			modified = append(modified, file)
		}
	}
	return modified, nil
}

func isVendored(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if part == "node_modules" {
			return true
		}
	}
	return false
}

func rewriteFile(file string, compiled []alias) (bool, error) {
	info, err := os.Stat(file)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}

	content := string(data)
	changed := false
	for _, a := range compiled {
		var next bool
		content, next = a.apply(content, filepath.Dir(file))
		changed = changed || next
	}
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(file, []byte(content), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", file, err)
	}
	return true, nil
}

// apply rewrites every import of a in content, for a file in dir.
func (a alias) apply(content, dir string) (string, bool) {
	locs := a.re.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return content, false
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		spec := content[loc[2]:loc[3]]
		b.WriteString(content[last:loc[2]])
		b.WriteString(a.resolve(spec, dir))
		last = loc[3]
	}
	b.WriteString(content[last:])
	return b.String(), true
}

// resolve maps an aliased specifier to a "./"-or-"../" relative path.
func (a alias) resolve(spec, dir string) string {
	target := filepath.Join(a.target, strings.TrimPrefix(spec, a.prefix))
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return spec
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

// CommonAncestor returns the deepest directory containing every path in
// dirs, or "" when they share none (or dirs is empty). Paths are compared
// component-wise after cleaning; they should all be absolute or all be
// relative to the same base.
func CommonAncestor(dirs []string) string {
	if len(dirs) == 0 {
		return ""
	}
	common := splitPath(dirs[0])
	for _, d := range dirs[1:] {
		parts := splitPath(d)
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	if len(common) == 0 {
		return ""
	}
	joined := strings.Join(common, string(filepath.Separator))
	if joined == "" {
		return string(filepath.Separator)
	}
	return joined
}

func splitPath(p string) []string {
	return strings.Split(filepath.Clean(p), string(filepath.Separator))
}
