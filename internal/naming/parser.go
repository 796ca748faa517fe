package naming

import (
	"path"
	"strings"
)

// ParsedPath holds the components of a bundler output path.
type ParsedPath struct {
	// Normalized is the POSIX-style path relative to the build root.
	Normalized string
	// Dir is the directory component ("." for files at the root).
	Dir string
	// Name is the base name without extension and without a "-<hash>"
	// segment the bundler may already have embedded.
	Name string
	// Ext is the extension without its leading dot ("" when absent).
	Ext string
}

// ParseOutputPath normalizes p and splits it into template components.
// hash may be empty, in which case no suffix is stripped from the name.
func ParseOutputPath(p, hash string) ParsedPath {
	normalized := NormalizePath(p)
	ext := strings.TrimPrefix(path.Ext(normalized), ".")
	name := path.Base(normalized)
	if ext != "" {
		name = strings.TrimSuffix(name, "."+ext)
	}
	if hash != "" {
		name = strings.ReplaceAll(name, "-"+hash, "")
	}
	return ParsedPath{
		Normalized: normalized,
		Dir:        path.Dir(normalized),
		Name:       name,
		Ext:        ext,
	}
}

// NormalizePath converts backslashes to forward slashes and cleans p into a
// relative path ("./a/b.js" → "a/b.js").
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return strings.TrimPrefix(p, "./")
}
