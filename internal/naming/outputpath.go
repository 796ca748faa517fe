package naming

import "strings"

// Vars holds the placeholder values for one template application.
// Ext is the extension without its leading dot.
type Vars struct {
	Dir  string
	Name string
	Hash string
	Ext  string
}

// ApplyTemplate substitutes [dir], [name], [hash] and [ext] into tmpl (in
// that order, every occurrence) and strips any leading run of '.' and '/'
// characters from the result.
//
//	ApplyTemplate("[dir]/[name]-[hash].[ext]", Vars{".", "app", "abc", "js"}) == "app-abc.js"
func ApplyTemplate(tmpl string, v Vars) string {
	out := strings.ReplaceAll(tmpl, "[dir]", v.Dir)
	out = strings.ReplaceAll(out, "[name]", v.Name)
	out = strings.ReplaceAll(out, "[hash]", v.Hash)
	out = strings.ReplaceAll(out, "[ext]", v.Ext)
	return strings.TrimLeft(out, "./")
}

// HasHash reports whether tmpl contains the [hash] placeholder. Templates
// without it can map distinct outputs with the same base name onto one path.
func HasHash(tmpl string) bool {
	return strings.Contains(tmpl, "[hash]")
}
