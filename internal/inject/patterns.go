package inject

import (
	"regexp"
	"strings"
)

// Pre-compiled patterns for locating the head anchor. The script-tag
// patterns depend on the script and public path and are built per target.
var (
	// reHeadClose finds the first closing head tag.
	reHeadClose = regexp.MustCompile(`(?i)</head>`)

	// reHeadLine captures the text on the line before the first </head>;
	// its leading whitespace is the indent for an inserted tag.
	reHeadLine = regexp.MustCompile(`(?i)(.*)</head>`)

	// reHeadTrailing captures the whitespace run directly before </head>,
	// which is repeated after the inserted tag.
	reHeadTrailing = regexp.MustCompile(`(?is)<head>.*?(\s*?)</head>`)

	reLeadingSpace = regexp.MustCompile(`^\s*`)
)

const (
	tagOpen  = `<script\s+defer\s*=\s*["']defer["']\s+src\s*=\s*["']`
	tagClose = `["']\s*>\s*</script>`
)

// deferredTag matches a deferred script tag whose src is exactly src.
// Submatch 1 spans the src value.
func deferredTag(src string) *regexp.Regexp {
	return regexp.MustCompile(tagOpen + `(` + regexp.QuoteMeta(src) + `)` + tagClose)
}

// legacySrc is the un-hashed reference a hand-authored shell is expected
// to carry: {publicPath without trailing slashes}/{baseName}.js.
func legacySrc(publicPath, baseName string) string {
	return strings.TrimRight(publicPath, "/") + "/" + baseName + ".js"
}
