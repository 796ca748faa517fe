package inject

import (
	"errors"
	"path"
)

// ErrNoHeadTag is reported when a target has no </head> to anchor on.
var ErrNoHeadTag = errors.New("could not find </head> tag")

// Action is the outcome of rewriting one HTML file.
type Action int

const (
	ActionUnchanged Action = iota // already references the renamed script
	ActionInserted
	ActionReplaced
	ActionSkipped // no </head>; file left as is
	ActionFailed  // read or write error
)

func (a Action) String() string {
	switch a {
	case ActionUnchanged:
		return "unchanged"
	case ActionInserted:
		return "inserted"
	case ActionReplaced:
		return "replaced"
	case ActionSkipped:
		return "skipped"
	case ActionFailed:
		return "failed"
	}
	return "unknown"
}

// Reference describes the script tag a target should end up with.
type Reference struct {
	// Src is the path written into the tag, relative to the target file.
	Src string
	// Legacy is the un-hashed src an existing tag may carry.
	Legacy string
}

// NewReference builds the Reference for the script originally emitted at
// original, written at src relative to the target. Only the last extension
// is dropped from the legacy base name, so "vendor.min.js" matches an
// existing "/vendor.min.js" tag, not "/vendor.js".
func NewReference(original, src, publicPath string) Reference {
	base := path.Base(original)
	base = base[:len(base)-len(path.Ext(base))]
	return Reference{Src: src, Legacy: legacySrc(publicPath, base)}
}

// Rewrite returns html with ref applied, and the action taken. When the
// action is ActionSkipped the error is ErrNoHeadTag and html is returned
// unmodified.
func Rewrite(html string, ref Reference) (string, Action, error) {
	if deferredTag(ref.Src).MatchString(html) {
		return html, ActionUnchanged, nil
	}
	if !reHeadClose.MatchString(html) {
		return html, ActionSkipped, ErrNoHeadTag
	}

	if loc := deferredTag(ref.Legacy).FindStringSubmatchIndex(html); loc != nil {
		return html[:loc[2]] + ref.Src + html[loc[3]:], ActionReplaced, nil
	}

	indent := ""
	if m := reHeadLine.FindStringSubmatch(html); m != nil {
		indent = reLeadingSpace.FindString(m[1])
	}
	trailing := ""
	if m := reHeadTrailing.FindStringSubmatch(html); m != nil {
		trailing = m[1]
	}

	tag := indent + `<script defer="defer" src="` + ref.Src + `"></script>` + trailing
	loc := reHeadClose.FindStringIndex(html)
	return html[:loc[0]] + tag + html[loc[0]:], ActionInserted, nil
}

// HasHead reports whether html has a </head> anchor for insertion.
func HasHead(html string) bool {
	return reHeadClose.MatchString(html)
}
