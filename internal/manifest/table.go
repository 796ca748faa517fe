package manifest

import (
	"strings"

	"github.com/backmassage/bundlekit/internal/naming"
)

// Rewrite is one RewriteTable entry.
type Rewrite struct {
	Original string // path as reported by the bundler
	Renamed  string // final path relative to the output directory
}

// RewriteTable maps original output paths (sourcemaps included) to their
// renamed paths, keeping insertion order so the write and injection order
// follows the bundler's output order.
type RewriteTable struct {
	renamed map[string]string
	order   []string
}

// NewRewriteTable returns an empty table.
func NewRewriteTable() *RewriteTable {
	return &RewriteTable{renamed: make(map[string]string)}
}

// Set records original → renamed. Re-setting a key keeps its position.
func (t *RewriteTable) Set(original, renamed string) {
	if _, exists := t.renamed[original]; !exists {
		t.order = append(t.order, original)
	}
	t.renamed[original] = renamed
}

// Get returns the renamed path for original.
func (t *RewriteTable) Get(original string) (string, bool) {
	r, ok := t.renamed[original]
	return r, ok
}

// Len returns the number of entries.
func (t *RewriteTable) Len() int { return len(t.order) }

// Entries returns every entry in insertion order.
func (t *RewriteTable) Entries() []Rewrite {
	out := make([]Rewrite, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, Rewrite{Original: k, Renamed: t.renamed[k]})
	}
	return out
}

// Scripts returns the entries whose original path ends in ".js", in
// insertion order. These are the injection targets.
func (t *RewriteTable) Scripts() []Rewrite {
	var out []Rewrite
	for _, k := range t.order {
		if strings.HasSuffix(k, ".js") {
			out = append(out, Rewrite{Original: k, Renamed: t.renamed[k]})
		}
	}
	return out
}

// Collisions reports renamed paths claimed by more than one original.
// The table itself is left as is.
func (t *RewriteTable) Collisions() []naming.Collision {
	cd := naming.NewCollisionDetector()
	for _, k := range t.order {
		cd.Claim(k, t.renamed[k])
	}
	return cd.Collisions()
}
