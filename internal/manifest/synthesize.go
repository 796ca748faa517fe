package manifest

import (
	"path"

	"github.com/backmassage/bundlekit/internal/bundle"
	"github.com/backmassage/bundlekit/internal/naming"
)

// Synthesize computes the final path of every output and returns the
// manifest together with the rewrite table.
//
// htmlFiles seed the manifest as identity entries ("/<file>"). Sourcemap
// outputs are not renamed on their own; each is renamed through the output
// that references it, always with the entry template. Outputs without a
// hash keep their normalized path.
func Synthesize(outputs []bundle.Output, t naming.Templates, htmlFiles []string) (*Document, *RewriteTable) {
	doc := newDocument()
	table := NewRewriteTable()

	for _, f := range htmlFiles {
		doc.Files.Set(f, "/"+f)
	}

	for i := range outputs {
		out := &outputs[i]
		if out.Kind == bundle.KindSourceMap {
			continue
		}

		p := naming.ParseOutputPath(out.Path, out.Hash)
		renamed := p.Normalized
		if out.Hash != "" {
			renamed = naming.ApplyTemplate(templateFor(out.Kind, t), naming.Vars{
				Dir:  p.Dir,
				Name: p.Name,
				Hash: out.Hash,
				Ext:  p.Ext,
			})
		}

		if out.Kind == bundle.KindEntryPoint || (out.Kind == bundle.KindAsset && out.IsCSS()) {
			doc.Entrypoints = append(doc.Entrypoints, renamed)
		}
		doc.Files.Set(p.Normalized, "/"+renamed)
		table.Set(out.Path, renamed)

		if sm := out.SourceMap; sm != nil {
			hash := out.Hash
			if hash == "" {
				hash = sm.Hash
			}
			mapRenamed := naming.ApplyTemplate(t.Entry, naming.Vars{
				Dir:  p.Dir,
				Name: p.Name,
				Hash: hash,
				Ext:  p.Ext + ".map",
			})
			doc.Files.Set(path.Base(renamed)+".map", "/"+mapRenamed)
			table.Set(sm.Path, mapRenamed)
		}
	}
	return doc, table
}

func templateFor(k bundle.Kind, t naming.Templates) string {
	switch k {
	case bundle.KindAsset:
		return t.Asset
	case bundle.KindEntryPoint:
		return t.Entry
	default:
		return t.Chunk
	}
}
