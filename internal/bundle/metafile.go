package bundle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// metafile is the subset of the esbuild metafile this package reads.
type metafile struct {
	Outputs map[string]metafileOutput `json:"outputs"`
}

type metafileOutput struct {
	Bytes      int    `json:"bytes"`
	EntryPoint string `json:"entryPoint,omitempty"`
	CSSBundle  string `json:"cssBundle,omitempty"`
}

func parseMetafile(raw string) (*metafile, error) {
	var m metafile
	if raw == "" {
		return &m, nil
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("parse metafile: %w", err)
	}
	return &m, nil
}

// cssBundles returns the metafile keys of stylesheets extracted from script
// entry points. The bundler tags them with the script's entry point, but
// they are emitted as assets, the way other bundlers report them.
func (m *metafile) cssBundles() map[string]bool {
	set := make(map[string]bool)
	for _, out := range m.Outputs {
		if out.CSSBundle != "" {
			set[out.CSSBundle] = true
		}
	}
	return set
}

// classify derives the Kind of an output from its path and metafile entry.
func classify(relPath string, meta metafileOutput, extractedCSS bool) Kind {
	switch {
	case strings.HasSuffix(relPath, ".map"):
		return KindSourceMap
	case extractedCSS:
		return KindAsset
	case meta.EntryPoint != "":
		return KindEntryPoint
	case isScript(relPath):
		return KindChunk
	default:
		return KindAsset
	}
}
