// Package manifest turns a bundler's output list into the public asset
// manifest and the rewrite table that places every output at its final,
// template-derived path.
//
// Synthesize is a pure fold over the outputs: it reads nothing from disk
// and never fails. WriteFile serializes the document to
// {outdir}/asset-manifest.json.
package manifest
