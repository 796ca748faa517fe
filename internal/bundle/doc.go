// Package bundle runs the bundler and describes what it produced.
//
// The rest of the build never talks to the bundler directly: it consumes
// the [Output] records returned by a [Bundler]. [Esbuild] is the production
// implementation; tests construct Outputs by hand.
//
// Output paths are relative to the configured output directory and use
// forward slashes. Kinds are derived from the bundler's metafile:
//
//	*.map                      → KindSourceMap
//	has an entry point         → KindEntryPoint
//	script without entry point → KindChunk
//	anything else (css, media) → KindAsset
package bundle
