package bundle

import (
	"context"
	"strings"
)

// Kind classifies a bundler output.
type Kind string

const (
	KindEntryPoint Kind = "entry-point"
	KindChunk      Kind = "chunk"
	KindAsset      Kind = "asset"
	KindSourceMap  Kind = "sourcemap"
)

// SourceMapRef points from an output to the sourcemap generated for it.
type SourceMapRef struct {
	Path string
	Hash string
}

// Output is one artifact emitted by the bundler.
type Output struct {
	Path      string // relative to the output directory, forward slashes
	Kind      Kind
	Hash      string // content hash; may be empty
	MimeType  string
	SourceMap *SourceMapRef // nil when the output has no map
	Contents  []byte
}

// IsText reports whether the output should be treated as text.
func (o *Output) IsText() bool {
	return strings.HasPrefix(o.MimeType, "text")
}

// IsCSS reports whether the output is a stylesheet.
func (o *Output) IsCSS() bool {
	return strings.HasPrefix(o.MimeType, "text/css")
}

// Text returns the contents as a string.
func (o *Output) Text() string { return string(o.Contents) }

// Bytes returns the raw contents.
func (o *Output) Bytes() []byte { return o.Contents }

// Result is the outcome of one bundler run.
type Result struct {
	Outputs  []Output
	Warnings []string
}

// Find returns the output whose Path equals p.
func (r *Result) Find(p string) (*Output, bool) {
	for i := range r.Outputs {
		if r.Outputs[i].Path == p {
			return &r.Outputs[i], true
		}
	}
	return nil, false
}

// Options configures a bundler run.
type Options struct {
	Entrypoints []string
	OutDir      string
	PublicPath  string // with trailing slash
	Format      string // iife | esm | cjs
	Sourcemap   string // none | linked | inline | external
	Minify      bool
	Splitting   bool
	Define      map[string]string
	External    []string
	WorkingDir  string // absolute; "" means the process working directory
}

// Bundler turns entrypoints into in-memory outputs.
type Bundler interface {
	Build(ctx context.Context, opts Options) (*Result, error)
}
