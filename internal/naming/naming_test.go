package naming

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	mixed := StringSpec("[name].[ext]")
	mixed.Chunk = "c/[name].[ext]"

	cases := []struct {
		name string
		spec Spec
		want Templates
	}{
		{
			name: "absent uses all defaults",
			spec: Spec{},
			want: Templates{Chunk: DefaultChunk, Entry: DefaultEntry, Asset: DefaultAsset},
		},
		{
			name: "string form sets entry only",
			spec: StringSpec("static/js/[name].[hash].[ext]"),
			want: Templates{Chunk: DefaultChunk, Entry: "static/js/[name].[hash].[ext]", Asset: DefaultAsset},
		},
		{
			name: "string form ignores object fields",
			spec: mixed,
			want: Templates{Chunk: DefaultChunk, Entry: "[name].[ext]", Asset: DefaultAsset},
		},
		{
			name: "empty string form is still the string form",
			spec: StringSpec(""),
			want: Templates{Chunk: DefaultChunk, Entry: "", Asset: DefaultAsset},
		},
		{
			name: "template field alone is not the string form",
			spec: Spec{Template: "[name].[ext]"},
			want: Templates{Chunk: DefaultChunk, Entry: DefaultEntry, Asset: DefaultAsset},
		},
		{
			name: "object form falls back per field",
			spec: Spec{Asset: "media/[name].[hash].[ext]"},
			want: Templates{Chunk: DefaultChunk, Entry: DefaultEntry, Asset: "media/[name].[hash].[ext]"},
		},
		{
			name: "object form fully set",
			spec: Spec{Chunk: "c-[hash].[ext]", Entry: "e/[name].[ext]", Asset: "a/[name].[ext]"},
			want: Templates{Chunk: "c-[hash].[ext]", Entry: "e/[name].[ext]", Asset: "a/[name].[ext]"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Resolve(tc.spec)); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyTemplate(t *testing.T) {
	cases := []struct {
		name string
		tmpl string
		vars Vars
		want string
	}{
		{"default entry at root", DefaultEntry, Vars{".", "app", "abc123", "js"}, "app-abc123.js"},
		{"default entry nested", DefaultEntry, Vars{"pages/home", "index", "ff00", "js"}, "pages/home/index-ff00.js"},
		{"dot separated hash", "static/js/[name].[hash].[ext]", Vars{".", "app", "abc123", "js"}, "static/js/app.abc123.js"},
		{"repeated placeholder", "[name]/[name].[ext]", Vars{".", "a", "", "css"}, "a/a.css"},
		{"leading slash stripped", "/[name].[ext]", Vars{".", "x", "", "js"}, "x.js"},
		{"leading dots and slashes stripped", "./../[name].[ext]", Vars{".", "x", "", "js"}, "x.js"},
		{"no placeholders", "fixed.js", Vars{".", "x", "h", "js"}, "fixed.js"},
		{"sourcemap extension", DefaultEntry, Vars{".", "app", "abc", "js.map"}, "app-abc.js.map"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyTemplate(tc.tmpl, tc.vars); got != tc.want {
				t.Errorf("ApplyTemplate(%q) = %q, want %q", tc.tmpl, got, tc.want)
			}
		})
	}
}

// Substitution order is fixed: a [dir] value containing "[name]" is itself
// expanded by the later [name] pass.
func TestApplyTemplate_SubstitutionOrder(t *testing.T) {
	got := ApplyTemplate("[dir]/[ext]", Vars{Dir: "[name]", Name: "n", Ext: "[hash]", Hash: "h"})
	if got != "n/[hash]" {
		t.Errorf("got %q, want %q", got, "n/[hash]")
	}
}

func TestParseOutputPath(t *testing.T) {
	cases := []struct {
		name string
		path string
		hash string
		want ParsedPath
	}{
		{
			name: "root file",
			path: "./index.js", hash: "abc",
			want: ParsedPath{Normalized: "index.js", Dir: ".", Name: "index", Ext: "js"},
		},
		{
			name: "backslashes normalized",
			path: `pages\home\index.js`, hash: "",
			want: ParsedPath{Normalized: "pages/home/index.js", Dir: "pages/home", Name: "index", Ext: "js"},
		},
		{
			name: "embedded hash stripped",
			path: "chunk-abc123.js", hash: "abc123",
			want: ParsedPath{Normalized: "chunk-abc123.js", Dir: ".", Name: "chunk", Ext: "js"},
		},
		{
			name: "empty hash keeps dashes",
			path: "my-app.js", hash: "",
			want: ParsedPath{Normalized: "my-app.js", Dir: ".", Name: "my-app", Ext: "js"},
		},
		{
			name: "different hash left alone",
			path: "logo-zzz.png", hash: "abc",
			want: ParsedPath{Normalized: "logo-zzz.png", Dir: ".", Name: "logo-zzz", Ext: "png"},
		},
		{
			name: "no extension",
			path: "LICENSE", hash: "",
			want: ParsedPath{Normalized: "LICENSE", Dir: ".", Name: "LICENSE", Ext: ""},
		},
		{
			name: "multi dot keeps inner dots",
			path: "vendor.min.js", hash: "",
			want: ParsedPath{Normalized: "vendor.min.js", Dir: ".", Name: "vendor.min", Ext: "js"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseOutputPath(tc.path, tc.hash)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseOutputPath(%q, %q) mismatch (-want +got):\n%s", tc.path, tc.hash, diff)
			}
		})
	}
}

func TestHasHash(t *testing.T) {
	if !HasHash(DefaultChunk) {
		t.Error("default chunk template should contain [hash]")
	}
	if HasHash("[dir]/[name].[ext]") {
		t.Error("template without [hash] reported as hashed")
	}
}

func TestCollisionDetector(t *testing.T) {
	cd := NewCollisionDetector()

	if !cd.Claim("a/index.js", "index.js") {
		t.Fatal("first claim should succeed")
	}
	if !cd.Claim("a/index.js", "index.js") {
		t.Error("re-claim by same owner should succeed")
	}
	if !cd.Claim("b/main.js", "main.js") {
		t.Error("unrelated claim should succeed")
	}
	if cd.Claim("b/index.js", "index.js") {
		t.Error("claim by second owner should fail")
	}
	if cd.Claim("c/index.js", "index.js") {
		t.Error("claim by third owner should fail")
	}

	want := []Collision{{Path: "index.js", Sources: []string{"a/index.js", "b/index.js", "c/index.js"}}}
	if diff := cmp.Diff(want, cd.Collisions()); diff != "" {
		t.Errorf("Collisions() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollisionDetector_None(t *testing.T) {
	cd := NewCollisionDetector()
	cd.Claim("x.js", "x-1.js")
	cd.Claim("y.js", "y-2.js")
	if got := cd.Collisions(); len(got) != 0 {
		t.Errorf("expected no collisions, got %v", got)
	}
}
