// Package naming resolves output naming templates and turns bundler output
// paths into their final, template-driven relative paths.
//
// Templates recognize exactly four placeholders, substituted in this order:
// [dir], [name], [hash], [ext]. There is no escaping mechanism. After
// substitution any leading "./" or "/" characters are stripped so results
// are always relative to the output directory.
//
// Files:
//   - templates.go: Spec, Templates, Resolve (user config → complete set)
//   - outputpath.go: Vars, ApplyTemplate
//   - parser.go: ParseOutputPath (normalize, split dir/name/ext, strip -hash)
//   - collision.go: CollisionDetector for templates that omit [hash]
package naming
