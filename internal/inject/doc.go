// Package inject places a deferred <script> reference to each renamed
// entry script into hand-authored HTML shells.
//
// HTML is handled as opaque text. For every (script, file) pair the file
// is in one of three states:
//
//   - the file already references the renamed script: left unchanged
//   - the file references the un-hashed script ({publicPath}/{name}.js):
//     that tag's src is rewritten in place
//   - neither: a new tag is inserted before the first </head>
//
// Repeated runs therefore converge instead of stacking duplicate tags.
package inject
