// Package pipeline runs one build invocation end to end:
//
//	prepare outdir → copy public dir → rewrite aliases → bundle →
//	discover HTML → synthesize manifest → write manifest →
//	inject script tags → emit renamed outputs → summary
//
// Watch repeats the invocation whenever a source file changes.
package pipeline
