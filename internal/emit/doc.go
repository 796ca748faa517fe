// Package emit writes renamed bundler outputs into the output directory.
//
// Every RewriteTable entry becomes one file at {outdir}/{renamed}. Writes
// run concurrently with a bounded limit; transient filesystem errors are
// retried a few times before the write is reported as failed.
package emit
