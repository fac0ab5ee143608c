// Package staging owns the temp-root layout used while a file moves through
// the pipeline.
//
// Every job's intermediate paths are derived from the source base name plus a
// fixed per-stage prefix, so two runs over the same temp root would collide.
// Lock enforces a single run per temp root, and CleanStale removes prefixed
// leftovers of a run that was killed before it could roll back.
package staging
