// Package workflow drives each source file through the three-stage pipeline
// and the batch over a directory.
//
// A Job moves Created -> Muxed -> AudioDone -> VideoDone -> Finalized, or to
// Failed from any state. Each edge is one external invocation whose output is
// moved into a deterministic temp slot (see internal/staging). The job tracks
// every artifact it creates; a failure removes all of them, and success leaves
// only the final file in the output root.
//
// The Orchestrator enumerates eligible files, runs jobs one at a time to bound
// encoder load, and returns a Summary. Per-file errors never abort the batch;
// only run-level problems (missing temp or output root, a held lock) do.
package workflow
