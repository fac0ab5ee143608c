// Package ffmpeg mediates every ffmpeg invocation made by the pipeline.
//
// It runs the binary with an ordered argument list, drains stdout and stderr
// concurrently so the subprocess never blocks on a full pipe, forwards each
// output line to a caller callback, and keeps the last lines for failure
// reports. Non-zero exits become *services.EncodeFailure via Run.
//
// Prefer this package over ad-hoc exec.Command usage so progress reporting
// and timeout handling remain consistent across stages.
package ffmpeg
