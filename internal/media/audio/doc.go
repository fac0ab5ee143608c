// Package audio plans the audio stage: which source tracks survive, whether
// each is copied or re-encoded, and the bitrate, channel count, and title
// written for it.
//
// Tracks whose title marks them as a Québécois dub (VFQ) or an audio
// description are removal candidates; a caller-supplied Confirmer decides.
// Output track indices are dense over the kept tracks.
//
// Key types:
//   - Plan: one kept track with its output index and encode decision
//   - Result: kept plans plus the tracks that were dropped
//
// Entry points:
//   - BuildPlans: applies exclusion, codec, and bitrate policy
//   - Args: renders plans into an ffmpeg argument list
package audio
