// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties, tags, and
//     HDR side data
//   - Format: container-level metadata (duration, size, bitrate)
//
// Entry points:
//   - Probe: runs ffprobe for one stream selector and a -show_entries list;
//     failures carry services.ErrProbe
//     (an empty selector and entries list probes every stream and the format)
//   - Parse: decodes a captured JSON payload (used by tests)
package ffprobe
