// Package services defines shared utilities consumed by the pipeline stages
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, stage names, and source paths for
//     logging.
//   - Structured error markers plus the Wrap helper so the orchestrator can
//     classify a failure (per-file vs fatal for the run) with errors.Is.
//   - EncodeFailure, the typed error carried out of an external encoder that
//     exited non-zero.
//
// Subpackages wrap the external encoders themselves (ffmpeg, drapto).
package services
