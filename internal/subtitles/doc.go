// Package subtitles plans which subtitle tracks survive container
// normalization and how each is labelled.
//
// Only text codecs can be carried into an MP4 container, so image-based
// tracks (PGS, VobSub, DVB) are dropped with a warning. Kept tracks get a
// dense output index, a display title from the language table, and forced or
// hearing-impaired dispositions derived from tags and title keywords.
//
// The package also extracts text tracks to sidecar files for the
// extract-subtitles command.
package subtitles
