// Package main implements the av1batch command line.
//
// The root command loads configuration once per invocation and exposes the
// batch runner (run), environment diagnostics (check), sidecar subtitle
// extraction (extract-subtitles), and config utilities. Exit codes: 1 for a
// missing source directory, no eligible files, or any other error; 2 when a
// batch completed but some files failed.
package main
