// Package preflight provides readiness checks for the filesystem paths and
// external tools a batch run depends on.
//
// These checks run in two contexts:
//   - The orchestrator calls RequireDirectories before processing any file.
//     A missing temp or output root aborts the whole run.
//   - The CLI "av1batch check" command calls RunAll and CheckSystemDeps to
//     display a readiness table.
package preflight
