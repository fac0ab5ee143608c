// Package textutil provides text helpers shared by the track planners and
// subtitle extraction.
//
// The primary use cases are:
//   - Case folding free-text track titles so markers match regardless of case
//     or accents ("QUÉBÉCOIS", "Québécois", "quebecois")
//   - Whole-word matching over folded titles
//   - Sanitizing filenames and path segments for safe filesystem use
package textutil
