// Package language maps language codes found in stream tags to the display
// names written into output track titles.
//
// ISO 639-1, both ISO 639-2 variants, English words, and BCP 47 tags such as
// "fr-CA" resolve to one table entry. Unknown codes resolve to a fixed
// sentinel ("Inconnu" or "Unknown"), never to an error.
package language
