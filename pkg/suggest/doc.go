// Package suggest turns a misspelled word into ranked corrections.
//
// A query word is expanded into its neighbourhood of phonetic keys (one
// transposition, substitution, insertion or deletion away), every bucket those
// keys hit in the index is scored with a distance algorithm, and the words within
// the acceptance threshold are returned as an ordered set of Proposals.
package suggest
