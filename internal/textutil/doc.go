// Package textutil provides text processing utilities for sentence splitting,
// punctuation-aware normalization, and similarity scoring.
//
// The primary use cases are:
//   - Splitting narration scripts into sentence units on Latin and CJK
//     terminal punctuation
//   - Normalizing text for the progressively looser matching tiers used by
//     subtitle reconciliation
//   - Creating token-based fingerprints from text and comparing them with
//     cosine similarity to judge transcription confidence
//
// Fingerprints use term frequency vectors normalized for efficient comparison.
// The tokenization process lowercases text, splits on non-alphanumeric
// characters, and filters tokens shorter than 3 characters.
package textutil
