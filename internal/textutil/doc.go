// Package textutil provides text canonicalization and fuzzy similarity
// scoring for matching catalog titles against file names.
//
// The primary use cases are:
//   - Normalizing free text (titles, dates, file names) into a comparable form
//   - Scoring two normalized strings with a substring-tolerant partial ratio
//
// Normalized text only contains lower-case ASCII letters, digits, underscores
// and spaces. Scores are integers on a 0-100 scale.
package textutil
