// Package matching reconciles catalog entries against files on disk.
//
// A Generator scores every (entry, file) pair: the normalized entry title is
// compared with the normalized file base name using a partial ratio, and
// pairs under the tolerance are dropped. Qualifying pairs may also carry a
// date score and a duration score (when the probed file length is within
// one minute of the catalog value). Candidates are returned flat, in entry
// then file order, without deduplication or best-match selection.
//
// Service wires a CatalogStore and a FileSource to the Generator for
// site-scoped suggestions; GenerateMatchCandidates is the one-call form used
// when the caller already holds the entries.
package matching
