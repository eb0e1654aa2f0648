// Package diag defines the read-only diagnostic model the oracle works on.
//
// # Purpose
//
//   - Provide deterministic data structures for diagnostics delivered by
//     external compilers and linters (message, severity, code, range).
//   - Provide the position/range arithmetic the explanation surfaces
//     need: closed-interval containment and a first-match locator.
//   - Provide normalization helpers (SortStable, Dedup) that give
//     report readers a stable presentation order without coupling to
//     storage or formatting layers.
//
// # Scope
//
// Package diag performs no matching against rule tables, no formatting,
// and no IO. Explanation lookup lives in internal/explain, rendering in
// internal/explainfmt, and transport in internal/lsp and
// internal/report.
//
// # Data model
//
// Diagnostic is the central record. The oracle does not own it: the
// host's language tooling produces diagnostics, and the oracle reads
// them transiently per lookup. Positions are zero-based line/character
// pairs; Range containment is inclusive on both ends, matching how
// editors decide whether a cursor sits "on" a diagnostic.
//
// # Locating
//
// FindAt scans a snapshot in order and returns the first diagnostic
// whose range contains the queried position. It deliberately applies no
// severity policy; the hover and command surfaces each filter with
// FilterMin according to their own configured threshold before calling
// it.
package diag
