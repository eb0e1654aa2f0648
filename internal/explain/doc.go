// Package explain maps raw diagnostic messages to human explanations.
//
// # Purpose
//
//   - Hold an ordered, immutable table of (language, pattern,
//     explanation) rules.
//   - Resolve a message for a language to the explanation of the first
//     matching rule, or to a generic fallback that echoes the message.
//   - Build the web-search link offered next to an explanation.
//
// # Lookup semantics
//
// Language identifiers are compared for exact equality; the resolver
// never normalizes case or whitespace of either the message or the
// language. Patterns match anywhere inside the message. The walk is
// strictly first-match-wins: rule order in the table is the only
// priority there is. This is a deliberate simplicity trade-off, not a
// ranked-best-match system.
//
// # Purity
//
// A Resolver has no mutable state and no side effects. Identical inputs
// give identical output for the lifetime of the table, so surfaces may
// share one resolver across concurrent lookups without locking.
//
// Extra rules can be layered on top of the builtin table via
// internal/rulepack.
package explain
