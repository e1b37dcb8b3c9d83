// SPDX-License-Identifier: MPL-2.0

// Package index merges discovered term categories into a single immutable
// glossary index.
//
// Categories with the same label are merged in discovery order. Every term
// gets an effective guide set, the union of its explicit guides and the
// guides that own its sections. Duplicate (category, term) pairs keep the
// first occurrence. Malformed entries are excluded, and every exclusion is
// reported as a diagnostic rather than an error.
//
// An Index is never modified after Build returns. All accessors return
// copies, so callers may freely mutate what they receive.
package index
