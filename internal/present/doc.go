// SPDX-License-Identifier: MPL-2.0

// Package present renders query results for terminals.
//
// State holds the three user-controlled filter fields. Renderer turns a
// filtered view of an index into grouped tables, category controls and a
// term detail view. A filter that matches nothing renders the empty-state
// message and a hint to clear the filters.
package present
