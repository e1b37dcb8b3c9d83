// SPDX-License-Identifier: MPL-2.0

// Package guides is the guide registry: which guides exist and which
// sections each of them owns. The glossary index uses it to infer a term's
// guides from the sections the term links to.
package guides
