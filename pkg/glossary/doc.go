// SPDX-License-Identifier: MPL-2.0

// Package glossary defines the glossary data model shared by term modules,
// the index builder and every consumer of the index.
//
// A term module is a CUE document named "<name>.glossary.cue" holding an
// ordered list of categories, each with an ordered list of terms. Modules are
// validated against the embedded #TermModule schema (glossary_schema.cue) for
// structure only; content rules such as "a term needs a definition" are
// checked per term by Term.IsValid so a single bad entry never discards the
// rest of its module.
package glossary
