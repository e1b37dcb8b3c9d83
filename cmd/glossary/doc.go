// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for glossary.
//
// Every command loads configuration first, then builds a fresh index from
// the configured term sources. Commands that serve or watch keep rebuilding
// the index as sources change.
package cmd
