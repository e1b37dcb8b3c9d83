// SPDX-License-Identifier: MPL-2.0

// Package tui provides the interactive glossary browser built on Bubble Tea.
//
// The browser keeps a present.State, re-runs the query on every change and
// renders the result with the same renderer the CLI uses, so the terminal
// view and `glossary list` always agree.
package tui
