// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for fixing it. The issue catalog holds longer Markdown guidance
// for recurring problems, rendered for the terminal with glamour.
package issue
