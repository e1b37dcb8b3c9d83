// SPDX-License-Identifier: MPL-2.0

// Package server exposes the glossary index over a read-only JSON API.
//
// Every request reads the snapshot that is current when it starts, so a
// reload never changes the data a request sees halfway through.
package server
