// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/glossary/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/glossary/config.cue on macOS, %APPDATA%\glossary\config.cue
// on Windows), or from an explicit path. The file is validated against the embedded CUE
// schema (config_schema.cue), merged over the defaults, and finally overridden by
// GLOSSARY_* environment variables (GLOSSARY_SERVER_ADDR, GLOSSARY_TERM_DIRS, ...).
package config
