// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces ConfigDir in tests, where HOME and
// XDG_CONFIG_HOME are not reliable on every platform.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset removes the override set by SetConfigDirOverride.
func Reset() {
	configDirOverride = ""
}
