// Package config loads lightremote configuration.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. An optional file: TOML (.toml) or YAML (.yaml, .yml)
//  3. Environment variables prefixed with LIGHTREMOTE_
//
// Example TOML file:
//
//	script = "evening.lua"
//
//	[light]
//	name = "living-room"
//
//	[messages]
//	on = "The light is ON."
//
//	[history]
//	max_entries = 100
//
//	[logging]
//	level = "debug"
//	format = "json"
//
// Environment variables mirror the file structure, for example
// LIGHTREMOTE_LIGHT_NAME, LIGHTREMOTE_HISTORY_MAX_ENTRIES and
// LIGHTREMOTE_LOG_LEVEL.
package config
