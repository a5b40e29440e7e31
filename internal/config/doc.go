// Package config loads inputbus settings from TOML, YAML or JSON files.
//
// The file format is chosen by extension:
//
//	[input]
//	tap_threshold_ms = 250
//
//	[log]
//	level = "debug"
//	format = "console"
//
//	[debug]
//	addr = "127.0.0.1:9090"
//	cors_origins = ["http://localhost:5173"]
//
//	[script]
//	path = "listeners.lua"
//
// Environment variables (INPUTBUS_TAP_THRESHOLD_MS, INPUTBUS_LOG_LEVEL,
// INPUTBUS_DEBUG_ADDR) override file values. Watch reloads the file when it
// changes so the tap threshold can be tuned while the program runs.
package config
