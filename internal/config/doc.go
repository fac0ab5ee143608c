// Package config loads, normalizes, and validates av1batch configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the VIDEO_PATH, TEMP_PATH, and OUTPUT_PATH
// environment overrides. The resulting Config is passed to the orchestrator
// as an explicit value; no package reads the environment after Load.
package config
