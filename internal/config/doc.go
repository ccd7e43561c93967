// Package config loads, validates, and normalizes subforge configuration
// from TOML files, providing defaults for every value so the tool runs with
// an empty config.
package config
