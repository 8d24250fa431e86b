// Package config loads, normalizes, and validates tubescribe configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/tubescribe/config.toml or a
// project-local tubescribe.toml. Command-line flags layer on top of the loaded
// values in the CLI.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
