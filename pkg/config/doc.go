// Package config handles configuration management for warforge.
// It layers embedded defaults, a user configuration file, the project's
// warforge.toml or warforge.yaml, WARFORGE_ environment variables and
// command-line flags, then resolves every path against the project base
// directory.
package config
