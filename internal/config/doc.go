// Package config loads, normalizes, and validates webmify configuration.
//
// Configuration lives in a TOML file resolved from an explicit path, the
// user config directory (~/.config/webmify/config.toml), or a project-local
// webmify.toml. Missing files fall back to defaults so read-only commands
// work without prior setup. All path fields are tilde-expanded and made
// absolute during normalization.
package config
