// Package config loads and validates the TOML configuration file.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/gloss/config.toml, then a gloss.toml in the current
// directory. Missing files fall back to defaults; path fields are
// expanded and made absolute before validation.
package config
