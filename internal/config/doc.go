// Package config loads, normalizes, and validates scenarr configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SCENARR_DATA_DIR environment
// fallback. The Config type centralizes the data/log directories, the API
// bind address, matching defaults, and logging settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
