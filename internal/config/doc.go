// Package config loads, normalizes, and validates fictrack configuration.
//
// Values are layered: repository defaults, then the user config file
// (~/.config/fictrack/config.toml), then FFT_* environment variables, then an
// optional extra file passed on the command line. Paths are tilde-expanded
// and the result is validated once so the tracker core can trust every
// field it reads.
package config
