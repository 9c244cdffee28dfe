// Command fictrack keeps a list of Fimfiction stories and downloads the ones
// that received an update since they were last checked.
//
//	fictrack track 12345 https://www.fimfiction.net/story/67890/some-title
//	fictrack download
//	fictrack list --sort-by update -r
//	fictrack untrack 12345
//
// Configuration is read from ~/.config/fictrack/config.toml, FFT_* environment
// variables and an optional --config file. Run `fictrack config init` to
// write a commented sample.
package main
