// Package logging assembles the slog loggers used by fictrack.
//
// It owns the console and JSON handlers and level parsing. The context
// helpers stamp each line with the run's correlation id. A nil logger passed
// to NewComponentLogger or WithContext discards everything.
package logging
