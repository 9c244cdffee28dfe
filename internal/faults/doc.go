// Package faults defines the error markers shared by the tracker packages.
//
// Every failure the core can produce is tagged with exactly one sentinel
// (ErrIO, ErrNetwork, ErrLookup, ErrFormat, ErrComparison, ErrExecution or
// ErrConfig) so callers can branch with errors.Is while the message keeps
// the full wrapping chain. Classify maps a tagged error to the kind of hint
// the CLI should print alongside it.
package faults
