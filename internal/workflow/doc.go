// Package workflow runs the tracker's commands against an in-memory ledger.
//
// Runner.Download checks tracked stories for updates and delivers the ones
// that qualify. Runner.Track adds new stories and delivers them. Both walk
// their work strictly one story at a time and pause between deliveries.
// Untrack, Filter and Sort cover the remaining ledger operations and Persist
// writes the ledger back, falling back to a timestamped backup when the
// tracker file cannot be written.
//
// Network and delivery side effects go through the Requester interface,
// terminal output through Reporter and questions through Prompter, so every
// flow is testable with fakes.
package workflow
