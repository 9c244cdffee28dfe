// Package fimfiction talks to the Fimfiction story API and download
// endpoints.
//
// Story performs a single lookup and classifies every non-story answer as a
// LookupError (invalid id, malformed payload, or an error string the client
// does not recognize). Transport failures are tagged faults.ErrNetwork
// instead. Download opens the body of a story export for streaming.
package fimfiction
