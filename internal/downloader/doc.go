// Package downloader looks stories up and delivers their content.
//
// Client implements both halves of the requester contract used by the
// workflow package. Lookup fetches the current snapshot of a story. Deliver
// either streams the story export into the download directory, reporting
// byte progress to a Listener, or runs the configured exec template with the
// story's fields substituted in.
package downloader
