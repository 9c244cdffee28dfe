// Package fileutil holds small filesystem helpers shared by the ledger and
// the downloader.
package fileutil
