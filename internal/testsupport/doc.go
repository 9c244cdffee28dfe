// Package testsupport holds fixtures shared by package tests: temp-dir
// configs, seeded ledgers and a recording fake Requester.
package testsupport
