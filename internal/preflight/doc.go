// Package preflight provides readiness checks for the paths, commands and
// remote site fictrack depends on.
//
// The CLI "fictrack status" command runs them and renders one line per
// check. Checks only cover what the configuration actually uses: the
// download directory is skipped in command mode and the command binary in
// direct mode.
package preflight
