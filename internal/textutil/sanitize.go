package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer swaps characters that are unsafe in file names on common
// filesystems for underscores.
var fileNameReplacer = strings.NewReplacer(
	">", "_",
	"<", "_",
	":", "_",
	"\"", "_",
	"?", "_",
	"*", "_",
	"/", "_",
	"\\", "_",
)

// SanitizeFileName normalizes name to NFC and replaces every character in
// > < : " ? * / \ with an underscore. Nothing else is altered, so the result
// has the same number of runes as the normalized input.
//
// The NFC step means a title stored in decomposed form ("e" + U+0301) yields
// a file name and template value that differ byte-wise from the title, so one
// story always lands on the same file whatever form the site returned.
func SanitizeFileName(name string) string {
	return fileNameReplacer.Replace(norm.NFC.String(name))
}
