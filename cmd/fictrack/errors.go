package main

import (
	"fmt"
	"io"

	"fictrack/internal/faults"
)

// printError writes err followed by advice matching its fault class.
func printError(w io.Writer, err error) {
	hint := faults.Classify(err)
	fmt.Fprintf(w, "%s %v\n", errorStyle.Sprint("error:"), err)
	fmt.Fprintf(w, "%s %s\n", boldStyle.Sprint("hint:"), hint.Advice())
}
