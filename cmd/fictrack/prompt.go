package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"fictrack/internal/faults"
)

// prompter asks yes/no questions on the command's input. Input from a
// non-terminal file (a pipe or /dev/null) cannot be answered interactively.
type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	interactive := true
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// Confirm defaults to no on an empty answer or end of input.
func (p *prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if !p.interactive {
		return false, faults.Wrap(faults.ErrConfig, "prompt", "confirm",
			"standard input is not a terminal; answer with a command flag instead", nil)
	}
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(p.out, "%s [y/N] ", question)
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, faults.Wrap(faults.ErrIO, "prompt", "read answer", "", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out)
			}
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}
