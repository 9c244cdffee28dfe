package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/kballard/go-shellquote"
	"golang.org/x/sys/unix"

	"fictrack/internal/faults"
	"fictrack/internal/logging"
	"fictrack/internal/story"
)

// ExecutionError reports an exec command that did not exit cleanly. Exactly
// one of ExitCode (non-zero) or Signal is meaningful.
type ExecutionError struct {
	Command  string
	ExitCode int
	Signal   string
}

func (e *ExecutionError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("command %q was terminated by signal %s", e.Command, e.Signal)
	}
	return fmt.Sprintf("command %q exited with status code %d", e.Command, e.ExitCode)
}

func (e *ExecutionError) Unwrap() error { return faults.ErrExecution }

// Executor runs one external command to completion.
type Executor interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

func (c *Client) runExec(ctx context.Context, s story.Story) error {
	expanded := ExpandTemplate(c.exec, c.TemplateVars(s))
	args, err := shellquote.Split(expanded)
	if err != nil {
		return faults.Wrap(faults.ErrConfig, "downloader", "exec", "command should follow POSIX shell quoting: "+expanded, err)
	}
	if len(args) == 0 {
		return faults.Wrap(faults.ErrConfig, "downloader", "exec", "command expanded to nothing", nil)
	}

	var stdout, stderr io.Writer = c.stdout, c.stderr
	if c.quiet {
		stdout, stderr = nil, nil
	}

	c.listener.BeforeExec(s)
	c.logger.Debug("running exec command",
		logging.String(logging.FieldStoryID, s.ID.String()),
		logging.String("command", expanded))

	if err := c.executor.Run(ctx, args[0], args[1:], stdout, stderr); err != nil {
		return classifyExit(expanded, err)
	}

	c.listener.ExecDone(s)
	return nil
}

func classifyExit(command string, err error) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return faults.Wrap(faults.ErrIO, "downloader", "exec", "failed to execute "+command, err)
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return &ExecutionError{Command: command, Signal: unix.SignalName(status.Signal())}
	}
	return &ExecutionError{Command: command, ExitCode: exitErr.ExitCode()}
}
