package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"fictrack/internal/story"
)

var (
	titleStyle   = color.New(color.FgGreen, color.Bold)
	idStyle      = color.New(color.FgBlue)
	successStyle = color.New(color.FgGreen)
	warnStyle    = color.New(color.FgYellow, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	boldStyle    = color.New(color.Bold)
)

// console prints user-facing notices. It serves as both the workflow
// reporter and the downloader listener.
type console struct {
	out      io.Writer
	err      io.Writer
	terminal bool

	bar     *progressbar.ProgressBar
	written int64
}

func newConsole(out, errOut io.Writer) *console {
	return &console{out: out, err: errOut, terminal: isTerminal(errOut)}
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func storyLabel(s story.Story) string {
	return fmt.Sprintf("%s (%s)", titleStyle.Sprint(s.Title), idStyle.Sprint(s.ID))
}

func (c *console) info(msg string) {
	fmt.Fprintln(c.err, msg)
}

func (c *console) warn(msg string) {
	fmt.Fprintf(c.err, "%s %s\n", warnStyle.Sprint("warning:"), msg)
}

func (c *console) Gated(s story.Story, kept bool) {
	if kept {
		c.info(fmt.Sprintf("%s has been marked as %s by the author. Checking for an update on it anyways.", storyLabel(s), s.Status))
		return
	}
	c.info(fmt.Sprintf("%s has been marked as %s by the author. Skipping checking for an update on it.", storyLabel(s), s.Status))
}

func (c *console) Checking(s story.Story) {
	c.info(fmt.Sprintf("Checking for %s ...", storyLabel(s)))
}

func (c *console) UpdateFound(s story.Story, update story.Update, ignored bool) {
	msg := fmt.Sprintf("%s has an update on %s", storyLabel(s), boldStyle.Sprint(update.Describe()))
	if ignored {
		msg += ". Ignoring"
	}
	c.info(msg)
}

func (c *console) MetadataChanged(previous, updated story.Story, changes story.Changes) {
	if changes.Title {
		c.info(fmt.Sprintf("%s has changed its title to %s", storyLabel(previous), titleStyle.Sprint(updated.Title)))
	}
	if changes.Author {
		c.info(fmt.Sprintf("%s has changed its author (%s => %s)", storyLabel(previous), previous.Author, updated.Author))
	}
	if changes.Status {
		c.info(fmt.Sprintf("%s has changed its status (%s => %s)", storyLabel(previous), previous.Status, updated.Status))
	}
}

func (c *console) NothingToDownload() {
	c.info("There is nothing to download")
}

func (c *console) Forcing(all bool) {
	if all {
		c.info("Force downloading every story on the tracking list")
		return
	}
	c.info("Force downloading selected stories")
}

func (c *console) Overwriting(s story.Story) {
	c.info(fmt.Sprintf("%s is already on the tracking list. Overwriting.", storyLabel(s)))
}

func (c *console) Fetching(id story.ID) {
	c.info(fmt.Sprintf("Downloading story data for %s", idStyle.Sprint(id)))
}

func (c *console) Tracked(s story.Story) {
	c.info(fmt.Sprintf("%s added to the tracking list", storyLabel(s)))
}

func (c *console) SectionBreak() {
	fmt.Fprintln(c.err)
}

func (c *console) Separator() {
	fmt.Fprintln(c.err)
}

// Progress draws a byte counter on a terminal. The total size is unknown,
// so the bar runs in spinner mode.
func (c *console) Progress(written int64, path string) {
	c.written = written
	if !c.terminal {
		if written == 0 {
			c.info(fmt.Sprintf("Starting download: %q", path))
		}
		return
	}
	if written == 0 || c.bar == nil {
		c.bar = progressbar.NewOptions64(-1,
			progressbar.OptionSetWriter(c.err),
			progressbar.OptionSetDescription(filepath.Base(path)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = c.bar.Set64(written)
}

func (c *console) FetchDone(s story.Story) {
	if c.bar != nil {
		_ = c.bar.Finish()
		c.bar = nil
	}
	c.info(fmt.Sprintf("%s %s [%s]", successStyle.Sprint("Successfully downloaded"), storyLabel(s),
		humanize.IBytes(uint64(max(c.written, 0)))))
}

func (c *console) BeforeExec(s story.Story) {
	c.info(boldStyle.Sprintf("Executing command for %s (%d)", s.Title, s.ID))
}

func (c *console) ExecDone(s story.Story) {
	c.info(fmt.Sprintf("%s %s", successStyle.Sprint("Successfully executed command for"), storyLabel(s)))
}
