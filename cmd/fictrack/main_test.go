package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/fatih/color"

	"fictrack/internal/faults"
	"fictrack/internal/story"
	"fictrack/internal/testsupport"
)

func TestTrackListUntrack(t *testing.T) {
	site := newFakeSite(t, testsupport.NewStory(101, "First Light"), testsupport.NewStory(202, "Second Wind"))
	env := setupCLITestEnv(t, site, "")

	_, stderr, err := runCLI(t, env, "", "track", "101", "https://www.fimfiction.net/story/202/second-wind")
	if err != nil {
		t.Fatalf("track: %v\n%s", err, stderr)
	}
	requireContains(t, stderr, "First Light (101) added to the tracking list")
	requireContains(t, stderr, "Successfully downloaded Second Wind (202)")

	if got := site.downloaded(); !slices.Equal(got, []string{"101", "202"}) {
		t.Fatalf("unexpected downloads %v", got)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.DownloadDir, "First Light.html")); err != nil {
		t.Fatalf("expected downloaded file: %v", err)
	}

	l := testsupport.MustLoadLedger(t, env.cfg)
	if !slices.Equal(l.IDs(), []story.ID{101, 202}) {
		t.Fatalf("unexpected tracked ids %v", l.IDs())
	}

	out, _, err := runCLI(t, env, "", "list", "--short", "--sort-by", "title", "-r")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out != "202 Second Wind\n101 First Light\n" {
		t.Fatalf("unexpected short list %q", out)
	}

	out, _, err = runCLI(t, env, "", "ls")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Second Wind")
	requireContains(t, out, "12,000")
	requireContains(t, out, "Incomplete")

	_, stderr, err = runCLI(t, env, "", "untrack", "101", "999")
	if err != nil {
		t.Fatalf("untrack: %v", err)
	}
	requireContains(t, stderr, "First Light (101) untracked")
	requireContains(t, stderr, "There is no story of ID 999 on the tracking list.")

	if l := testsupport.MustLoadLedger(t, env.cfg); !slices.Equal(l.IDs(), []story.ID{202}) {
		t.Fatalf("unexpected ids after untrack %v", l.IDs())
	}
}

func TestTrackDeclinedOverwrite(t *testing.T) {
	tracked := testsupport.NewStory(5, "Kept")
	site := newFakeSite(t, tracked)
	env := setupCLITestEnv(t, site, "")
	testsupport.MustSaveLedger(t, env.cfg, tracked)

	_, stderr, err := runCLI(t, env, "n\n", "track", "5")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	requireContains(t, stderr, "already on the tracking list. Do you want to overwrite it? [y/N]")
	if site.lookupCount() != 0 {
		t.Fatalf("declined overwrite must not look the story up")
	}
}

func TestDownloadUpdatesLedger(t *testing.T) {
	chapters := testsupport.NewStory(1, "Chapters")
	words := testsupport.NewStory(2, "Words")
	done := testsupport.NewStory(3, "Done")
	done.Status = story.StatusComplete

	site := newFakeSite(t, chapters, words, done)
	env := setupCLITestEnv(t, site, "")
	testsupport.MustSaveLedger(t, env.cfg, chapters, words, done)

	chaptersNext := chapters
	chaptersNext.ChapterCount++
	wordsNext := words
	wordsNext.Words += 500
	site.set(chaptersNext)
	site.set(wordsNext)

	_, stderr, err := runCLI(t, env, "", "download", "--no")
	if err != nil {
		t.Fatalf("download: %v\n%s", err, stderr)
	}
	requireContains(t, stderr, "Done (3) has been marked as Complete by the author. Skipping checking for an update on it.")
	requireContains(t, stderr, "Chapters (1) has an update on chapters 3 -> 4")
	requireContains(t, stderr, "Words (2) has an update on words 12000 -> 12500. Ignoring")

	if got := site.downloaded(); !slices.Equal(got, []string{"1"}) {
		t.Fatalf("unexpected downloads %v", got)
	}
	l := testsupport.MustLoadLedger(t, env.cfg)
	if got, _ := l.Get(1); got.ChapterCount != 4 {
		t.Fatalf("chapter update not merged: %+v", got)
	}
	if got, _ := l.Get(2); got.Words != 12500 {
		t.Fatalf("ignored update not merged: %+v", got)
	}

	_, stderr, err = runCLI(t, env, "", "download", "-n")
	if err != nil {
		t.Fatalf("second download: %v", err)
	}
	requireContains(t, stderr, "There is nothing to download")
}

func TestDownloadFlagsAreExclusive(t *testing.T) {
	site := newFakeSite(t)
	env := setupCLITestEnv(t, site, "")
	if _, _, err := runCLI(t, env, "", "download", "-y", "-n"); err == nil {
		t.Fatal("expected an error for --yes with --no")
	}
}

func TestDownloadExecFailureIsFixable(t *testing.T) {
	a := testsupport.NewStory(1, "Alpha")
	b := testsupport.NewStory(2, "Beta")
	site := newFakeSite(t, a, b)
	env := setupCLITestEnv(t, site, `exec = "sh -c 'exit $ID'"`)
	testsupport.MustSaveLedger(t, env.cfg, a, b)

	_, stderr, err := runCLI(t, env, "", "download", "--force")
	if !errors.Is(err, faults.ErrExecution) {
		t.Fatalf("expected execution error, got %v\n%s", err, stderr)
	}
	requireContains(t, stderr, "Force downloading every story on the tracking list")
	if faults.Classify(err) != faults.HintFixable {
		t.Fatalf("unexpected hint %s", faults.Classify(err))
	}
}

func TestPersistFailureWritesBackup(t *testing.T) {
	s := testsupport.NewStory(9, "Nine")
	site := newFakeSite(t, s)
	env := setupCLITestEnv(t, site, "")
	testsupport.MustSaveLedger(t, env.cfg, s)

	trackerDir := filepath.Dir(env.cfg.TrackerFile)
	if err := os.Chmod(trackerDir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(trackerDir, 0o755) })
	if f, err := os.CreateTemp(trackerDir, "probe"); err == nil {
		f.Close()
		os.Remove(f.Name())
		t.Skip("directory permissions are not enforced for this user")
	}

	_, stderr, err := runCLI(t, env, "", "untrack", "9")
	if !errors.Is(err, faults.ErrIO) {
		t.Fatalf("expected save failure, got %v", err)
	}
	requireContains(t, stderr, "A backup was saved to")
	entries, readErr := os.ReadDir(env.cfg.BackupDir)
	if readErr != nil || len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "track-data-backup-") {
		t.Fatalf("expected one backup file, got %v (%v)", entries, readErr)
	}
}

func TestEmptyLedgerWarns(t *testing.T) {
	site := newFakeSite(t)
	env := setupCLITestEnv(t, site, "")
	for _, args := range [][]string{{"list"}, {"download"}, {"untrack", "1"}} {
		_, stderr, err := runCLI(t, env, "", args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		requireContains(t, stderr, "The tracking list is empty")
	}
}

func TestInvalidStoryArgument(t *testing.T) {
	site := newFakeSite(t)
	env := setupCLITestEnv(t, site, "")
	_, _, err := runCLI(t, env, "", "track", "https://example.com/story/1")
	if err == nil || faults.Classify(err) != faults.HintFixable {
		t.Fatalf("expected a fixable argument error, got %v", err)
	}
}

func TestPrintErrorIncludesAdvice(t *testing.T) {
	color.NoColor = true
	var buf strings.Builder
	printError(&buf, faults.Wrap(faults.ErrNetwork, "fimfiction", "lookup", "story 1", errors.New("timeout")))
	requireContains(t, buf.String(), "error: network error: fimfiction: lookup: story 1: timeout")
	requireContains(t, buf.String(), faults.HintTryAgain.Advice())
}

func TestConfigInitAndValidate(t *testing.T) {
	site := newFakeSite(t)
	env := setupCLITestEnv(t, site, "")

	out, _, err := runCLI(t, env, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.cfg.TrackerFile)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, env, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, env, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite")
	}

	out, _, err = runCLI(t, env, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "download_delay = 0")
}

func TestConfigInitExpandsHomePath(t *testing.T) {
	site := newFakeSite(t)
	env := setupCLITestEnv(t, site, "")

	out, _, err := runCLI(t, env, "", "config", "init", "--path", "~/fictrack/config.toml")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	want := filepath.Join(os.Getenv("HOME"), "fictrack", "config.toml")
	requireContains(t, out, want)
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected config file under HOME: %v", err)
	}
}

func TestPrompterAnswers(t *testing.T) {
	cases := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false, "what\ny\n": true}
	for input, want := range cases {
		var out strings.Builder
		p := newPrompter(strings.NewReader(input), &out)
		got, err := p.Confirm(t.Context(), "Continue?")
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: got %v want %v", input, got, want)
		}
	}
}
