package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fictrack/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDirectoryAccess("test", dir); !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if result := CheckDirectoryAccess("test", filepath.Join(dir, "nope")); result.Passed || !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("expected failure for missing dir, got %+v", result)
	}

	f := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckTrackerFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if result := CheckTrackerFile(cfg.TrackerFile); !result.Passed || !strings.Contains(result.Detail, "not created yet") {
		t.Fatalf("missing tracker file should pass, got %+v", result)
	}

	testsupport.MustSaveLedger(t, cfg, testsupport.NewStory(1, "one"), testsupport.NewStory(2, "two"))
	if result := CheckTrackerFile(cfg.TrackerFile); !result.Passed || !strings.Contains(result.Detail, "2 stories") {
		t.Fatalf("unexpected result %+v", result)
	}

	testsupport.WriteFile(t, cfg.TrackerFile, []byte("{not json"))
	if result := CheckTrackerFile(cfg.TrackerFile); result.Passed {
		t.Fatal("expected failure for malformed tracker file")
	}
}

func TestCheckCommand(t *testing.T) {
	testsupport.NewConfig(t, testsupport.WithStubbedBinaries(0, "fanfic-stub"))

	if result := CheckCommand("exec", "fanfic-stub -o x $URL"); !result.Passed {
		t.Fatalf("expected stub to be found, got %+v", result)
	}
	if result := CheckCommand("exec", "clearly-not-present-binary $URL"); result.Passed {
		t.Fatal("expected missing binary to fail")
	}
	if result := CheckCommand("exec", "'unterminated"); result.Passed {
		t.Fatal("expected parse failure")
	}
	if result := CheckCommand("exec", "$TOOL $URL"); result.Passed || !result.Optional {
		t.Fatalf("expanded program should be an optional warning, got %+v", result)
	}
}

func TestCheckSite(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
	}))
	defer ok.Close()
	if result := CheckSite(context.Background(), ok.URL, time.Second); !result.Passed {
		t.Fatalf("expected reachable site, got %+v", result)
	}

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()
	if result := CheckSite(context.Background(), broken.URL, time.Second); result.Passed || !strings.Contains(result.Detail, "502") {
		t.Fatalf("expected server error, got %+v", result)
	}

	if result := CheckSite(context.Background(), "", time.Second); result.Passed {
		t.Fatal("expected failure for missing url")
	}
}

func TestRunAllFollowsDeliveryMode(t *testing.T) {
	direct := testsupport.NewConfig(t)
	if err := direct.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	results := RunAll(context.Background(), direct, Options{})
	if !hasCheck(results, "Download directory") || hasCheck(results, "Exec command") || hasCheck(results, "Fimfiction") {
		t.Fatalf("unexpected direct-mode checks %+v", results)
	}
	if !Passed(results) {
		t.Fatalf("expected required checks to pass, got %+v", results)
	}

	command := testsupport.NewConfig(t, testsupport.WithExec("definitely-missing-tool $URL"))
	if err := command.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	results = RunAll(context.Background(), command, Options{})
	if hasCheck(results, "Download directory") || !hasCheck(results, "Exec command") {
		t.Fatalf("unexpected command-mode checks %+v", results)
	}
	if Passed(results) {
		t.Fatal("missing exec binary should fail the run")
	}
}

func hasCheck(results []Result, name string) bool {
	for _, r := range results {
		if r.Name == name {
			return true
		}
	}
	return false
}
