package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"fictrack/internal/config"
	"fictrack/internal/story"
	"fictrack/internal/testsupport"
)

// fakeSite serves the story lookup and download endpoints from memory.
type fakeSite struct {
	mu        sync.Mutex
	stories   map[story.ID]story.Story
	lookups   []string
	downloads []string
	server    *httptest.Server
}

func newFakeSite(t *testing.T, stories ...story.Story) *fakeSite {
	t.Helper()
	site := &fakeSite{stories: make(map[story.ID]story.Story)}
	for _, s := range stories {
		site.stories[s.ID] = s
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/story.php", site.serveStory)
	mux.HandleFunc("/story/download/{id}/{format}", site.serveDownload)
	site.server = httptest.NewServer(mux)
	t.Cleanup(site.server.Close)
	return site
}

func (f *fakeSite) set(s story.Story) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stories[s.ID] = s
}

func (f *fakeSite) serveStory(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw := r.URL.Query().Get("story")
	f.lookups = append(f.lookups, raw)
	id, err := story.ParseID(raw)
	s, ok := f.stories[id]
	w.Header().Set("Content-Type", "application/json")
	if err != nil || !ok {
		fmt.Fprint(w, `{"error":"Invalid story id"}`)
		return
	}
	fmt.Fprintf(w, `{"story":{"id":%d,"title":%q,"url":"https://www.fimfiction.net/story/%d","short_description":"","description":"",`+
		`"date_modified":%d,"image":null,"full_image":null,"views":1,"total_views":1,"words":%d,"chapter_count":%d,"comments":0,`+
		`"author":{"id":1,"name":%q},"status":%d,"content_rating":0,"likes":-1,"dislikes":-1,"chapters":[]}}`,
		s.ID, s.Title, s.ID, s.UpdatedAt.Unix(), s.Words, s.ChapterCount, s.Author, s.Status)
}

func (f *fakeSite) serveDownload(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.downloads = append(f.downloads, r.PathValue("id"))
	f.mu.Unlock()
	_, _ = w.Write(testsupport.Payload(2048))
}

func (f *fakeSite) downloaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.downloads...)
}

func (f *fakeSite) lookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lookups)
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	site       *fakeSite
}

func setupCLITestEnv(t *testing.T, site *fakeSite, extra string) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithAPIBaseURL(site.server.URL))
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(homeDir, ".local", "share"))

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("download_dir = %q\ntracker_file = %q\nbackup_dir = %q\ndownload_delay = 0\n%s\n[api]\nbase_url = %q\n",
		cfg.DownloadDir, cfg.TrackerFile, cfg.BackupDir, extra, site.server.URL)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, site: site}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	flags := []string{"--color", "never"}
	if env != nil && env.configPath != "" {
		flags = append(flags, "--config", env.configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
