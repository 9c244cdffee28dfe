package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"golang.org/x/sys/unix"

	"fictrack/internal/ledger"
)

// CheckDirectoryAccess verifies path is a directory the process can read
// and write.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckTrackerFile loads the tracker file and reports how many stories it
// holds. A missing file passes: the first save creates it.
func CheckTrackerFile(path string) Result {
	const name = "Tracker file"

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
	}
	l := ledger.New(path, nil)
	if err := l.Load(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d stories)", path, l.Len())}
}

// CheckCommand verifies the program named by an exec template can be found.
// Only the first word is inspected, before any variable expansion.
func CheckCommand(name, template string) Result {
	words, err := shellquote.Split(template)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("cannot parse %q: %v", template, err)}
	}
	if len(words) == 0 {
		return Result{Name: name, Detail: "command not configured"}
	}
	program := words[0]
	if strings.Contains(program, "$") {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%q is only known after expansion", program)}
	}
	resolved, err := exec.LookPath(program)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("binary %q not found", program)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("Ready (command: %s)", resolved)}
}

// CheckSite verifies the Fimfiction site answers. It makes a single request.
func CheckSite(ctx context.Context, baseURL string, timeout time.Duration) Result {
	const name = "Fimfiction"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, base+"/", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("invalid url: %v", err)}
	}
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeHTTPError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{Name: name, Detail: fmt.Sprintf("server error (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", base)}
}

func summarizeHTTPError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Sprintf("cannot resolve %s", dnsErr.Name)
	}
	if errors.Is(err, unix.ECONNREFUSED) {
		return "connection refused"
	}
	return err.Error()
}
