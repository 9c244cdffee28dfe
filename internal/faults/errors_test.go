package faults_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"fictrack/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrExecution, "downloader", "exec", "command failed", base)
	if !errors.Is(err, faults.ErrExecution) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"downloader", "exec", "command failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := faults.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, faults.ErrIO) {
		t.Fatalf("expected nil marker to fall back to ErrIO, got %v", err)
	}
	if !strings.Contains(err.Error(), "tracker failure") {
		t.Fatalf("expected default detail, got %q", err)
	}
}

type apiIssue struct{}

func (apiIssue) Error() string { return "weird api" }
func (apiIssue) Hint() faults.Hint { return faults.HintAPI }

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want faults.Hint
	}{
		{"nil", nil, faults.HintUnknown},
		{"network", faults.Wrap(faults.ErrNetwork, "fimfiction", "lookup", "", errors.New("dial")), faults.HintTryAgain},
		{"config", faults.Wrap(faults.ErrConfig, "config", "validate", "bad", nil), faults.HintFixable},
		{"comparison", fmt.Errorf("check: %w", faults.ErrComparison), faults.HintInternal},
		{"classifier wins", fmt.Errorf("lookup: %w", apiIssue{}), faults.HintAPI},
		{"plain", errors.New("mystery"), faults.HintUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := faults.Classify(tc.err); got != tc.want {
				t.Fatalf("Classify() = %s, want %s", got, tc.want)
			}
		})
	}
}
