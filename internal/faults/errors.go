package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIO         = errors.New("i/o error")
	ErrNetwork    = errors.New("network error")
	ErrLookup     = errors.New("lookup error")
	ErrFormat     = errors.New("tracker format error")
	ErrComparison = errors.New("comparison error")
	ErrExecution  = errors.New("execution error")
	ErrConfig     = errors.New("configuration error")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above; a nil marker falls back to ErrIO.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "tracker failure"
	}
	return strings.Join(parts, ": ")
}
