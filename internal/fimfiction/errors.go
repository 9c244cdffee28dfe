package fimfiction

import (
	"encoding/json"
	"errors"
	"fmt"

	"fictrack/internal/faults"
	"fictrack/internal/story"
)

// invalidIDMessage is the error string Fimfiction returns for unknown ids.
const invalidIDMessage = "Invalid story id"

// Kind classifies a failed lookup.
type Kind int

const (
	KindInvalidID Kind = iota
	KindMalformedPayload
	KindUnrecognizedAPIError
)

func (k Kind) String() string {
	switch k {
	case KindInvalidID:
		return "invalid story id"
	case KindMalformedPayload:
		return "malformed payload"
	default:
		return "unrecognized api error"
	}
}

// LookupError is returned when Fimfiction answered but not with a story.
// Body holds the raw response for malformed payloads and unrecognized errors.
type LookupError struct {
	Kind    Kind
	ID      story.ID
	Message string
	Body    string
	Err     error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindInvalidID:
		return fmt.Sprintf("story %d: %s", e.ID, invalidIDMessage)
	case KindMalformedPayload:
		return fmt.Sprintf("story %d: unexpected response from the Fimfiction API: %v", e.ID, e.Err)
	default:
		return fmt.Sprintf("story %d: Fimfiction API error: %s", e.ID, e.Message)
	}
}

func (e *LookupError) Unwrap() []error {
	if e.Err != nil {
		return []error{faults.ErrLookup, e.Err}
	}
	return []error{faults.ErrLookup}
}

// Hint maps lookup failures onto user advice. A body that was not JSON at
// all is usually a transient server page, a body with the wrong shape is a
// bug in the decoder.
func (e *LookupError) Hint() faults.Hint {
	switch e.Kind {
	case KindInvalidID:
		return faults.HintFixable
	case KindMalformedPayload:
		var syntaxErr *json.SyntaxError
		if errors.As(e.Err, &syntaxErr) {
			return faults.HintTryAgain
		}
		return faults.HintInternal
	default:
		return faults.HintAPI
	}
}
