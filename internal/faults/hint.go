package faults

import "errors"

// Hint tells the user what kind of follow-up an error calls for.
type Hint int

const (
	// HintUnknown means the cause came from a third party and could not be
	// narrowed down.
	HintUnknown Hint = iota
	// HintFixable means the user can fix it (typo, bad config, bad file).
	HintFixable
	// HintTryAgain means the failure may resolve itself later.
	HintTryAgain
	// HintAPI means the remote API answered with something unrecognized.
	HintAPI
	// HintInternal means an invariant the program relies on was broken.
	HintInternal
)

// String returns the label used in logs.
func (h Hint) String() string {
	switch h {
	case HintFixable:
		return "fixable"
	case HintTryAgain:
		return "try_again"
	case HintAPI:
		return "api"
	case HintInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Advice is the closing sentence printed after an error of this hint.
func (h Hint) Advice() string {
	switch h {
	case HintFixable:
		return "Fix the problem described above and run the command again."
	case HintTryAgain:
		return "This may be temporary, try again in a moment."
	case HintAPI:
		return "Fimfiction answered with an error that is not handled yet; please report it along with the story ID."
	case HintInternal:
		return "This should not happen; please report it."
	default:
		return "The cause is unknown; if it keeps happening please report it."
	}
}

// Classifier lets typed errors choose their own hint.
type Classifier interface {
	Hint() Hint
}

// Classify returns the hint for err. Typed errors implementing Classifier
// win over the marker mapping.
func Classify(err error) Hint {
	if err == nil {
		return HintUnknown
	}
	var classifier Classifier
	if errors.As(err, &classifier) {
		return classifier.Hint()
	}
	switch {
	case errors.Is(err, ErrConfig), errors.Is(err, ErrExecution):
		return HintFixable
	case errors.Is(err, ErrNetwork):
		return HintTryAgain
	case errors.Is(err, ErrLookup):
		return HintAPI
	case errors.Is(err, ErrComparison):
		return HintInternal
	case errors.Is(err, ErrFormat):
		return HintFixable
	default:
		return HintUnknown
	}
}
