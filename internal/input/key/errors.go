package key

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// ErrInvalidBinding is the sentinel wrapped by every binding parse failure.
var ErrInvalidBinding = errors.New("invalid binding")

// Reason classifies a binding parse failure.
type Reason uint8

const (
	// ReasonEmpty means the binding had no tokens at all.
	ReasonEmpty Reason = iota

	// ReasonNoKey means the binding only contained modifiers.
	ReasonNoKey

	// ReasonMultipleKeys means more than one non-modifier token was given.
	ReasonMultipleKeys

	// ReasonUnknownKey means the non-modifier token is not in the vocabulary.
	ReasonUnknownKey
)

// String returns the reason as a short phrase.
func (r Reason) String() string {
	switch r {
	case ReasonEmpty:
		return "empty binding"
	case ReasonNoKey:
		return "only modifiers"
	case ReasonMultipleKeys:
		return "multiple keys"
	case ReasonUnknownKey:
		return "unknown key"
	default:
		return "invalid"
	}
}

// BindingError describes why a binding string could not be parsed.
type BindingError struct {
	// Input is the binding string as written.
	Input string

	// Kind is "key" or "mouse".
	Kind string

	// Reason classifies the failure.
	Reason Reason

	// Tokens holds the offending non-modifier tokens, if any.
	Tokens []string

	// Suggestion is the closest known name for an unknown token.
	Suggestion string
}

// Error implements error.
func (e *BindingError) Error() string {
	msg := fmt.Sprintf("%s binding %q: %s", e.Kind, e.Input, e.Reason)
	if len(e.Tokens) > 0 {
		msg += fmt.Sprintf(" %q", e.Tokens)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Unwrap lets errors.Is match ErrInvalidBinding.
func (e *BindingError) Unwrap() error {
	return ErrInvalidBinding
}

// Suggest returns the vocabulary entry closest to token, or "" when
// nothing is within a third of the token length (minimum 1 edit).
func Suggest(token string, vocab []string) string {
	sorted := append([]string(nil), vocab...)
	sort.Strings(sorted)

	limit := len(token) / 3
	if limit < 1 {
		limit = 1
	}

	best := ""
	bestDist := limit + 1
	for _, name := range sorted {
		if len(name) == 1 && len(token) > 2 {
			continue
		}
		d := levenshtein.ComputeDistance(token, name)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
