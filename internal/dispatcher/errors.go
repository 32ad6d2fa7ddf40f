package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrInvalidBindings indicates a command list could not be indexed.
	ErrInvalidBindings = errors.New("dispatcher: invalid bindings")

	// ErrNilSource indicates Attach was called without a source.
	ErrNilSource = errors.New("dispatcher: nil source")
)
