package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoHandlers is returned when a script leaves no handlers table.
	ErrNoHandlers = errors.New("lua script defines no handlers table")
)
