package app

import "errors"

var (
	// ErrNoStore indicates a session was configured without a store.
	ErrNoStore = errors.New("app: session requires a store")

	// ErrSessionClosed indicates use of a closed session.
	ErrSessionClosed = errors.New("app: session closed")
)
