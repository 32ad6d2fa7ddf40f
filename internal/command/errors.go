package command

import "errors"

// ErrMissingID is returned for a command registered without an ID.
var ErrMissingID = errors.New("command: missing id")

// ErrNoHandler is returned for a command without an Execute handler.
var ErrNoHandler = errors.New("command: missing execute handler")
