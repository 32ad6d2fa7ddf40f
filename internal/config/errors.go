package config

import "errors"

var (
	// ErrInvalidSchema indicates a schema entry failed the shape check.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrUnknownCommand indicates an override for an ID absent from the schema.
	ErrUnknownCommand = errors.New("unknown command")
)
