// Package app turns binding schemas and handler sets into live commands.
//
// FromBindings and BuildCommands join a merged binding set with handler
// implementations. A Session keeps a dispatcher in step with a
// config.Store: every saved or reloaded override rebuilds the commands and
// swaps the dispatcher's tables.
package app
