// Package command defines the declarative command model shared by the
// dispatcher, palette search and the binding store.
//
// A Command pairs a stable ID with optional key and mouse bindings, an
// activation predicate and a handler. Commands are plain values built
// fresh for each configuration; the same ID registered twice resolves to
// the last registration (see Dedupe).
package command
