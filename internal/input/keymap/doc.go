// Package keymap builds the lookup tables the dispatcher consults.
//
// Every key and mouse binding of every command is parsed once into its
// canonical lookup string ("ctrl+shift+k", "middle") and the command is
// appended to that string's candidate list. Several commands may share a
// trigger; the dispatcher tries them in registration order and the first
// active one that handles the event wins.
//
// Tables are immutable once built. Rebuild them whenever the command list
// changes.
package keymap
