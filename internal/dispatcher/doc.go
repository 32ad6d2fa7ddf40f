// Package dispatcher turns raw key and mouse presses into command
// executions.
//
// A Dispatcher owns lookup tables built from a command list. For each
// key press it derives the ordered lookup strings (logical key, physical
// code, code letter), takes the candidates of the first lookup that has
// any, and walks them in registration order:
//
//  1. While a text field has focus, commands without CaptureInput are
//     skipped so typing is never hijacked.
//  2. Inactive commands (When returns false) are skipped.
//  3. Execute runs. Handled consumes the event (PreventDefault and
//     StopPropagation) and ends the walk; NotHandled lets the next
//     candidate try.
//
// Mouse presses follow the same walk with a single lookup and no text
// field exemption.
//
// # Sources
//
// Events arrive through a Source. Target is an in-process source for hosts
// that already own an event loop; TcellSource and TeaSource adapt tcell
// screens and Bubble Tea programs. Attach subscribes a dispatcher to a
// source and returns the matching detach function.
//
// # Rebuilds
//
// SetCommands swaps the tables atomically. Dispatch never sees a partially
// built table and handlers may call SetCommands themselves.
package dispatcher
