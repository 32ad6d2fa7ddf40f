// Package mouse parses mouse binding strings and derives lookup strings
// from mouse press events.
//
// Mouse bindings share the keyboard modifier grammar from package key:
//
//	"Click", "LeftClick", "Left"       primary button
//	"RightClick", "Right"              secondary button
//	"MiddleClick", "Middle"            auxiliary button
//	"$mod+Click", "Shift+RightClick"   with modifiers
//
// Each binding and each press event has exactly one canonical lookup
// string, for example "ctrl+click" or "middle".
package mouse
