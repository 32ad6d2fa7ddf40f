package command

// Result reports whether a handler consumed the triggering event.
type Result uint8

const (
	// Handled consumes the event: default behavior is suppressed, later
	// listeners do not see it and no other candidate is tried.
	Handled Result = iota

	// NotHandled lets the next command sharing the trigger try, and leaves
	// the event unconsumed if none does.
	NotHandled
)

// String returns the result name.
func (r Result) String() string {
	if r == NotHandled {
		return "not-handled"
	}
	return "handled"
}

// Context is the host's activation state at dispatch time. The engine
// never inspects it; it is handed to When and Execute as-is.
type Context map[string]any

// Bool returns the boolean stored under key, or false.
func (c Context) Bool(key string) bool {
	v, _ := c[key].(bool)
	return v
}

// String returns the string stored under key, or "".
func (c Context) String(key string) string {
	v, _ := c[key].(string)
	return v
}

// ContextFunc supplies a fresh Context snapshot.
type ContextFunc func() Context

// Snapshot calls f, tolerating a nil func or a nil result.
func (f ContextFunc) Snapshot() Context {
	if f == nil {
		return Context{}
	}
	if ctx := f(); ctx != nil {
		return ctx
	}
	return Context{}
}

// Event is the input event that triggered a command. It is nil when the
// command runs from a palette or by ID. Dispatcher events implement it;
// handlers may type-assert for key or mouse details.
type Event interface {
	PreventDefault()
	StopPropagation()
}

// Handler executes a command.
type Handler func(ctx Context, ev Event) Result

// Predicate decides whether a command is active for a context. It must be
// synchronous and free of side effects.
type Predicate func(ctx Context) bool

// Command is a named action with optional keyboard and mouse triggers.
type Command struct {
	// ID is the unique, stable identifier (e.g. "selection.delete").
	ID string

	// Label is the display name.
	Label string

	// Category groups commands for palettes and cheatsheets.
	Category string

	// Keys are keyboard bindings such as "$mod+k" or "Escape".
	Keys []string

	// Mouse are mouse bindings such as "MiddleClick".
	Mouse []string

	// When gates activation. Nil means always active.
	When Predicate

	// Execute runs the command.
	Execute Handler

	// Hidden excludes the command from search and grouping.
	Hidden bool

	// CaptureInput lets the command fire while a text field has focus.
	CaptureInput bool
}

// HasBindings reports whether the command has any key or mouse trigger.
func (c *Command) HasBindings() bool {
	return len(c.Keys) > 0 || len(c.Mouse) > 0
}

// IsActive reports whether cmd may fire for ctx.
func IsActive(cmd *Command, ctx Context) bool {
	if cmd.When == nil {
		return true
	}
	return cmd.When(ctx)
}
