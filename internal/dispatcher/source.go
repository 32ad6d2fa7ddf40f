package dispatcher

import "sync"

// KeyListener receives key events from a Source.
type KeyListener func(*KeyEvent)

// MouseListener receives mouse press events from a Source.
type MouseListener func(*MouseEvent)

// Source is a host event source. Each Add method returns a function that
// removes exactly the listener it added.
type Source interface {
	AddKeyListener(fn KeyListener) (remove func())
	AddMouseListener(fn MouseListener) (remove func())
}

// FocusFunc reports whether keyboard focus is in an editable text field.
type FocusFunc func() bool

type keyEntry struct {
	id int
	fn KeyListener
}

type mouseEntry struct {
	id int
	fn MouseListener
}

// Target is an in-process Source. Listeners run in registration order
// until one stops propagation.
type Target struct {
	mu     sync.Mutex
	nextID int
	keys   []keyEntry
	mice   []mouseEntry
}

// NewTarget creates an empty target.
func NewTarget() *Target {
	return &Target{}
}

// AddKeyListener implements Source.
func (t *Target) AddKeyListener(fn KeyListener) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.keys = append(t.keys, keyEntry{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, e := range t.keys {
			if e.id == id {
				t.keys = append(t.keys[:i:i], t.keys[i+1:]...)
				return
			}
		}
	}
}

// AddMouseListener implements Source.
func (t *Target) AddMouseListener(fn MouseListener) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.mice = append(t.mice, mouseEntry{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, e := range t.mice {
			if e.id == id {
				t.mice = append(t.mice[:i:i], t.mice[i+1:]...)
				return
			}
		}
	}
}

// EmitKey delivers ev to the key listeners and reports whether its
// default behavior was prevented.
func (t *Target) EmitKey(ev *KeyEvent) bool {
	t.mu.Lock()
	listeners := append([]keyEntry(nil), t.keys...)
	t.mu.Unlock()

	for _, l := range listeners {
		l.fn(ev)
		if ev.PropagationStopped() {
			break
		}
	}
	return ev.DefaultPrevented()
}

// EmitMouse delivers ev to the mouse listeners and reports whether its
// default behavior was prevented.
func (t *Target) EmitMouse(ev *MouseEvent) bool {
	t.mu.Lock()
	listeners := append([]mouseEntry(nil), t.mice...)
	t.mu.Unlock()

	for _, l := range listeners {
		l.fn(ev)
		if ev.PropagationStopped() {
			break
		}
	}
	return ev.DefaultPrevented()
}

// Listeners returns the number of registered key and mouse listeners.
func (t *Target) Listeners() (keys, mice int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keys), len(t.mice)
}
