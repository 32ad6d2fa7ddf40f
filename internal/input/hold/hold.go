// Package hold detects a key held past a delay, for hold-to-reveal UIs
// such as a cheatsheet shown while a modifier is held.
package hold

import (
	"strings"
	"sync"
	"time"

	"github.com/dshills/keybinds/internal/dispatcher"
)

// DefaultDelay is the hold time before the callback reports true.
const DefaultDelay = 400 * time.Millisecond

// Callback receives true when a watched key has been held for the delay,
// and false when a revealed hold ends. It runs on the timer goroutine for
// true and on the caller's goroutine for false.
type Callback func(held bool)

// Detector tracks presses of a set of key names.
type Detector struct {
	mu       sync.Mutex
	keys     map[string]struct{}
	delay    time.Duration
	callback Callback

	timer    *time.Timer
	gen      uint64
	revealed bool
	stopped  bool
}

// New creates a detector for the given key names, compared
// case-insensitively. A non-positive delay uses DefaultDelay.
func New(keys []string, delay time.Duration, callback Callback) *Detector {
	if delay <= 0 {
		delay = DefaultDelay
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}
	return &Detector{keys: set, delay: delay, callback: callback}
}

// Watches reports whether name is one of the detector's keys.
func (d *Detector) Watches(name string) bool {
	_, ok := d.keys[strings.ToLower(name)]
	return ok
}

// Press starts the countdown for a watched key. Presses while a countdown
// is pending or a hold is revealed are ignored, so key repeat does not
// restart the timer.
func (d *Detector) Press(name string) {
	if !d.Watches(name) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || d.timer != nil || d.revealed {
		return
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Detector) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.revealed = true
	d.mu.Unlock()

	d.callback(true)
}

// Release ends the hold of a watched key.
func (d *Detector) Release(name string) {
	if !d.Watches(name) {
		return
	}
	d.cancel()
}

// Blur ends any hold, as when the host window loses focus.
func (d *Detector) Blur() {
	d.cancel()
}

func (d *Detector) cancel() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	wasRevealed := d.revealed
	d.revealed = false
	d.mu.Unlock()

	if wasRevealed {
		d.callback(false)
	}
}

// Held reports whether a hold is currently revealed.
func (d *Detector) Held() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revealed
}

// Stop cancels any pending countdown without calling the callback. The
// detector ignores all input afterwards.
func (d *Detector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Attach feeds key presses and releases from src into the detector. The
// returned function detaches it.
func (d *Detector) Attach(src dispatcher.Source) (detach func()) {
	remove := src.AddKeyListener(func(ev *dispatcher.KeyEvent) {
		if ev.Up {
			d.Release(ev.Key)
			return
		}
		d.Press(ev.Key)
	})
	var once sync.Once
	return func() { once.Do(remove) }
}
