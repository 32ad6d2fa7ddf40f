package hold

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/keybinds/internal/dispatcher"
	"github.com/dshills/keybinds/internal/input/key"
)

const delay = 20 * time.Millisecond

type recorder struct {
	mu    sync.Mutex
	calls []bool
}

func (r *recorder) record(held bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, held)
}

func (r *recorder) get() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.calls...)
}

func equal(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHoldReveals(t *testing.T) {
	var r recorder
	d := New([]string{"Control"}, delay, r.record)
	defer d.Stop()

	d.Press("control")
	time.Sleep(4 * delay)
	if got := r.get(); !equal(got, []bool{true}) {
		t.Fatalf("after hold calls = %v, want [true]", got)
	}
	if !d.Held() {
		t.Error("Held() = false after reveal")
	}

	d.Release("Control")
	if got := r.get(); !equal(got, []bool{true, false}) {
		t.Errorf("after release calls = %v, want [true false]", got)
	}
}

func TestReleaseBeforeDelay(t *testing.T) {
	var r recorder
	d := New([]string{"Control"}, delay, r.record)
	defer d.Stop()

	d.Press("Control")
	d.Release("Control")
	time.Sleep(4 * delay)

	if got := r.get(); len(got) != 0 {
		t.Errorf("calls = %v, want none", got)
	}
}

func TestRepeatPressIgnored(t *testing.T) {
	var r recorder
	d := New([]string{"Control"}, delay, r.record)
	defer d.Stop()

	d.Press("Control")
	time.Sleep(delay / 2)
	d.Press("Control")
	d.Press("Control")
	time.Sleep(4 * delay)

	if got := r.get(); !equal(got, []bool{true}) {
		t.Errorf("calls = %v, want a single [true]", got)
	}
}

func TestBlur(t *testing.T) {
	var r recorder
	d := New([]string{"Meta", "Control"}, delay, r.record)
	defer d.Stop()

	d.Press("Meta")
	time.Sleep(4 * delay)
	d.Blur()
	d.Blur()

	if got := r.get(); !equal(got, []bool{true, false}) {
		t.Errorf("calls = %v, want [true false]", got)
	}
}

func TestUnwatchedKeys(t *testing.T) {
	var r recorder
	d := New([]string{"Control"}, delay, r.record)
	defer d.Stop()

	d.Press("a")
	time.Sleep(4 * delay)
	d.Release("a")

	if got := r.get(); len(got) != 0 {
		t.Errorf("calls = %v, want none", got)
	}
}

func TestStop(t *testing.T) {
	var r recorder
	d := New([]string{"Control"}, delay, r.record)

	d.Press("Control")
	d.Stop()
	time.Sleep(4 * delay)
	d.Press("Control")
	time.Sleep(4 * delay)

	if got := r.get(); len(got) != 0 {
		t.Errorf("calls = %v, want none", got)
	}
}

func TestDefaultDelay(t *testing.T) {
	d := New(nil, 0, func(bool) {})
	if d.delay != DefaultDelay {
		t.Errorf("delay = %v, want %v", d.delay, DefaultDelay)
	}
}

func TestAttach(t *testing.T) {
	var r recorder
	d := New([]string{"Control"}, delay, r.record)
	defer d.Stop()

	target := dispatcher.NewTarget()
	detach := d.Attach(target)

	target.EmitKey(dispatcher.NewKeyEvent("Control", "ControlLeft", key.ModCtrl))
	time.Sleep(4 * delay)

	up := dispatcher.NewKeyEvent("Control", "ControlLeft", key.ModNone)
	up.Up = true
	target.EmitKey(up)

	if got := r.get(); !equal(got, []bool{true, false}) {
		t.Errorf("calls = %v, want [true false]", got)
	}

	detach()
	detach()
	if keys, _ := target.Listeners(); keys != 0 {
		t.Errorf("listeners after detach = %d, want 0", keys)
	}
}
