package dispatcher

import (
	"reflect"
	"testing"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

func TestAttachDetach(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("a", []string{"a"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}

	target := NewTarget()
	var hostSaw []string
	target.AddKeyListener(func(ev *KeyEvent) { hostSaw = append(hostSaw, ev.Key) })

	detach := d.Attach(target)
	if keys, mice := target.Listeners(); keys != 2 || mice != 1 {
		t.Fatalf("listeners = %d/%d, want 2/1", keys, mice)
	}

	// The host listener was added first, so it sees the event before the
	// dispatcher consumes it.
	if !target.EmitKey(NewKeyEvent("a", "KeyA", key.ModNone)) {
		t.Error("EmitKey should report the prevented default")
	}

	detach()
	detach()
	if keys, mice := target.Listeners(); keys != 1 || mice != 0 {
		t.Errorf("listeners after detach = %d/%d, want 1/0", keys, mice)
	}

	if target.EmitKey(NewKeyEvent("a", "KeyA", key.ModNone)) {
		t.Error("detached dispatcher still consumed the event")
	}
	if !reflect.DeepEqual(r.calls, []string{"a"}) {
		t.Errorf("calls = %v", r.calls)
	}
	if len(hostSaw) != 2 {
		t.Errorf("host listener saw %d events, want 2", len(hostSaw))
	}
}

func TestTargetStopsPropagation(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("a", []string{"a"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	target := NewTarget()
	d.Attach(target)

	later := false
	target.AddKeyListener(func(*KeyEvent) { later = true })
	target.EmitKey(NewKeyEvent("a", "KeyA", key.ModNone))
	if later {
		t.Error("listener after a consuming dispatcher should not run")
	}
}

func TestAttachTwoDispatchers(t *testing.T) {
	r := &recorder{}
	first, _ := New([]*command.Command{r.cmd("one", []string{"x"}, command.NotHandled)}, nil, other)
	second, _ := New([]*command.Command{r.cmd("two", []string{"x"}, command.Handled)}, nil, other)

	target := NewTarget()
	detachFirst := first.Attach(target)
	second.Attach(target)

	target.EmitKey(NewKeyEvent("x", "KeyX", key.ModNone))
	detachFirst()
	target.EmitKey(NewKeyEvent("x", "KeyX", key.ModNone))

	if want := []string{"one", "two", "two"}; !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func TestAttachNilSource(t *testing.T) {
	d, err := New(nil, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	detach := d.Attach(nil)
	detach()
}

func TestTargetEmitMouse(t *testing.T) {
	target := NewTarget()
	var got []mouse.Button
	remove := target.AddMouseListener(func(ev *MouseEvent) { got = append(got, ev.Button) })

	target.EmitMouse(NewMouseEvent(mouse.ButtonRight, key.ModNone))
	remove()
	target.EmitMouse(NewMouseEvent(mouse.ButtonMiddle, key.ModNone))

	if !reflect.DeepEqual(got, []mouse.Button{mouse.ButtonRight}) {
		t.Errorf("got = %v", got)
	}
}
