package dispatcher

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/input/mouse"
)

var other = WithParser(key.NewParser(key.PlatformOther))

// recorder builds commands that log their ID when executed.
type recorder struct {
	calls []string
}

func (r *recorder) cmd(id string, keys []string, result command.Result) *command.Command {
	return &command.Command{
		ID:   id,
		Keys: keys,
		Execute: func(command.Context, command.Event) command.Result {
			r.calls = append(r.calls, id)
			return result
		},
	}
}

func TestDispatchKeyHandled(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("palette", []string{"$mod+k"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	ev := NewKeyEvent("k", "KeyK", key.ModCtrl)
	if !d.DispatchKey(ev) {
		t.Fatal("DispatchKey = false, want true")
	}
	if !ev.DefaultPrevented() || !ev.PropagationStopped() {
		t.Error("handled event should be prevented and stopped")
	}
	if !reflect.DeepEqual(r.calls, []string{"palette"}) {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestDispatchKeyNoMatch(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("a", []string{"a"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	ev := NewKeyEvent("b", "KeyB", key.ModNone)
	if d.DispatchKey(ev) {
		t.Error("unbound key should not be consumed")
	}
	if ev.DefaultPrevented() || ev.PropagationStopped() {
		t.Error("unconsumed event should not be marked")
	}
}

func TestDispatchFallthrough(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{
		r.cmd("first", []string{"escape"}, command.NotHandled),
		r.cmd("second", []string{"escape"}, command.Handled),
		r.cmd("third", []string{"escape"}, command.Handled),
	}, nil, other)
	if err != nil {
		t.Fatal(err)
	}

	if !d.DispatchKey(NewKeyEvent("Escape", "Escape", key.ModNone)) {
		t.Fatal("escape should be consumed")
	}
	if want := []string{"first", "second"}; !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func TestDispatchAllNotHandled(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{
		r.cmd("a", []string{"escape"}, command.NotHandled),
		r.cmd("b", []string{"escape"}, command.NotHandled),
	}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	ev := NewKeyEvent("Escape", "", key.ModNone)
	if d.DispatchKey(ev) {
		t.Error("event should not be consumed")
	}
	if ev.DefaultPrevented() {
		t.Error("default should not be prevented")
	}
	if len(r.calls) != 2 {
		t.Errorf("calls = %v, want both", r.calls)
	}
}

func TestDispatchInputExemption(t *testing.T) {
	r := &recorder{}
	plain := r.cmd("plain", []string{"a"}, command.Handled)
	capture := r.cmd("capture", []string{"escape"}, command.Handled)
	capture.CaptureInput = true

	d, err := New([]*command.Command{plain, capture}, nil, other)
	if err != nil {
		t.Fatal(err)
	}

	ev := NewKeyEvent("a", "KeyA", key.ModNone)
	ev.InInput = true
	if d.DispatchKey(ev) {
		t.Error("plain command fired while typing")
	}
	if ev.DefaultPrevented() {
		t.Error("typing event should keep its default")
	}

	ev = NewKeyEvent("Escape", "Escape", key.ModNone)
	ev.InInput = true
	if !d.DispatchKey(ev) {
		t.Error("CaptureInput command should fire while typing")
	}
	if !reflect.DeepEqual(r.calls, []string{"capture"}) {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestDispatchWhen(t *testing.T) {
	r := &recorder{}
	gated := r.cmd("gated", []string{"d"}, command.Handled)
	gated.When = func(ctx command.Context) bool { return ctx.Bool("selection") }
	fallback := r.cmd("fallback", []string{"d"}, command.Handled)

	state := command.Context{}
	d, err := New([]*command.Command{gated, fallback}, func() command.Context { return state }, other)
	if err != nil {
		t.Fatal(err)
	}

	d.DispatchKey(NewKeyEvent("d", "KeyD", key.ModNone))
	state = command.Context{"selection": true}
	d.DispatchKey(NewKeyEvent("d", "KeyD", key.ModNone))

	if want := []string{"fallback", "gated"}; !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func TestDispatchWhenEvaluatedOnce(t *testing.T) {
	evaluations := 0
	cmd := &command.Command{
		ID:   "x",
		Keys: []string{"x"},
		When: func(command.Context) bool {
			evaluations++
			return true
		},
		Execute: func(command.Context, command.Event) command.Result { return command.Handled },
	}
	d, err := New([]*command.Command{cmd}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	d.DispatchKey(NewKeyEvent("x", "KeyX", key.ModNone))
	if evaluations != 1 {
		t.Errorf("When evaluated %d times, want 1", evaluations)
	}
}

func TestDispatchLayoutIndependence(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("k", []string{"$mod+k"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	if !d.DispatchKey(NewKeyEvent("л", "KeyK", key.ModCtrl)) {
		t.Error("Cyrillic layout press of KeyK should fire $mod+k")
	}
}

func TestDispatchModifierOrderIrrelevant(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("x", []string{"Shift+Alt+x"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	if !d.DispatchKey(NewKeyEvent("x", "KeyX", key.ModAlt|key.ModShift)) {
		t.Error("alt+shift+x should fire Shift+Alt+x")
	}
}

func TestDispatchDuplicateIDLastWins(t *testing.T) {
	r := &recorder{}
	first := r.cmd("save", []string{"s"}, command.Handled)
	second := &command.Command{
		ID:   "save",
		Keys: []string{"s"},
		Execute: func(command.Context, command.Event) command.Result {
			r.calls = append(r.calls, "save-v2")
			return command.Handled
		},
	}
	d, err := New([]*command.Command{first, second}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	d.DispatchKey(NewKeyEvent("s", "KeyS", key.ModNone))
	if !reflect.DeepEqual(r.calls, []string{"save-v2"}) {
		t.Errorf("calls = %v, want [save-v2]", r.calls)
	}
}

func TestDispatchMouse(t *testing.T) {
	var got []string
	cmds := []*command.Command{{
		ID:    "paste",
		Mouse: []string{"MiddleClick"},
		Execute: func(_ command.Context, ev command.Event) command.Result {
			got = append(got, ev.(*MouseEvent).Lookup())
			return command.Handled
		},
	}}
	d, err := New(cmds, nil, other)
	if err != nil {
		t.Fatal(err)
	}

	if d.DispatchMouse(NewMouseEvent(mouse.ButtonPrimary, key.ModNone)) {
		t.Error("primary click should not fire MiddleClick")
	}
	ev := NewMouseEvent(mouse.ButtonMiddle, key.ModNone)
	if !d.DispatchMouse(ev) || !ev.DefaultPrevented() {
		t.Error("middle click should be consumed")
	}
	if !reflect.DeepEqual(got, []string{"middle"}) {
		t.Errorf("got = %v", got)
	}
}

func TestNewInvalidBinding(t *testing.T) {
	_, err := New([]*command.Command{{ID: "bad", Keys: []string{"Ctrl+Shift"}}}, nil, other)
	if !errors.Is(err, ErrInvalidBindings) || !errors.Is(err, key.ErrInvalidBinding) {
		t.Errorf("New error = %v", err)
	}
}

func TestSetCommandsRebuilds(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("a", []string{"a"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}

	if err := d.SetCommands([]*command.Command{r.cmd("b", []string{"b"}, command.Handled)}); err != nil {
		t.Fatal(err)
	}
	if d.DispatchKey(NewKeyEvent("a", "KeyA", key.ModNone)) {
		t.Error("stale binding a still fires")
	}
	if !d.DispatchKey(NewKeyEvent("b", "KeyB", key.ModNone)) {
		t.Error("new binding b does not fire")
	}

	if err := d.SetCommands([]*command.Command{{ID: "bad", Keys: []string{"nope"}}}); err == nil {
		t.Error("SetCommands accepted an invalid binding")
	}
	if !d.DispatchKey(NewKeyEvent("b", "KeyB", key.ModNone)) {
		t.Error("failed rebuild should keep previous tables")
	}
}

func TestOnExecuteAndMetrics(t *testing.T) {
	r := &recorder{}
	var executed []string
	d, err := New(
		[]*command.Command{
			r.cmd("decline", []string{"q"}, command.NotHandled),
			r.cmd("quit", []string{"q"}, command.Handled),
		},
		nil,
		other,
		WithMetrics(),
		WithOnExecute(func(cmd *command.Command, _ command.Context) {
			executed = append(executed, cmd.ID)
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	d.DispatchKey(NewKeyEvent("q", "KeyQ", key.ModNone))
	if !reflect.DeepEqual(executed, []string{"quit"}) {
		t.Errorf("executed = %v", executed)
	}

	m := d.Metrics()
	if m.TotalDispatches() != 1 || m.TotalHandled() != 1 {
		t.Errorf("totals = %d/%d, want 1/1", m.TotalDispatches(), m.TotalHandled())
	}
	if s := m.CommandStats("decline"); s == nil || s.NotHandledCount != 1 {
		t.Errorf("decline stats = %+v", s)
	}
	if top := m.TopCommands(1); len(top) != 1 || top[0].ID != "quit" {
		t.Errorf("TopCommands = %+v", top)
	}
}

func TestExecuteByID(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("unbound", nil, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	if res, ok := d.ExecuteByID("unbound"); !ok || res != command.Handled {
		t.Errorf("ExecuteByID = %v, %v", res, ok)
	}
	if _, ok := d.ExecuteByID("missing"); ok {
		t.Error("missing command executed")
	}
}

func TestExecuteByIDReportsCommandThatRan(t *testing.T) {
	var ran, reported string
	labeled := func(label string) *command.Command {
		return &command.Command{
			ID:    "save",
			Label: label,
			Execute: func(command.Context, command.Event) command.Result {
				ran = label
				return command.Handled
			},
		}
	}

	var d *Dispatcher
	swapped := false
	ctxFn := func() command.Context {
		if !swapped {
			swapped = true
			if err := d.SetCommands([]*command.Command{labeled("new")}); err != nil {
				t.Fatal(err)
			}
		}
		return command.Context{}
	}

	d, err := New([]*command.Command{labeled("old")}, ctxFn, other,
		WithOnExecute(func(cmd *command.Command, _ command.Context) { reported = cmd.Label }))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := d.ExecuteByID("save"); !ok {
		t.Fatal("ExecuteByID = false")
	}
	if ran != reported {
		t.Errorf("ran %q but reported %q", ran, reported)
	}
}

func TestKeyReleaseIgnored(t *testing.T) {
	r := &recorder{}
	d, err := New([]*command.Command{r.cmd("a", []string{"a"}, command.Handled)}, nil, other)
	if err != nil {
		t.Fatal(err)
	}
	ev := NewKeyEvent("a", "KeyA", key.ModNone)
	ev.Up = true
	if d.DispatchKey(ev) || len(r.calls) != 0 {
		t.Error("key release should not dispatch")
	}
}
