package notify

import (
	"reflect"
	"testing"
)

func TestNotifyOrder(t *testing.T) {
	n := New[string]()
	defer n.Close()

	var got []string
	n.Subscribe(func(c string) { got = append(got, "first:"+c) })
	n.Subscribe(func(c string) { got = append(got, "second:"+c) })

	n.Notify("x")
	want := []string{"first:x", "second:x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUnsubscribe(t *testing.T) {
	n := New[int]()
	calls := 0
	sub := n.Subscribe(func(int) { calls++ })
	keep := n.Subscribe(func(int) {})

	if sub.ID() == "" || sub.ID() == keep.ID() {
		t.Errorf("subscription IDs not unique: %q %q", sub.ID(), keep.ID())
	}

	n.Notify(1)
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.Notify(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n.Len() != 1 {
		t.Errorf("Len = %d, want 1", n.Len())
	}
}

func TestUnsubscribeDuringNotify(t *testing.T) {
	n := New[int]()
	var sub *Subscription
	calls := 0
	sub = n.Subscribe(func(int) {
		calls++
		sub.Unsubscribe()
	})
	second := 0
	n.Subscribe(func(int) { second++ })

	n.Notify(1)
	n.Notify(2)
	if calls != 1 || second != 2 {
		t.Errorf("calls = %d, second = %d; want 1, 2", calls, second)
	}
}

func TestClose(t *testing.T) {
	n := New[int]()
	calls := 0
	n.Subscribe(func(int) { calls++ })
	n.Close()
	n.Close()
	n.Notify(1)
	if calls != 0 {
		t.Errorf("notified after Close")
	}

	var nilSub *Subscription
	nilSub.Unsubscribe()
}
