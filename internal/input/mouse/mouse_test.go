package mouse

import (
	"errors"
	"testing"

	"github.com/dshills/keybinds/internal/input/key"
)

func TestParseMouse(t *testing.T) {
	p := key.NewParser(key.PlatformOther)
	tests := []struct {
		text string
		want string
	}{
		{"Click", "click"},
		{"LeftClick", "click"},
		{"left", "click"},
		{"RightClick", "right"},
		{"MiddleClick", "middle"},
		{"$mod+Click", "ctrl+click"},
		{"Shift+Alt+Right", "alt+shift+right"},
	}

	for _, tt := range tests {
		b, err := Parse(p, tt.text)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.text, err)
			continue
		}
		if b.Lookup() != tt.want {
			t.Errorf("Parse(%q).Lookup() = %q, want %q", tt.text, b.Lookup(), tt.want)
		}
	}
}

func TestParseMouseApple(t *testing.T) {
	b, err := Parse(key.NewParser(key.PlatformApple), "$mod+Click")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if b.Lookup() != "meta+click" {
		t.Errorf("Lookup() = %q, want meta+click", b.Lookup())
	}
}

func TestParseMouseErrors(t *testing.T) {
	for _, text := range []string{"", "Ctrl", "Click+Right", "DoubleClick", "Ctrl+k"} {
		_, err := ParseMouse(text)
		if !errors.Is(err, key.ErrInvalidBinding) {
			t.Errorf("ParseMouse(%q) error = %v, want ErrInvalidBinding", text, err)
		}
	}
}

func TestParseMouseRoundTrip(t *testing.T) {
	p := key.NewParser(key.PlatformApple)
	for _, text := range []string{"Click", "$mod+MiddleClick", "shift+rightclick"} {
		first, err := Parse(p, text)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", text, err)
		}
		second, err := Parse(p, first.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", first.String(), err)
		}
		if first != second {
			t.Errorf("round trip of %q = %+v, want %+v", text, second, first)
		}
	}
}

func TestEventLookup(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewEvent(ButtonPrimary, key.ModNone, Position{}), "click"},
		{NewEvent(ButtonMiddle, key.ModNone, Position{}), "middle"},
		{NewEvent(ButtonRight, key.ModCtrl, Position{X: 3, Y: 4}), "ctrl+right"},
		{NewEvent(Button(7), key.ModNone, Position{}), "click"},
	}
	for _, tt := range tests {
		if got := tt.event.Lookup(); got != tt.want {
			t.Errorf("%#v.Lookup() = %q, want %q", tt.event, got, tt.want)
		}
	}
}
