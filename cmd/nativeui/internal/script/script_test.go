package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/nativeui/pkg/event"
)

const sample = `name: basic
widgets:
  - handle: 42
    name: ok
  - handle: 7
steps:
  - event:
      type: widget
      widget: {handle: 42, kind: clicked}
  - event:
      type: widget
      widget: {handle: 7, kind: slider_value_changed, value: 30}
  - unregister: 42
  - register: -1
  - raw: '{"type":"widget"'
  - event:
      type: key_pressed
      key: 4
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Name != "basic" || len(s.Widgets) != 2 || len(s.Steps) != 6 {
		t.Fatalf("unexpected script: %+v", s)
	}
	if s.Widgets[0].Label() != "ok" || s.Widgets[1].Label() != "widget-7" {
		t.Errorf("labels = %q, %q", s.Widgets[0].Label(), s.Widgets[1].Label())
	}

	wantActions := []string{"event", "event", "unregister", "register", "raw", "event"}
	for i, step := range s.Steps {
		if got := step.Action(); got != wantActions[i] {
			t.Errorf("step %d action = %q, want %q", i+1, got, wantActions[i])
		}
	}
	if *s.Steps[3].Register != -1 {
		t.Errorf("register = %d", *s.Steps[3].Register)
	}

	ev, err := s.Steps[1].Event.ToEvent()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Type != event.TypeWidget || ev.Widget.Handle != 7 ||
		ev.Widget.Kind != event.WidgetEventSliderValueChanged || ev.Widget.Value != 30 {
		t.Errorf("event = %+v %+v", ev, ev.Widget)
	}

	key, err := s.Steps[5].Event.ToEvent()
	if err != nil {
		t.Fatal(err)
	}
	if key.Type != event.TypeKeyPressed || key.KeyCode != 4 || key.Widget != nil {
		t.Errorf("key event = %+v", key)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		script string
		target error
	}{
		{"empty step", "steps:\n  - {}\n", ErrInvalidStep},
		{"two actions", "steps:\n  - register: 1\n    unregister: 1\n", ErrInvalidStep},
		{"unknown type", "steps:\n  - event: {type: bogus}\n", event.ErrUnknownType},
		{"widget without payload", "steps:\n  - event: {type: widget}\n", ErrInvalidStep},
		{"purchase without payload", "steps:\n  - event: {type: purchase}\n", ErrInvalidStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			if !errors.Is(err, tt.target) {
				t.Errorf("Parse error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestParseDuplicateWidget(t *testing.T) {
	_, err := Parse([]byte("widgets:\n  - handle: 1\n  - handle: 1\n"))
	if err == nil {
		t.Error("expected error for duplicate widget handle")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Steps) != 6 {
		t.Errorf("steps = %d", len(s.Steps))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
