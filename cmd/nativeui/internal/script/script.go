// Package script defines the YAML replay scripts read by "nativeui replay".
//
// A script declares the widgets to register and a list of steps. Each step
// does exactly one thing: post a host event, post raw host bytes, register a
// handle or unregister one.
//
//	widgets:
//	  - handle: 42
//	    name: ok
//	steps:
//	  - event: {type: widget, widget: {handle: 42, kind: clicked}}
//	  - unregister: 42
//	  - raw: '{"type":"widget"'
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/nativeui/pkg/event"
	"gopkg.in/yaml.v3"
)

// ErrInvalidStep is returned for a step that does not name exactly one
// action.
var ErrInvalidStep = errors.New("invalid step")

// Script is a parsed replay script.
type Script struct {
	Name    string   `yaml:"name,omitempty"`
	Widgets []Widget `yaml:"widgets"`
	Steps   []Step   `yaml:"steps"`
}

// Widget is a recording widget registered before the first step.
type Widget struct {
	Handle int64  `yaml:"handle"`
	Name   string `yaml:"name,omitempty"`
}

// Label returns Name, or a name derived from the handle.
func (w Widget) Label() string {
	if w.Name != "" {
		return w.Name
	}
	return fmt.Sprintf("widget-%d", w.Handle)
}

// Step is one replay action.
type Step struct {
	Event      *Event `yaml:"event,omitempty"`
	Raw        string `yaml:"raw,omitempty"`
	Register   *int64 `yaml:"register,omitempty"`
	Unregister *int64 `yaml:"unregister,omitempty"`
}

// Action names the kind of step.
func (s Step) Action() string {
	switch {
	case s.Event != nil:
		return "event"
	case s.Raw != "":
		return "raw"
	case s.Register != nil:
		return "register"
	case s.Unregister != nil:
		return "unregister"
	}
	return ""
}

func (s Step) actions() int {
	n := 0
	if s.Event != nil {
		n++
	}
	if s.Raw != "" {
		n++
	}
	if s.Register != nil {
		n++
	}
	if s.Unregister != nil {
		n++
	}
	return n
}

// Event is the YAML form of a host event.
type Event struct {
	Type     string         `yaml:"type"`
	Widget   *WidgetEvent   `yaml:"widget,omitempty"`
	Purchase *PurchaseEvent `yaml:"purchase,omitempty"`
	Key      int            `yaml:"key,omitempty"`
	X        int            `yaml:"x,omitempty"`
	Y        int            `yaml:"y,omitempty"`
}

// WidgetEvent is the YAML form of event.WidgetEventData.
type WidgetEvent struct {
	Handle    int64  `yaml:"handle"`
	Kind      string `yaml:"kind"`
	Value     int    `yaml:"value,omitempty"`
	ItemIndex int    `yaml:"itemIndex,omitempty"`
	Checked   bool   `yaml:"checked,omitempty"`
	Text      string `yaml:"text,omitempty"`
}

// PurchaseEvent is the YAML form of event.PurchaseEventData.
type PurchaseEvent struct {
	Handle    int64  `yaml:"handle"`
	State     int    `yaml:"state"`
	ErrorCode int    `yaml:"errorCode,omitempty"`
	ProductID string `yaml:"productId,omitempty"`
}

// ToEvent converts e into an event.Event.
func (e *Event) ToEvent() (event.Event, error) {
	typ, ok := event.ParseType(strings.TrimSpace(e.Type))
	if !ok {
		return event.Event{}, fmt.Errorf("%w: %q", event.ErrUnknownType, e.Type)
	}

	ev := event.Event{Type: typ, KeyCode: e.Key, X: e.X, Y: e.Y}
	switch typ {
	case event.TypeWidget:
		if e.Widget == nil {
			return event.Event{}, fmt.Errorf("%w: widget event without widget payload", ErrInvalidStep)
		}
		ev.Widget = &event.WidgetEventData{
			Handle:    event.Handle(e.Widget.Handle),
			Kind:      event.ParseWidgetEventKind(e.Widget.Kind),
			Value:     e.Widget.Value,
			ItemIndex: e.Widget.ItemIndex,
			Checked:   e.Widget.Checked,
			Text:      e.Widget.Text,
		}
	case event.TypePurchase:
		if e.Purchase == nil {
			return event.Event{}, fmt.Errorf("%w: purchase event without purchase payload", ErrInvalidStep)
		}
		ev.Purchase = &event.PurchaseEventData{
			Handle:    event.Handle(e.Purchase.Handle),
			State:     e.Purchase.State,
			ErrorCode: e.Purchase.ErrorCode,
			ProductID: e.Purchase.ProductID,
		}
	}
	return ev, nil
}

// Load reads and validates the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	seen := make(map[int64]bool, len(s.Widgets))
	for _, w := range s.Widgets {
		if seen[w.Handle] {
			return nil, fmt.Errorf("widget handle %d declared twice", w.Handle)
		}
		seen[w.Handle] = true
	}

	for i, step := range s.Steps {
		if n := step.actions(); n != 1 {
			return nil, fmt.Errorf("step %d: %w: want exactly one action, got %d", i+1, ErrInvalidStep, n)
		}
		if step.Event != nil {
			if _, err := step.Event.ToEvent(); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return &s, nil
}
