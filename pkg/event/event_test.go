package event

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/nativeui/pkg/errors"
	"github.com/go-drift/nativeui/pkg/platform"
)

type recorder struct {
	events []Event
}

func (r *recorder) CustomEvent(ev Event) {
	r.events = append(r.events, ev)
}

func TestTypeNames(t *testing.T) {
	for typ, name := range typeNames {
		got, ok := ParseType(name)
		if !ok || got != typ {
			t.Errorf("ParseType(%q) = %v,%v want %v", name, got, ok, typ)
		}
		if typ.String() != name {
			t.Errorf("%d.String() = %q, want %q", typ, typ.String(), name)
		}
	}
	if _, ok := ParseType("bogus"); ok {
		t.Error("ParseType(bogus) should fail")
	}
	if got := Type(99).String(); got != "unknown" {
		t.Errorf("Type(99).String() = %q", got)
	}
}

func TestParseWidgetEventKind(t *testing.T) {
	if got := ParseWidgetEventKind("slider_value_changed"); got != WidgetEventSliderValueChanged {
		t.Errorf("got %v", got)
	}
	if got := ParseWidgetEventKind("wobble"); got != WidgetEventUnknown {
		t.Errorf("unrecognised kind = %v, want WidgetEventUnknown", got)
	}
}

func TestDecodeWidgetEvent(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"widget","widget":{"handle":42,"kind":"slider_value_changed","value":17}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ev.Type != TypeWidget || ev.Widget == nil {
		t.Fatalf("unexpected event %+v", ev)
	}
	want := WidgetEventData{Handle: 42, Kind: WidgetEventSliderValueChanged, Value: 17}
	if *ev.Widget != want {
		t.Errorf("Widget = %+v, want %+v", *ev.Widget, want)
	}
}

func TestDecodePurchaseEvent(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"purchase","purchase":{"handle":3,"state":2,"productId":"gold"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ev.Purchase == nil || ev.Purchase.Handle != 3 || ev.Purchase.State != 2 || ev.Purchase.ProductID != "gold" {
		t.Errorf("Purchase = %+v", ev.Purchase)
	}
	if ev.Widget != nil {
		t.Error("purchase event should carry no widget payload")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"not json", `{"type":`, ErrMalformed},
		{"not object", `[1,2]`, ErrMalformed},
		{"unknown type", `{"type":"teleport"}`, ErrUnknownType},
		{"missing type", `{}`, ErrUnknownType},
		{"widget without handle", `{"type":"widget","widget":{"kind":"clicked"}}`, ErrMalformed},
		{"purchase without handle", `{"type":"purchase","purchase":{}}`, ErrMalformed},
		{"bool handle", `{"type":"widget","widget":{"handle":true,"kind":"clicked"}}`, ErrMalformed},
		{"null handle", `{"type":"widget","widget":{"handle":null,"kind":"clicked"}}`, ErrMalformed},
		{"string handle", `{"type":"widget","widget":{"handle":"abc","kind":"clicked"}}`, ErrMalformed},
		{"fractional handle", `{"type":"widget","widget":{"handle":1.9,"kind":"clicked"}}`, ErrMalformed},
		{"exponent handle", `{"type":"widget","widget":{"handle":1e2,"kind":"clicked"}}`, ErrMalformed},
		{"object handle", `{"type":"widget","widget":{"handle":{},"kind":"clicked"}}`, ErrMalformed},
		{"overflowing handle", `{"type":"widget","widget":{"handle":9223372036854775808}}`, ErrMalformed},
		{"purchase string handle", `{"type":"purchase","purchase":{"handle":"3","state":1}}`, ErrMalformed},
		{"purchase fractional handle", `{"type":"purchase","purchase":{"handle":0.5,"state":1}}`, ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.in)); !stderrors.Is(err, tt.want) {
				t.Errorf("Decode(%s) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestDecodeLargeHandle(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"widget","widget":{"handle":-9007199254740993,"kind":"clicked"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if ev.Widget.Handle != -9007199254740993 {
		t.Errorf("handle = %d", ev.Widget.Handle)
	}
}

func TestEncodeDecodeWidget(t *testing.T) {
	in := NewWidgetEvent(WidgetEventData{Handle: 7, Kind: WidgetEventEditBoxTextChanged, Text: "hi", Checked: true})
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode(%s): %v", data, err)
	}
	if *out.Widget != *in.Widget {
		t.Errorf("round trip = %+v, want %+v", *out.Widget, *in.Widget)
	}
}

func TestEncodeNonWidget(t *testing.T) {
	data, err := Encode(Event{Type: TypePointerPressed, X: 3, Y: 4})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"type":"pointer_pressed","x":3,"y":4}`; got != want {
		t.Errorf("Encode = %s, want %s", got, want)
	}

	if _, err := Encode(Event{Type: TypeWidget}); !stderrors.Is(err, ErrMalformed) {
		t.Errorf("widget without payload error = %v", err)
	}
	if _, err := Encode(Event{}); !stderrors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type error = %v", err)
	}
}

func TestEnvironmentPost(t *testing.T) {
	env := NewEnvironment()
	a, b := &recorder{}, &recorder{}
	env.AddCustomEventListener(a)
	env.AddCustomEventListener(a)
	env.AddCustomEventListener(b)
	if got := env.ListenerCount(); got != 2 {
		t.Fatalf("ListenerCount = %d, want 2", got)
	}

	env.Post(Event{Type: TypeClose})
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("a=%d b=%d, want one each", len(a.events), len(b.events))
	}

	env.RemoveCustomEventListener(a)
	env.RemoveCustomEventListener(a)
	env.Post(Event{Type: TypeFocusLost})
	if len(a.events) != 1 || len(b.events) != 2 {
		t.Errorf("after removal a=%d b=%d, want 1 and 2", len(a.events), len(b.events))
	}
}

type removingListener struct {
	env    *Environment
	target CustomEventListener
}

func (r *removingListener) CustomEvent(Event) {
	r.env.RemoveCustomEventListener(r.target)
}

func TestEnvironmentRemoveDuringPost(t *testing.T) {
	env := NewEnvironment()
	victim := &recorder{}
	env.AddCustomEventListener(&removingListener{env: env, target: victim})
	env.AddCustomEventListener(victim)

	env.Post(Event{Type: TypeClose})
	if len(victim.events) != 0 {
		t.Errorf("listener removed mid-post still received %d events", len(victim.events))
	}
}

func TestEnvironmentListen(t *testing.T) {
	env := NewEnvironment()
	n := 0
	off := env.Listen(func(Event) { n++ })
	env.Post(Event{Type: TypeClose})
	off()
	env.Post(Event{Type: TypeClose})
	if n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestBind(t *testing.T) {
	platform.SetupTestBridge(t.Cleanup)
	h := errors.Capture(t.Cleanup)

	ch := platform.NewEventChannel("test/bind")
	env := NewEnvironment()
	rec := &recorder{}
	env.AddCustomEventListener(rec)
	unbind := env.Bind(ch)

	if err := platform.HandleEvent("test/bind", []byte(`{"type":"widget","widget":{"handle":1,"kind":"clicked"}}`)); err != nil {
		t.Fatal(err)
	}
	if err := platform.HandleEvent("test/bind", []byte(`garbage`)); err != nil {
		t.Fatal(err)
	}
	unbind()
	if err := platform.HandleEvent("test/bind", []byte(`{"type":"close"}`)); err != nil {
		t.Fatal(err)
	}

	if len(rec.events) != 1 || rec.events[0].Widget.Kind != WidgetEventClicked {
		t.Errorf("events = %+v, want one click", rec.events)
	}
	if errs := h.Errors(); len(errs) != 1 || errs[0].Kind != errors.KindParsing {
		t.Errorf("reported = %+v, want one parsing error", errs)
	}
}

func TestDefaultEnvironment(t *testing.T) {
	platform.SetupTestBridge(t.Cleanup)
	ResetDefaultForTest()
	t.Cleanup(ResetDefaultForTest)

	env := DefaultEnvironment()
	if env != DefaultEnvironment() {
		t.Fatal("DefaultEnvironment should return the same instance")
	}
	rec := &recorder{}
	env.AddCustomEventListener(rec)

	if err := platform.HandleEvent(EventsChannel, []byte(`{"type":"key_pressed","key":13}`)); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 1 || rec.events[0].KeyCode != 13 {
		t.Errorf("events = %+v", rec.events)
	}
}
