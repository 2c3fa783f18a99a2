package event

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	// ErrMalformed is returned for payloads that are not valid event JSON.
	ErrMalformed = stderrors.New("event: malformed payload")

	// ErrUnknownType is returned for payloads with an unrecognised type tag.
	ErrUnknownType = stderrors.New("event: unknown type")
)

// Decode parses one host event.
//
//	{"type":"widget","widget":{"handle":42,"kind":"clicked"}}
//	{"type":"purchase","purchase":{"handle":3,"state":2,"productId":"gold"}}
func Decode(data []byte) (Event, error) {
	if !gjson.ValidBytes(data) {
		return Event{}, ErrMalformed
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Event{}, ErrMalformed
	}

	name := root.Get("type").String()
	t, ok := ParseType(name)
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	ev := Event{Type: t}
	switch t {
	case TypeWidget:
		w := root.Get("widget")
		h, err := decodeHandle(w.Get("handle"))
		if err != nil {
			return Event{}, fmt.Errorf("widget event: %w", err)
		}
		ev.Widget = &WidgetEventData{
			Handle:    h,
			Kind:      ParseWidgetEventKind(w.Get("kind").String()),
			Value:     int(w.Get("value").Int()),
			ItemIndex: int(w.Get("itemIndex").Int()),
			Checked:   w.Get("checked").Bool(),
			Text:      w.Get("text").String(),
		}
	case TypePurchase:
		p := root.Get("purchase")
		h, err := decodeHandle(p.Get("handle"))
		if err != nil {
			return Event{}, fmt.Errorf("purchase event: %w", err)
		}
		ev.Purchase = &PurchaseEventData{
			Handle:    h,
			State:     int(p.Get("state").Int()),
			ErrorCode: int(p.Get("errorCode").Int()),
			ProductID: p.Get("productId").String(),
		}
	case TypeKeyPressed:
		ev.KeyCode = int(root.Get("key").Int())
	case TypePointerPressed:
		ev.X = int(root.Get("x").Int())
		ev.Y = int(root.Get("y").Int())
	}
	return ev, nil
}

// decodeHandle accepts only integral JSON numbers that fit in 64 bits.
func decodeHandle(v gjson.Result) (Handle, error) {
	if !v.Exists() {
		return 0, fmt.Errorf("%w: missing handle", ErrMalformed)
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%w: handle %s is not a number", ErrMalformed, v.Raw)
	}
	n, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: handle %s is not an integer", ErrMalformed, v.Raw)
	}
	return Handle(n), nil
}

// Encode produces the host wire form of ev. It is the inverse of Decode and
// is used by in-process hosts and replay drivers.
func Encode(ev Event) ([]byte, error) {
	if _, ok := typeNames[ev.Type]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, ev.Type)
	}

	b := &builder{out: []byte(`{}`)}
	b.set("type", ev.Type.String())
	switch ev.Type {
	case TypeWidget:
		if ev.Widget == nil {
			return nil, fmt.Errorf("%w: widget event without payload", ErrMalformed)
		}
		w := ev.Widget
		b.set("widget.handle", int64(w.Handle))
		b.set("widget.kind", w.Kind.String())
		if w.Value != 0 {
			b.set("widget.value", w.Value)
		}
		if w.ItemIndex != 0 {
			b.set("widget.itemIndex", w.ItemIndex)
		}
		if w.Checked {
			b.set("widget.checked", true)
		}
		if w.Text != "" {
			b.set("widget.text", w.Text)
		}
	case TypePurchase:
		if ev.Purchase == nil {
			return nil, fmt.Errorf("%w: purchase event without payload", ErrMalformed)
		}
		p := ev.Purchase
		b.set("purchase.handle", int64(p.Handle))
		b.set("purchase.state", p.State)
		if p.ErrorCode != 0 {
			b.set("purchase.errorCode", p.ErrorCode)
		}
		if p.ProductID != "" {
			b.set("purchase.productId", p.ProductID)
		}
	case TypeKeyPressed:
		b.set("key", ev.KeyCode)
	case TypePointerPressed:
		b.set("x", ev.X)
		b.set("y", ev.Y)
	}
	return b.out, b.err
}

type builder struct {
	out []byte
	err error
}

func (b *builder) set(path string, value any) {
	if b.err != nil {
		return
	}
	b.out, b.err = sjson.SetBytes(b.out, path, value)
}
