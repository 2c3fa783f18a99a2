// Package event models the host's generic event stream.
//
// The host delivers every UI and service notification as one Event tagged
// with a Type. Widget events carry a WidgetEventData naming the native
// widget Handle they concern; purchase events carry a PurchaseEventData.
// An Environment fans each Event out to its CustomEventListeners
// synchronously, on the goroutine that posted it.
package event

// Handle is an opaque identifier the host assigns to a native object such
// as a widget. It is unique while the native object is alive and may be
// reused afterwards.
type Handle int64

// UnsupportedHandle is what the host returns instead of a handle when the
// requested native capability does not exist on this platform.
const UnsupportedHandle Handle = -1

// Type is the category tag of an Event.
type Type int

const (
	TypeUnknown Type = iota
	TypeWidget
	TypePurchase
	TypeKeyPressed
	TypePointerPressed
	TypeFocusGained
	TypeFocusLost
	TypeClose
)

var typeNames = map[Type]string{
	TypeWidget:         "widget",
	TypePurchase:       "purchase",
	TypeKeyPressed:     "key_pressed",
	TypePointerPressed: "pointer_pressed",
	TypeFocusGained:    "focus_gained",
	TypeFocusLost:      "focus_lost",
	TypeClose:          "close",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType maps a wire name to its Type.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return TypeUnknown, false
}

// WidgetEventKind says what happened to a widget.
type WidgetEventKind int

const (
	WidgetEventUnknown WidgetEventKind = iota
	WidgetEventClicked
	WidgetEventPointerPressed
	WidgetEventPointerReleased
	WidgetEventSliderValueChanged
	WidgetEventItemClicked
	WidgetEventTabChanged
	WidgetEventStackScreenPopped
	WidgetEventEditBoxTextChanged
	WidgetEventEditBoxReturn
	WidgetEventCheckBoxStateChanged
)

var widgetEventKindNames = map[WidgetEventKind]string{
	WidgetEventClicked:              "clicked",
	WidgetEventPointerPressed:       "pointer_pressed",
	WidgetEventPointerReleased:      "pointer_released",
	WidgetEventSliderValueChanged:   "slider_value_changed",
	WidgetEventItemClicked:          "item_clicked",
	WidgetEventTabChanged:           "tab_changed",
	WidgetEventStackScreenPopped:    "stack_screen_popped",
	WidgetEventEditBoxTextChanged:   "edit_box_text_changed",
	WidgetEventEditBoxReturn:        "edit_box_return",
	WidgetEventCheckBoxStateChanged: "check_box_state_changed",
}

func (k WidgetEventKind) String() string {
	if name, ok := widgetEventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseWidgetEventKind maps a wire name to its kind. Unrecognised names
// yield WidgetEventUnknown so newer hosts still reach the widget.
func ParseWidgetEventKind(name string) WidgetEventKind {
	for k, n := range widgetEventKindNames {
		if n == name {
			return k
		}
	}
	return WidgetEventUnknown
}

// WidgetEventData is the payload of a TypeWidget event.
type WidgetEventData struct {
	Handle Handle
	Kind   WidgetEventKind
	// Value is the new slider position or tab index.
	Value int
	// ItemIndex is the list item that was clicked.
	ItemIndex int
	// Checked is the new check box state.
	Checked bool
	// Text is the edit box contents.
	Text string
}

// PurchaseEventData is the payload of a TypePurchase event.
type PurchaseEventData struct {
	Handle    Handle
	State     int
	ErrorCode int
	ProductID string
}

// Event is one notification from the host.
type Event struct {
	Type     Type
	Widget   *WidgetEventData
	Purchase *PurchaseEventData

	// KeyCode is set for TypeKeyPressed.
	KeyCode int
	// X and Y are set for TypePointerPressed.
	X, Y int
}

// NewWidgetEvent builds a TypeWidget event.
func NewWidgetEvent(data WidgetEventData) Event {
	return Event{Type: TypeWidget, Widget: &data}
}

// NewPurchaseEvent builds a TypePurchase event.
func NewPurchaseEvent(data PurchaseEventData) Event {
	return Event{Type: TypePurchase, Purchase: &data}
}
