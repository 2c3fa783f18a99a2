// Package widget provides thin Go facades over native widgets.
//
// Each facade owns one native widget handle. It is created through the
// host's widget syscalls, registered with a nativeui.WidgetManager so host
// events reach it, and unregistered again in Destroy before the host is
// asked to free the handle.
package widget

import (
	"fmt"
	"strconv"

	"github.com/go-drift/nativeui/pkg/event"
	"github.com/go-drift/nativeui/pkg/nativeui"
	"github.com/go-drift/nativeui/pkg/platform"
)

// Channel is the host method channel carrying widget syscalls.
const Channel = "nativeui/widgets"

// Native widget type names understood by the host's create syscall.
const (
	TypeScreen           = "Screen"
	TypeVerticalLayout   = "VerticalLayout"
	TypeHorizontalLayout = "HorizontalLayout"
	TypeButton           = "Button"
	TypeLabel            = "Label"
	TypeSlider           = "Slider"
	TypeImage            = "Image"
)

// Common property names.
const (
	PropertyText     = "text"
	PropertyWidth    = "width"
	PropertyHeight   = "height"
	PropertyAlpha    = "alpha"
	PropertyEnabled  = "enabled"
	PropertyValue    = "value"
	PropertyMaxValue = "maxValue"
	PropertyImage    = "image"
)

var widgetChannel = platform.NewMethodChannel(Channel)

// Toolkit creates widgets bound to one WidgetManager.
type Toolkit struct {
	manager *nativeui.WidgetManager
	channel *platform.MethodChannel
}

// NewToolkit returns a Toolkit registering its widgets with m.
func NewToolkit(m *nativeui.WidgetManager) *Toolkit {
	return &Toolkit{manager: m, channel: widgetChannel}
}

// Manager returns the WidgetManager widgets are registered with.
func (tk *Toolkit) Manager() *nativeui.WidgetManager {
	return tk.manager
}

// create asks the host for a native widget of the given type, then
// registers outer for its events. The unsupported sentinel surfaces as the
// manager's capability error.
func (tk *Toolkit) create(typ string, outer nativeui.Widget) (event.Handle, error) {
	n, err := tk.channel.InvokeHandle("create", map[string]any{"type": typ})
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", typ, err)
	}
	h := event.Handle(n)

	if err := tk.manager.RegisterWidget(h, outer); err != nil {
		if h != event.UnsupportedHandle {
			_ = tk.destroy(h)
		}
		return 0, err
	}
	return h, nil
}

func (tk *Toolkit) destroy(h event.Handle) error {
	_, err := tk.channel.Invoke("destroy", map[string]any{"handle": int64(h)})
	return err
}

func (tk *Toolkit) setProperty(h event.Handle, name, value string) error {
	_, err := tk.channel.Invoke("setProperty", map[string]any{
		"handle":   int64(h),
		"property": name,
		"value":    value,
	})
	return err
}

func (tk *Toolkit) getProperty(h event.Handle, name string) (string, error) {
	return tk.channel.InvokeString("getProperty", map[string]any{
		"handle":   int64(h),
		"property": name,
	})
}

func (tk *Toolkit) addChild(parent, child event.Handle) error {
	_, err := tk.channel.Invoke("addChild", map[string]any{
		"parent": int64(parent),
		"child":  int64(child),
	})
	return err
}

func (tk *Toolkit) showScreen(h event.Handle) error {
	_, err := tk.channel.Invoke("showScreen", map[string]any{"handle": int64(h)})
	return err
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
