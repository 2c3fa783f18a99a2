package widget

import (
	"strconv"
	"sync"

	"github.com/go-drift/nativeui/pkg/event"
)

// Widget is the facade side of a native widget.
type Widget interface {
	HandleWidgetEvent(data *event.WidgetEventData)
	Handle() event.Handle
	Destroy() error
}

// EventListener receives every raw event of the widgets it is added to.
type EventListener interface {
	HandleWidgetEvent(w Widget, data *event.WidgetEventData)
}

// base holds what every facade shares. outer is the concrete facade,
// handed to listeners so they see the Button or Slider rather than base.
type base struct {
	toolkit   *Toolkit
	handle    event.Handle
	outer     Widget
	listeners []EventListener
	destroyed bool
	mu        sync.RWMutex
}

func (b *base) init(tk *Toolkit, typ string, outer Widget) error {
	b.toolkit = tk
	b.outer = outer
	h, err := tk.create(typ, outer)
	if err != nil {
		return err
	}
	b.handle = h
	return nil
}

// Handle returns the native widget handle.
func (b *base) Handle() event.Handle {
	return b.handle
}

// AddEventListener subscribes l to this widget's raw events.
func (b *base) AddEventListener(l EventListener) {
	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
}

// RemoveEventListener unsubscribes l.
func (b *base) RemoveEventListener(l EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, x := range b.listeners {
		if x == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *base) notifyEventListeners(data *event.WidgetEventData) {
	b.mu.RLock()
	ls := make([]EventListener, len(b.listeners))
	copy(ls, b.listeners)
	b.mu.RUnlock()
	for _, l := range ls {
		l.HandleWidgetEvent(b.outer, data)
	}
}

// HandleWidgetEvent forwards data to the raw event listeners.
func (b *base) HandleWidgetEvent(data *event.WidgetEventData) {
	b.notifyEventListeners(data)
}

// SetProperty sets a native property by name.
func (b *base) SetProperty(name, value string) error {
	return b.toolkit.setProperty(b.handle, name, value)
}

// Property reads a native property by name.
func (b *base) Property(name string) (string, error) {
	return b.toolkit.getProperty(b.handle, name)
}

// SetSize sets the native width and height in pixels.
func (b *base) SetSize(width, height int) error {
	if err := b.SetProperty(PropertyWidth, itoa(width)); err != nil {
		return err
	}
	return b.SetProperty(PropertyHeight, itoa(height))
}

// SetAlpha sets the native transparency, 0 to 1.
func (b *base) SetAlpha(alpha float64) error {
	return b.SetProperty(PropertyAlpha, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// Alpha reads the native transparency.
func (b *base) Alpha() (float64, error) {
	s, err := b.Property(PropertyAlpha)
	if err != nil || s == "" {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

// SetEnabled enables or disables user interaction.
func (b *base) SetEnabled(enabled bool) error {
	return b.SetProperty(PropertyEnabled, strconv.FormatBool(enabled))
}

// Destroy unregisters the widget and then frees its native handle. Calling
// it again does nothing.
func (b *base) Destroy() error {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return nil
	}
	b.destroyed = true
	b.mu.Unlock()

	b.toolkit.manager.UnregisterWidget(b.handle)
	return b.toolkit.destroy(b.handle)
}
