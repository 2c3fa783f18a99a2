package widget

import (
	"sync"

	"github.com/go-drift/nativeui/pkg/event"
)

// ButtonListener is notified when a button is clicked.
type ButtonListener interface {
	ButtonClicked(b *Button)
}

// Button is a native push button.
type Button struct {
	base
	buttonListeners []ButtonListener
	bmu             sync.RWMutex
}

// NewButton creates a native button.
func (tk *Toolkit) NewButton() (*Button, error) {
	b := &Button{}
	if err := b.init(tk, TypeButton, b); err != nil {
		return nil, err
	}
	return b, nil
}

// SetText sets the button caption.
func (b *Button) SetText(text string) error {
	return b.SetProperty(PropertyText, text)
}

// AddButtonListener subscribes l to clicks.
func (b *Button) AddButtonListener(l ButtonListener) {
	b.bmu.Lock()
	b.buttonListeners = append(b.buttonListeners, l)
	b.bmu.Unlock()
}

// HandleWidgetEvent turns click events into ButtonClicked calls.
func (b *Button) HandleWidgetEvent(data *event.WidgetEventData) {
	b.base.HandleWidgetEvent(data)
	if data.Kind != event.WidgetEventClicked {
		return
	}
	b.bmu.RLock()
	ls := make([]ButtonListener, len(b.buttonListeners))
	copy(ls, b.buttonListeners)
	b.bmu.RUnlock()
	for _, l := range ls {
		l.ButtonClicked(b)
	}
}
