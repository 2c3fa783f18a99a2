package nativeui

import (
	"sync"

	"github.com/go-drift/nativeui/pkg/event"
)

var (
	instanceMu sync.Mutex
	instance   *WidgetManager
)

// GetInstance returns the process-wide WidgetManager, creating it on first
// call and subscribing it to event.DefaultEnvironment.
func GetInstance() *WidgetManager {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	if instance == nil {
		instance = New(event.DefaultEnvironment())
	}
	return instance
}

// DestroyInstance closes and releases the process-wide WidgetManager. Call
// it once at shutdown, after every widget has unregistered. It is a no-op
// when no instance exists.
func DestroyInstance() {
	instanceMu.Lock()
	m := instance
	instance = nil
	instanceMu.Unlock()

	if m != nil {
		m.Close()
	}
}
