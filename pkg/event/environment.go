package event

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/nativeui/pkg/platform"
)

// CustomEventListener receives every event posted to a Source.
// Implementations passed to AddCustomEventListener must be comparable
// (typically pointers) so they can be removed again.
type CustomEventListener interface {
	CustomEvent(ev Event)
}

// Source is the subscribe/unsubscribe half of the host event stream.
type Source interface {
	AddCustomEventListener(l CustomEventListener)
	RemoveCustomEventListener(l CustomEventListener)
}

type listenerEntry struct {
	listener CustomEventListener
	removed  atomic.Bool
}

// Environment is the process-side end of the host event stream. Post calls
// each listener once per event, in registration order, before returning.
type Environment struct {
	mu      sync.Mutex
	entries []*listenerEntry
}

// NewEnvironment creates an Environment with no listeners and no host
// binding.
func NewEnvironment() *Environment {
	return &Environment{}
}

// AddCustomEventListener subscribes l. Adding the same listener twice has
// no effect.
func (e *Environment) AddCustomEventListener(l CustomEventListener) {
	if l == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, en := range e.entries {
		if en.listener == l {
			return
		}
	}
	e.entries = append(e.entries, &listenerEntry{listener: l})
}

// RemoveCustomEventListener unsubscribes l. A listener removed while an
// event is being posted does not receive that event if it has not been
// called yet.
func (e *Environment) RemoveCustomEventListener(l CustomEventListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, en := range e.entries {
		if en.listener == l {
			en.removed.Store(true)
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return
		}
	}
}

type funcListener struct {
	fn func(Event)
}

func (f *funcListener) CustomEvent(ev Event) { f.fn(ev) }

// Listen subscribes fn and returns a function that unsubscribes it.
func (e *Environment) Listen(fn func(Event)) (unsubscribe func()) {
	l := &funcListener{fn: fn}
	e.AddCustomEventListener(l)
	return func() { e.RemoveCustomEventListener(l) }
}

// ListenerCount returns the number of subscribed listeners.
func (e *Environment) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}

// Post delivers ev to every listener synchronously.
func (e *Environment) Post(ev Event) {
	e.mu.Lock()
	entries := make([]*listenerEntry, len(e.entries))
	copy(entries, e.entries)
	e.mu.Unlock()

	for _, en := range entries {
		if en.removed.Load() {
			continue
		}
		en.listener.CustomEvent(ev)
	}
}

// EventsChannel is the name of the host channel carrying the generic event
// stream.
const EventsChannel = "nativeui/events"

var (
	hostEvents = platform.NewEventChannel(EventsChannel)

	defaultMu  sync.Mutex
	defaultEnv *Environment
	defaultOff func()
)

// HostEvents returns the platform channel the host emits events on.
func HostEvents() *platform.EventChannel {
	return hostEvents
}

// DefaultEnvironment returns the process-wide Environment, creating it and
// binding it to HostEvents on first use.
func DefaultEnvironment() *Environment {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultEnv == nil {
		defaultEnv = NewEnvironment()
		defaultOff = defaultEnv.Bind(hostEvents)
	}
	return defaultEnv
}

// ResetDefaultForTest unbinds and discards the process-wide Environment.
// This should only be called from tests.
func ResetDefaultForTest() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultOff != nil {
		defaultOff()
	}
	defaultEnv = nil
	defaultOff = nil
}
