package nativeui

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/go-drift/nativeui/pkg/errors"
	"github.com/go-drift/nativeui/pkg/event"
	"github.com/go-drift/nativeui/pkg/platform"
)

// Widget interprets the events of one native widget.
type Widget interface {
	HandleWidgetEvent(data *event.WidgetEventData)
}

// WidgetFunc adapts a function to the Widget interface.
type WidgetFunc func(data *event.WidgetEventData)

// HandleWidgetEvent calls f(data).
func (f WidgetFunc) HandleWidgetEvent(data *event.WidgetEventData) {
	f(data)
}

var (
	// ErrNilWidget is returned when registering a nil Widget.
	ErrNilWidget = stderrors.New("nativeui: nil widget")

	// ErrClosed is returned when registering with a closed manager.
	ErrClosed = stderrors.New("nativeui: widget manager closed")

	// ErrHandleReplaced is reported in strict mode when a handle is
	// registered again without being unregistered first.
	ErrHandleReplaced = stderrors.New("nativeui: handle registered twice")
)

// nativeUIFeature names the capability in unsupported-handle diagnostics.
const nativeUIFeature = "Native UI"

// WidgetManager is the single router from host widget events to Widgets.
// The table holds non-owning references: the manager never creates or
// destroys a Widget, and callers must unregister a handle before the Widget
// or the native handle goes away.
type WidgetManager struct {
	widgets map[event.Handle]Widget
	source  event.Source
	closed  bool
	strict  bool
	abort   func(message string)
	mu      sync.RWMutex
}

// Option configures a WidgetManager.
type Option func(*WidgetManager)

// WithStrict reports re-registration of a live handle through
// errors.Report. The new registration still replaces the old one.
func WithStrict(strict bool) Option {
	return func(m *WidgetManager) {
		m.strict = strict
	}
}

// WithAbort replaces the fatal-abort primitive used by MustRegisterWidget.
// The default is platform.Panic.
func WithAbort(fn func(message string)) Option {
	return func(m *WidgetManager) {
		if fn != nil {
			m.abort = fn
		}
	}
}

func defaultAbort(message string) {
	platform.Panic(0, message)
}

// New creates a WidgetManager listening on src. A nil src yields a manager
// that only receives events passed to CustomEvent directly.
func New(src event.Source, opts ...Option) *WidgetManager {
	m := &WidgetManager{
		widgets: make(map[event.Handle]Widget),
		source:  src,
		abort:   defaultAbort,
	}
	for _, opt := range opts {
		opt(m)
	}
	if src != nil {
		src.AddCustomEventListener(m)
	}
	return m
}

// Close unsubscribes from the event source and drops the table. Events
// arriving afterwards are ignored. Close is idempotent.
func (m *WidgetManager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.widgets = make(map[event.Handle]Widget)
	src := m.source
	m.mu.Unlock()

	if src != nil {
		src.RemoveCustomEventListener(m)
	}
}

// checkNativeUISupport rejects the host's "unsupported" sentinel.
func checkNativeUISupport(handle event.Handle) error {
	if handle == event.UnsupportedHandle {
		return &errors.CapabilityError{Feature: nativeUIFeature, Handle: int64(handle)}
	}
	return nil
}

// RegisterWidget routes events for handle to w, replacing any Widget already
// registered for it. Ownership of w stays with the caller.
//
// The unsupported sentinel is rejected with a *errors.CapabilityError and
// nothing is inserted.
func (m *WidgetManager) RegisterWidget(handle event.Handle, w Widget) error {
	if err := checkNativeUISupport(handle); err != nil {
		return err
	}
	if w == nil {
		return ErrNilWidget
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	_, replaced := m.widgets[handle]
	m.widgets[handle] = w
	strict := m.strict
	m.mu.Unlock()

	if replaced && strict {
		errors.Report(&errors.Error{
			Op:   "nativeui.RegisterWidget",
			Kind: errors.KindRegistration,
			Err:  fmt.Errorf("%w: %d", ErrHandleReplaced, handle),
		})
	}
	return nil
}

// MustRegisterWidget is RegisterWidget for callers that cannot continue
// without native UI. On the unsupported sentinel it invokes the abort
// primitive with the diagnostic; any other failure panics.
func (m *WidgetManager) MustRegisterWidget(handle event.Handle, w Widget) {
	err := m.RegisterWidget(handle, w)
	if err == nil {
		return
	}
	if stderrors.Is(err, errors.ErrCapabilityUnsupported) {
		m.mu.RLock()
		abort := m.abort
		m.mu.RUnlock()
		abort(err.Error())
		return
	}
	panic(err)
}

// UnregisterWidget stops routing events for handle. Unknown handles are
// ignored, so it is safe to call twice or from inside the Widget's own
// HandleWidgetEvent.
func (m *WidgetManager) UnregisterWidget(handle event.Handle) {
	m.mu.Lock()
	delete(m.widgets, handle)
	m.mu.Unlock()
}

// Lookup returns the Widget registered for handle.
func (m *WidgetManager) Lookup(handle event.Handle) (Widget, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.widgets[handle]
	return w, ok
}

// Len returns the number of registered handles.
func (m *WidgetManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.widgets)
}

// CustomEvent implements event.CustomEventListener. Non-widget events are
// left to other listeners; widget events for unregistered handles are
// dropped silently, which is normal while widgets are being torn down. The
// table lock is released before the Widget runs.
func (m *WidgetManager) CustomEvent(ev event.Event) {
	if ev.Type != event.TypeWidget || ev.Widget == nil {
		return
	}

	m.mu.RLock()
	w, ok := m.widgets[ev.Widget.Handle]
	m.mu.RUnlock()
	if !ok {
		return
	}
	w.HandleWidgetEvent(ev.Widget)
}
