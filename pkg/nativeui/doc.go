// Package nativeui routes host widget events to the Go objects that own the
// native widgets.
//
// The host identifies every native widget by an opaque event.Handle. A
// WidgetManager keeps the table from handle to Widget and listens on the
// host's generic event stream; for each widget event it looks up the handle
// and forwards the payload to that Widget, dropping events for handles that
// are not registered.
//
//	env := event.DefaultEnvironment()
//	mgr := nativeui.New(env)
//	defer mgr.Close()
//
//	if err := mgr.RegisterWidget(handle, button); err != nil {
//	    // errors.Is(err, errors.ErrCapabilityUnsupported): no native UI here.
//	}
//	defer mgr.UnregisterWidget(handle)
//
// GetInstance and DestroyInstance provide a lazily created process-wide
// manager bound to event.DefaultEnvironment for code that has no composition
// root to pass a manager through.
package nativeui
