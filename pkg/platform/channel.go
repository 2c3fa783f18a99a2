package platform

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
)

// MethodHandler serves a method call the host makes into Go.
type MethodHandler func(method string, args any) (any, error)

// MethodChannel is a named syscall endpoint. Go invokes host methods on it;
// with a handler set, the host can invoke Go methods on it too.
type MethodChannel struct {
	name string

	mu      sync.RWMutex
	handler MethodHandler
}

// NewMethodChannel creates and registers a method channel. A later channel
// with the same name takes over incoming calls.
func NewMethodChannel(name string) *MethodChannel {
	c := &MethodChannel{name: name}
	methodChannels.put(name, c)
	return c
}

// Name returns the channel name.
func (c *MethodChannel) Name() string {
	return c.name
}

// SetHandler sets the handler for calls the host makes on this channel.
func (c *MethodChannel) SetHandler(handler MethodHandler) {
	c.mu.Lock()
	c.handler = handler
	c.mu.Unlock()
}

// Invoke performs a syscall and returns the host's decoded result. It
// blocks until the host replies.
func (c *MethodChannel) Invoke(method string, args any) (any, error) {
	return invokeNative(c.name, method, args)
}

// InvokeHandle performs a syscall whose result is a native handle, such as
// a create call. The unsupported sentinel is returned as is.
func (c *MethodChannel) InvokeHandle(method string, args any) (int64, error) {
	res, err := c.Invoke(method, args)
	if err != nil {
		return 0, err
	}
	h, ok := ToInt64(res)
	if !ok {
		return 0, fmt.Errorf("%s %s: %w: want a handle, got %T", c.name, method, ErrInvalidArguments, res)
	}
	return h, nil
}

// InvokeString performs a syscall whose result is text. A null result is
// the empty string; numbers and booleans are formatted.
func (c *MethodChannel) InvokeString(method string, args any) (string, error) {
	res, err := c.Invoke(method, args)
	if err != nil {
		return "", err
	}
	switch v := res.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool, float64, int64, int:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("%s %s: %w: want text, got %T", c.name, method, ErrInvalidArguments, res)
}

func (c *MethodChannel) serve(method string, args any) (any, error) {
	c.mu.RLock()
	h := c.handler
	c.mu.RUnlock()
	if h == nil {
		return nil, ErrMethodNotFound
	}
	return h(method, args)
}

// EventHandler receives what the host sends on an EventChannel. Nil
// callbacks are skipped.
type EventHandler struct {
	OnEvent func(data []byte)
	OnError func(err error)
	OnDone  func()
}

// Subscription is one listener on an EventChannel.
type Subscription struct {
	ch       *EventChannel
	handler  EventHandler
	canceled atomic.Bool
}

// Cancel detaches the subscription. Canceling twice is harmless; when the
// last subscription goes the host is asked to stop streaming.
func (s *Subscription) Cancel() {
	if s.canceled.CompareAndSwap(false, true) {
		s.ch.unsubscribe(s)
	}
}

// IsCanceled reports whether Cancel was called or the stream ended.
func (s *Subscription) IsCanceled() bool {
	return s.canceled.Load()
}

// EventChannel is a named stream of host events. Payloads reach
// subscribers undecoded; interpreting them is the subscriber's job.
//
// The host streams only while the channel has subscribers. The first
// Listen starts the stream, or SetNativeBridge does if no bridge was
// installed yet; the last Cancel stops it.
type EventChannel struct {
	name string

	mu        sync.Mutex
	subs      []*Subscription
	streaming bool
}

// NewEventChannel creates and registers an event channel. A later channel
// with the same name takes over the host's events.
func NewEventChannel(name string) *EventChannel {
	c := &EventChannel{name: name}
	eventChannels.put(name, c)
	return c
}

// Name returns the channel name.
func (c *EventChannel) Name() string {
	return c.name
}

// Listen subscribes handler. If the host refuses to start the stream the
// failure goes to handler.OnError and the subscription stays registered,
// so a later SetNativeBridge can start it.
func (c *EventChannel) Listen(handler EventHandler) *Subscription {
	sub := &Subscription{ch: c, handler: handler}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	if err := c.ensureStream(); err != nil && handler.OnError != nil {
		handler.OnError(err)
	}
	return sub
}

// ensureStream starts the host stream when there are subscribers, a bridge
// and no stream yet.
func (c *EventChannel) ensureStream() error {
	if currentBridge() == nil {
		return nil
	}
	c.mu.Lock()
	if c.streaming || len(c.subs) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.streaming = true
	c.mu.Unlock()

	if err := startEventStream(c.name); err != nil {
		c.mu.Lock()
		c.streaming = false
		c.mu.Unlock()
		return err
	}
	return nil
}

func (c *EventChannel) unsubscribe(sub *Subscription) {
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			break
		}
	}
	stop := c.streaming && len(c.subs) == 0
	if stop {
		c.streaming = false
	}
	c.mu.Unlock()

	if stop {
		_ = stopEventStream(c.name)
	}
}

// active returns the live subscriptions at this moment. Subscriptions
// canceled while delivery is under way are skipped by the callers.
func (c *EventChannel) active() []*Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Subscription(nil), c.subs...)
}

func (c *EventChannel) deliver(data []byte) {
	for _, s := range c.active() {
		if !s.IsCanceled() && s.handler.OnEvent != nil {
			s.handler.OnEvent(data)
		}
	}
}

func (c *EventChannel) fail(err error) {
	for _, s := range c.active() {
		if !s.IsCanceled() && s.handler.OnError != nil {
			s.handler.OnError(err)
		}
	}
}

// finish ends the stream from the host side: every subscription is
// canceled and told it is done.
func (c *EventChannel) finish() {
	subs := c.detachAll()
	for _, s := range subs {
		if s.handler.OnDone != nil {
			s.handler.OnDone()
		}
	}
}

// detachAll cancels every subscription without asking the host to stop.
func (c *EventChannel) detachAll() []*Subscription {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.streaming = false
	c.mu.Unlock()
	for _, s := range subs {
		s.canceled.Store(true)
	}
	return subs
}
