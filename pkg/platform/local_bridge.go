package platform

import "sync"

// HostHandler answers a syscall on behalf of an in-process host.
type HostHandler func(channel, method string, args any) (any, error)

// LocalBridge is a NativeBridge whose host lives in the same process, such
// as a simulator or a replay driver. Syscalls are decoded and handed to
// Handler; event streams are tracked so the host knows which channels have
// listeners.
type LocalBridge struct {
	Handler HostHandler

	mu      sync.Mutex
	streams map[string]bool
}

// NewLocalBridge creates a LocalBridge answering syscalls with handler.
func NewLocalBridge(handler HostHandler) *LocalBridge {
	return &LocalBridge{
		Handler: handler,
		streams: make(map[string]bool),
	}
}

// InvokeMethod decodes args, calls Handler and encodes its result.
func (b *LocalBridge) InvokeMethod(channel, method string, argsData []byte) ([]byte, error) {
	if b.Handler == nil {
		return nil, ErrMethodNotFound
	}
	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}
	result, err := b.Handler(channel, method, args)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Encode(result)
}

// StartEventStream marks channel as listened to.
func (b *LocalBridge) StartEventStream(channel string) error {
	b.mu.Lock()
	if b.streams == nil {
		b.streams = make(map[string]bool)
	}
	b.streams[channel] = true
	b.mu.Unlock()
	return nil
}

// StopEventStream marks channel as no longer listened to.
func (b *LocalBridge) StopEventStream(channel string) error {
	b.mu.Lock()
	delete(b.streams, channel)
	b.mu.Unlock()
	return nil
}

// Streaming reports whether Go currently listens on channel.
func (b *LocalBridge) Streaming(channel string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.streams[channel]
}

// Emit delivers an event from the in-process host, as a native bridge would.
func (b *LocalBridge) Emit(channel string, payload []byte) error {
	return HandleEvent(channel, payload)
}
