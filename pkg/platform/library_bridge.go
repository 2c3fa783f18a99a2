//go:build darwin || linux

package platform

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// LibraryBridge is a NativeBridge backed by a host shared library loaded
// with purego. The library must export:
//
//	char*   nativeui_invoke_method(const char* channel, const char* method, const char* args);
//	void    nativeui_free(char* p);
//	int32_t nativeui_start_event_stream(const char* channel);
//	int32_t nativeui_stop_event_stream(const char* channel);
//	void    nativeui_set_event_callback(void (*cb)(const char* channel, const uint8_t* data, uintptr_t len));
//
// nativeui_invoke_method returns a JSON envelope, either {"result": ...} or
// {"error": {"code": "...", "message": "..."}}.
type LibraryBridge struct {
	path   string
	handle uintptr

	invoke   func(channel, method, args string) uintptr
	free     func(p uintptr)
	start    func(channel string) int32
	stop     func(channel string) int32
	setEvent func(cb uintptr)
}

var (
	eventCallbackOnce sync.Once
	eventCallback     uintptr
)

// OpenLibraryBridge loads the host library at path and resolves its symbols.
func OpenLibraryBridge(path string) (b *LibraryBridge, err error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("%w: dlopen %s: %v", ErrNotConnected, path, err)
	}

	// RegisterLibFunc panics on a missing symbol.
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = fmt.Errorf("%w: %s: %v", ErrNotConnected, path, r)
		}
	}()

	b = &LibraryBridge{path: path, handle: handle}
	purego.RegisterLibFunc(&b.invoke, handle, "nativeui_invoke_method")
	purego.RegisterLibFunc(&b.free, handle, "nativeui_free")
	purego.RegisterLibFunc(&b.start, handle, "nativeui_start_event_stream")
	purego.RegisterLibFunc(&b.stop, handle, "nativeui_stop_event_stream")
	purego.RegisterLibFunc(&b.setEvent, handle, "nativeui_set_event_callback")

	eventCallbackOnce.Do(func() {
		eventCallback = purego.NewCallback(onNativeEvent)
	})
	b.setEvent(eventCallback)
	return b, nil
}

// Path returns the library path the bridge was opened from.
func (b *LibraryBridge) Path() string {
	return b.path
}

// InvokeMethod calls nativeui_invoke_method and unwraps its envelope.
func (b *LibraryBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	p := b.invoke(channel, method, string(args))
	if p == 0 {
		return nil, nil
	}
	reply := cString(p)
	b.free(p)
	return unwrapEnvelope([]byte(reply))
}

// StartEventStream calls nativeui_start_event_stream.
func (b *LibraryBridge) StartEventStream(channel string) error {
	if rc := b.start(channel); rc != 0 {
		return fmt.Errorf("start event stream %s: host returned %d", channel, rc)
	}
	return nil
}

// StopEventStream calls nativeui_stop_event_stream.
func (b *LibraryBridge) StopEventStream(channel string) error {
	if rc := b.stop(channel); rc != 0 {
		return fmt.Errorf("stop event stream %s: host returned %d", channel, rc)
	}
	return nil
}

// onNativeEvent runs on whichever thread the host emits from. The payload is
// copied before returning so the host may reuse its buffer.
func onNativeEvent(channel, data, length uintptr) {
	name := cString(channel)
	payload := make([]byte, length)
	if length > 0 {
		copy(payload, unsafe.Slice((*byte)(unsafe.Pointer(data)), length))
	}
	DispatchOrRun(func() {
		_ = HandleEvent(name, payload)
	})
}

func cString(p uintptr) string {
	if p == 0 {
		return ""
	}
	ptr := (*byte)(unsafe.Pointer(p))
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(ptr), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(ptr, n))
}
