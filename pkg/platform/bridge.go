package platform

import (
	"fmt"
	"sync"

	"github.com/go-drift/nativeui/pkg/errors"
)

// NativeBridge is the Go side's view of the native host. LibraryBridge talks
// to a host shared library; LocalBridge hosts in-process.
type NativeBridge interface {
	// InvokeMethod performs a syscall. args and the result are encoded
	// with DefaultCodec.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)

	// StartEventStream asks the host to begin sending events on channel.
	StartEventStream(channel string) error

	// StopEventStream asks the host to stop sending events on channel.
	StopEventStream(channel string) error
}

var (
	bridgeMu sync.RWMutex
	bridge   NativeBridge
)

func currentBridge() NativeBridge {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return bridge
}

// SetNativeBridge installs the host bridge. Channels that gained
// subscribers while no bridge was installed have their streams started
// now; a start failure goes to those subscribers' OnError.
func SetNativeBridge(b NativeBridge) {
	bridgeMu.Lock()
	bridge = b
	bridgeMu.Unlock()
	if b == nil {
		return
	}
	for _, ch := range eventChannels.all() {
		if err := ch.ensureStream(); err != nil {
			ch.fail(err)
		}
	}
}

func invokeNative(channel, method string, args any) (any, error) {
	b := currentBridge()
	if b == nil {
		return nil, ErrPlatformUnavailable
	}
	argsData, err := DefaultCodec.Encode(args)
	if err != nil {
		return nil, fmt.Errorf("%s %s: encode arguments: %w", channel, method, err)
	}
	reply, err := b.InvokeMethod(channel, method, argsData)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Decode(reply)
}

func startEventStream(channel string) error {
	b := currentBridge()
	if b == nil {
		return ErrPlatformUnavailable
	}
	if err := b.StartEventStream(channel); err != nil {
		reportStreamError("platform.startEventStream", channel, err)
		return err
	}
	return nil
}

func stopEventStream(channel string) error {
	b := currentBridge()
	if b == nil {
		// The host is already gone.
		return ErrClosed
	}
	if err := b.StopEventStream(channel); err != nil {
		reportStreamError("platform.stopEventStream", channel, err)
		return err
	}
	return nil
}

func reportStreamError(op, channel string, err error) {
	errors.Report(&errors.Error{Op: op, Kind: errors.KindPlatform, Channel: channel, Err: err})
}

// ErrChannelNotRegistered is returned by the Handle functions for events on
// a channel no EventChannel was created for.
var ErrChannelNotRegistered = fmt.Errorf("platform: event channel not registered")

func eventChannel(op, channel string) (*EventChannel, error) {
	ch, ok := eventChannels.get(channel)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrChannelNotRegistered, channel)
		reportStreamError(op, channel, err)
		return nil, err
	}
	return ch, nil
}

// HandleMethodCall is the bridge entry point for calls the host makes into
// Go. It decodes args, runs the channel's handler and encodes the result.
func HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	ch, ok := methodChannels.get(channel)
	if !ok {
		return nil, ErrChannelNotFound
	}
	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}
	res, err := ch.serve(method, args)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Encode(res)
}

// HandleEvent is the bridge entry point for one host event. The payload
// reaches every subscriber before HandleEvent returns.
func HandleEvent(channel string, data []byte) error {
	ch, err := eventChannel("platform.HandleEvent", channel)
	if err != nil {
		return err
	}
	ch.deliver(data)
	return nil
}

// HandleEventError is the bridge entry point for a host stream error.
func HandleEventError(channel, code, message string) error {
	ch, err := eventChannel("platform.HandleEventError", channel)
	if err != nil {
		return err
	}
	ch.fail(NewChannelError(code, message))
	return nil
}

// HandleEventDone is the bridge entry point for the end of a host stream.
func HandleEventDone(channel string) error {
	ch, err := eventChannel("platform.HandleEventDone", channel)
	if err != nil {
		return err
	}
	ch.finish()
	return nil
}
