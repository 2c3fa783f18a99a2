package platform

import "errors"

var (
	// ErrChannelNotFound is returned when the host calls a method channel
	// Go never created.
	ErrChannelNotFound = errors.New("platform: method channel not found")

	// ErrMethodNotFound is returned by a channel or host that does not
	// implement the requested syscall.
	ErrMethodNotFound = errors.New("platform: method not implemented")

	// ErrInvalidArguments is returned for syscall arguments or results of
	// the wrong shape.
	ErrInvalidArguments = errors.New("platform: invalid arguments")

	// ErrPlatformUnavailable is returned for syscalls made before a host
	// bridge is installed.
	ErrPlatformUnavailable = errors.New("platform: no host bridge")

	// ErrClosed is returned when stopping a stream whose host is gone.
	ErrClosed = errors.New("platform: host closed")

	// ErrNotConnected is returned when the host library could not be loaded.
	ErrNotConnected = errors.New("platform: host library not connected")

	// ErrMalformedReply is returned for host replies that are not JSON.
	ErrMalformedReply = errors.New("platform: malformed host reply")

	// ErrTrailingData is returned when a payload holds more than one value.
	ErrTrailingData = errors.New("platform: trailing data after payload")
)

// ChannelError is an error raised by the host while serving a syscall or
// streaming events.
type ChannelError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *ChannelError) Error() string {
	if e.Message == "" {
		return "host error " + e.Code
	}
	return "host error " + e.Code + ": " + e.Message
}

// NewChannelError creates a ChannelError.
func NewChannelError(code, message string) *ChannelError {
	return &ChannelError{Code: code, Message: message}
}
