// Package errors provides structured error handling for nativeui.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPlatform indicates a platform channel or native bridge error.
	KindPlatform
	// KindParsing indicates a host event could not be decoded.
	KindParsing
	// KindCapability indicates the host lacks a native capability entirely.
	KindCapability
	// KindRegistration indicates a suspicious widget registration, such as
	// overwriting a handle that was never unregistered.
	KindRegistration
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPlatform:
		return "platform"
	case KindParsing:
		return "parsing"
	case KindCapability:
		return "capability"
	case KindRegistration:
		return "registration"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured, non-fatal error reported by nativeui.
type Error struct {
	// Op is the operation that failed (e.g., "event.Bind").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Channel is the platform channel name, if applicable.
	Channel string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("%s [%s] channel=%s: %v", e.Op, e.Kind, e.Channel, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrCapabilityUnsupported matches every CapabilityError via errors.Is.
var ErrCapabilityUnsupported = stderrors.New("native capability not supported on this platform")

// CapabilityError is returned when the host hands out the "unsupported"
// sentinel instead of a real handle. It is never retryable.
type CapabilityError struct {
	// Feature names the missing capability (e.g., "Native UI").
	Feature string
	// Handle is the sentinel value the host returned.
	Handle int64
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("This application uses %s, which is not supported on the current platform. "+
		"Please select another target profile (handle %d).", e.Feature, e.Handle)
}

func (e *CapabilityError) Is(target error) bool {
	return target == ErrCapabilityUnsupported
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "replay.step").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by nativeui.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
