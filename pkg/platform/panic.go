package platform

import "fmt"

var systemChannel = NewMethodChannel("nativeui/system")

// AbortError is the value Panic panics with.
type AbortError struct {
	Code    int
	Message string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("abort %d: %s", e.Code, e.Message)
}

// Panic is the fatal-abort primitive for unrecoverable configuration
// errors. The host is told first so it can surface the message to the
// developer, then the calling goroutine panics with an *AbortError.
func Panic(code int, message string) {
	if currentBridge() != nil {
		// The host may terminate the process inside this call.
		_, _ = systemChannel.Invoke("panic", map[string]any{
			"code":    code,
			"message": message,
		})
	}
	panic(&AbortError{Code: code, Message: message})
}
