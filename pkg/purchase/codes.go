// Package purchase exposes the host's in-app purchase syscalls and routes
// purchase events to the product that requested them.
package purchase

// Result codes for synchronous purchase syscalls.
const (
	ResultOK          = 0
	ResultUnavailable = -1
	ResultDisabled    = -2
)

// State is the lifecycle state reported by purchase events.
type State int

const (
	StateProductValid State = iota
	StateProductInvalid
	StateInProgress
	StateCompleted
	StateFailed
	StateRestored
	StateRefunded
	StateReceiptValid
	StateReceiptInvalid
	StateReceiptError
)

var stateNames = [...]string{
	StateProductValid:   "product_valid",
	StateProductInvalid: "product_invalid",
	StateInProgress:     "in_progress",
	StateCompleted:      "completed",
	StateFailed:         "failed",
	StateRestored:       "restored",
	StateRefunded:       "refunded",
	StateReceiptValid:   "receipt_valid",
	StateReceiptInvalid: "receipt_invalid",
	StateReceiptError:   "receipt_error",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Error codes carried by StateFailed events.
const (
	ErrorUnknown          = -1
	ErrorInvalidProduct   = -2
	ErrorConnectionFailed = -3
	ErrorCancelled        = -4
	ErrorAlreadyOwned     = -5
	ErrorNotAllowed       = -6
)

// Store-side purchase states and response codes, as sent by the Android
// billing service.
const (
	marketStatePurchased = 0
	marketStateCanceled  = 1
	marketStateRefunded  = 2

	marketResultOK                 = 0
	marketResultUserCanceled       = 1
	marketResultServiceUnavailable = 2
	marketResultBillingUnavailable = 3
	marketResultItemUnavailable    = 4
	marketResultDeveloperError     = 5
	marketResultError              = 6
	marketResultItemAlreadyOwned   = 7
)

// FromMarketState maps a store purchase state to a State. Unknown store
// states count as failures.
func FromMarketState(s int) State {
	switch s {
	case marketStatePurchased:
		return StateCompleted
	case marketStateRefunded:
		return StateRefunded
	case marketStateCanceled:
		return StateFailed
	default:
		return StateFailed
	}
}

// FromMarketResponse maps a store response code to ResultOK, a Result code
// or an Error code.
func FromMarketResponse(code int) int {
	switch code {
	case marketResultOK:
		return ResultOK
	case marketResultUserCanceled:
		return ErrorCancelled
	case marketResultServiceUnavailable:
		return ErrorConnectionFailed
	case marketResultBillingUnavailable:
		return ResultUnavailable
	case marketResultItemUnavailable:
		return ErrorInvalidProduct
	case marketResultItemAlreadyOwned:
		return ErrorAlreadyOwned
	case marketResultDeveloperError, marketResultError:
		return ErrorUnknown
	default:
		return ErrorUnknown
	}
}
