package purchase

import "errors"

// ErrClosed is returned when creating a purchase with a closed Manager.
var ErrClosed = errors.New("purchase: manager closed")
