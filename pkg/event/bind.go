package event

import (
	"github.com/go-drift/nativeui/pkg/errors"
	"github.com/go-drift/nativeui/pkg/platform"
)

// Bind subscribes e to a host event channel. Each payload is decoded and
// posted; payloads that fail to decode are reported and dropped. The
// returned function cancels the subscription.
func (e *Environment) Bind(ch *platform.EventChannel) (unbind func()) {
	sub := ch.Listen(platform.EventHandler{
		OnEvent: func(data []byte) {
			ev, err := Decode(data)
			if err != nil {
				errors.Report(&errors.Error{
					Op:      "event.Bind",
					Kind:    errors.KindParsing,
					Channel: ch.Name(),
					Err:     err,
				})
				return
			}
			e.Post(ev)
		},
		OnError: func(err error) {
			errors.Report(&errors.Error{
				Op:      "event.Bind",
				Kind:    errors.KindPlatform,
				Channel: ch.Name(),
				Err:     err,
			})
		},
	})
	return sub.Cancel
}
