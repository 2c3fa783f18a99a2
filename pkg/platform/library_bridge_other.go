//go:build !darwin && !linux

package platform

import "fmt"

// LibraryBridge is unavailable on this platform.
type LibraryBridge struct{}

// OpenLibraryBridge always fails on platforms purego cannot load from.
func OpenLibraryBridge(path string) (*LibraryBridge, error) {
	return nil, fmt.Errorf("%w: host libraries are not supported on this platform", ErrNotConnected)
}

// Path returns "".
func (b *LibraryBridge) Path() string { return "" }

func (b *LibraryBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	return nil, ErrNotConnected
}

func (b *LibraryBridge) StartEventStream(string) error { return ErrNotConnected }
func (b *LibraryBridge) StopEventStream(string) error  { return ErrNotConnected }
