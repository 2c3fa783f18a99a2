package platform

// SetupTestBridge installs an in-process host that answers every syscall
// with a nil result, makes Dispatch synchronous, and registers ResetForTest
// with cleanup (usually t.Cleanup). Set Handler on the returned bridge to
// script host replies.
//
//	host := platform.SetupTestBridge(t.Cleanup)
//	host.Handler = fake.handle
func SetupTestBridge(cleanup func(func())) *LocalBridge {
	b := NewLocalBridge(func(string, string, any) (any, error) { return nil, nil })
	SetNativeBridge(b)
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
	return b
}

// ResetForTest removes the bridge, every event subscription and the
// dispatch function, so the next test starts disconnected. Channels stay
// registered. This should only be called from tests.
func ResetForTest() {
	bridgeMu.Lock()
	bridge = nil
	bridgeMu.Unlock()

	for _, ch := range eventChannels.all() {
		ch.detachAll()
	}
	RegisterDispatch(nil)
}
