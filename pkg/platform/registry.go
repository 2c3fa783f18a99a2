package platform

import "sync"

// channelTable maps channel names to channels of one kind.
type channelTable[C any] struct {
	mu sync.RWMutex
	m  map[string]C
}

func (t *channelTable[C]) put(name string, ch C) {
	t.mu.Lock()
	if t.m == nil {
		t.m = make(map[string]C)
	}
	t.m[name] = ch
	t.mu.Unlock()
}

func (t *channelTable[C]) get(name string) (C, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ch, ok := t.m[name]
	return ch, ok
}

func (t *channelTable[C]) all() []C {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]C, 0, len(t.m))
	for _, ch := range t.m {
		out = append(out, ch)
	}
	return out
}

var (
	methodChannels channelTable[*MethodChannel]
	eventChannels  channelTable[*EventChannel]
)
