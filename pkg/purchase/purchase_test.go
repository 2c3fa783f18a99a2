package purchase

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/nativeui/pkg/errors"
	"github.com/go-drift/nativeui/pkg/event"
	"github.com/go-drift/nativeui/pkg/platform"
)

type fakeStore struct {
	next      int64
	disabled  bool
	calls     []string
	destroyed []int64
	fields    map[string]string
	onCreate  func()
}

func (s *fakeStore) handle(channel, method string, args any) (any, error) {
	s.calls = append(s.calls, method)
	m, _ := args.(map[string]any)
	switch method {
	case "supported":
		if s.disabled {
			return ResultDisabled, nil
		}
		return ResultOK, nil
	case "create":
		if s.disabled {
			return -1, nil
		}
		s.next++
		if s.onCreate != nil {
			s.onCreate()
		}
		return s.next, nil
	case "getField":
		return s.fields[m["field"].(string)], nil
	case "destroy":
		h, _ := platform.ToInt64(m["handle"])
		s.destroyed = append(s.destroyed, h)
		return nil, nil
	case "request", "verifyReceipt", "setStoreURL", "restoreTransactions":
		return nil, nil
	}
	return nil, platform.ErrMethodNotFound
}

func setup(t *testing.T) (*fakeStore, *event.Environment, *Manager) {
	t.Helper()
	store := &fakeStore{fields: map[string]string{"transactionId": "T-1"}}
	host := platform.SetupTestBridge(t.Cleanup)
	host.Handler = store.handle
	env := event.NewEnvironment()
	m := NewManager(env)
	t.Cleanup(m.Close)
	return store, env, m
}

type stateRecorder struct {
	states []State
}

func (r *stateRecorder) PurchaseEvent(p *Purchase, data event.PurchaseEventData) {
	r.states = append(r.states, State(data.State))
}

func TestPurchaseFlow(t *testing.T) {
	store, env, m := setup(t)

	ok, err := m.Supported()
	if err != nil || !ok {
		t.Fatalf("Supported = %v, %v", ok, err)
	}

	p, err := m.Create("gold")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if st, _ := p.State(); st != -1 {
		t.Errorf("initial state = %v, want -1", st)
	}
	rec := &stateRecorder{}
	p.AddListener(rec)

	if err := p.Request(1); err != nil {
		t.Fatal(err)
	}
	env.Post(event.NewPurchaseEvent(event.PurchaseEventData{Handle: p.Handle(), State: int(StateInProgress)}))
	env.Post(event.NewPurchaseEvent(event.PurchaseEventData{Handle: p.Handle(), State: int(StateCompleted)}))
	env.Post(event.NewPurchaseEvent(event.PurchaseEventData{Handle: 999, State: int(StateFailed)}))
	env.Post(event.NewWidgetEvent(event.WidgetEventData{Handle: p.Handle()}))

	if len(rec.states) != 2 || rec.states[1] != StateCompleted {
		t.Errorf("states = %v, want [in_progress completed]", rec.states)
	}
	if st, _ := p.State(); st != StateCompleted {
		t.Errorf("State = %v, want completed", st)
	}

	if v, err := p.Field("transactionId"); err != nil || v != "T-1" {
		t.Errorf("Field = %q, %v", v, err)
	}

	if err := p.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := p.Destroy(); err != nil {
		t.Fatal(err)
	}
	env.Post(event.NewPurchaseEvent(event.PurchaseEventData{Handle: p.Handle(), State: int(StateRefunded)}))
	if len(rec.states) != 2 {
		t.Error("destroyed purchase still received events")
	}

	destroys := 0
	for _, c := range store.calls {
		if c == "destroy" {
			destroys++
		}
	}
	if destroys != 1 {
		t.Errorf("destroy syscalls = %d, want 1", destroys)
	}
}

func TestPurchaseFailedCarriesError(t *testing.T) {
	_, env, m := setup(t)
	p, _ := m.Create("gold")
	env.Post(event.NewPurchaseEvent(event.PurchaseEventData{
		Handle:    p.Handle(),
		State:     int(StateFailed),
		ErrorCode: ErrorCancelled,
	}))
	st, code := p.State()
	if st != StateFailed || code != ErrorCancelled {
		t.Errorf("State = %v,%d want failed,%d", st, code, ErrorCancelled)
	}
}

func TestPurchaseUnsupported(t *testing.T) {
	store, _, m := setup(t)
	store.disabled = true

	if ok, err := m.Supported(); err != nil || ok {
		t.Errorf("Supported = %v, %v; want false", ok, err)
	}
	if _, err := m.Create("gold"); !stderrors.Is(err, errors.ErrCapabilityUnsupported) {
		t.Errorf("Create error = %v, want ErrCapabilityUnsupported", err)
	}
}

func TestRequestQuantity(t *testing.T) {
	_, _, m := setup(t)
	p, _ := m.Create("gold")
	if err := p.Request(0); !stderrors.Is(err, platform.ErrInvalidArguments) {
		t.Errorf("Request(0) error = %v", err)
	}
}

func TestManagerClose(t *testing.T) {
	_, env, m := setup(t)
	m.Close()
	m.Close()
	if env.ListenerCount() != 0 {
		t.Error("Close should unsubscribe")
	}
	if _, err := m.Create("gold"); !stderrors.Is(err, ErrClosed) {
		t.Errorf("Create after Close error = %v", err)
	}
}

func TestCreateClosedDuringHostCall(t *testing.T) {
	store, _, m := setup(t)
	store.onCreate = m.Close

	if _, err := m.Create("gold"); !stderrors.Is(err, ErrClosed) {
		t.Fatalf("Create error = %v, want ErrClosed", err)
	}
	if len(store.destroyed) != 1 || store.destroyed[0] != store.next {
		t.Errorf("destroyed = %v, want [%d]", store.destroyed, store.next)
	}
}

func TestFromMarketState(t *testing.T) {
	tests := []struct {
		in   int
		want State
	}{
		{marketStatePurchased, StateCompleted},
		{marketStateCanceled, StateFailed},
		{marketStateRefunded, StateRefunded},
		{-1, StateFailed},
	}
	for _, tt := range tests {
		if got := FromMarketState(tt.in); got != tt.want {
			t.Errorf("FromMarketState(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromMarketResponse(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{marketResultOK, ResultOK},
		{marketResultUserCanceled, ErrorCancelled},
		{marketResultServiceUnavailable, ErrorConnectionFailed},
		{marketResultBillingUnavailable, ResultUnavailable},
		{marketResultItemUnavailable, ErrorInvalidProduct},
		{marketResultDeveloperError, ErrorUnknown},
		{marketResultError, ErrorUnknown},
		{marketResultItemAlreadyOwned, ErrorAlreadyOwned},
		{42, ErrorUnknown},
	}
	for _, tt := range tests {
		if got := FromMarketResponse(tt.in); got != tt.want {
			t.Errorf("FromMarketResponse(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateReceiptError.String() != "receipt_error" {
		t.Errorf("got %q", StateReceiptError.String())
	}
	if State(-1).String() != "unknown" || State(100).String() != "unknown" {
		t.Error("out-of-range states should be unknown")
	}
}
