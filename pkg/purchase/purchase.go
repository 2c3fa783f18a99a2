package purchase

import (
	"fmt"
	"sync"

	"github.com/go-drift/nativeui/pkg/errors"
	"github.com/go-drift/nativeui/pkg/event"
	"github.com/go-drift/nativeui/pkg/platform"
)

// Channel is the host method channel carrying purchase syscalls.
const Channel = "nativeui/purchase"

var purchaseChannel = platform.NewMethodChannel(Channel)

// Listener is notified of every state change of a Purchase.
type Listener interface {
	PurchaseEvent(p *Purchase, data event.PurchaseEventData)
}

// Manager creates Purchases and routes purchase events to them by handle.
type Manager struct {
	source    event.Source
	purchases map[event.Handle]*Purchase
	closed    bool
	mu        sync.RWMutex
}

// NewManager creates a Manager listening on src.
func NewManager(src event.Source) *Manager {
	m := &Manager{
		source:    src,
		purchases: make(map[event.Handle]*Purchase),
	}
	if src != nil {
		src.AddCustomEventListener(m)
	}
	return m
}

// Close stops listening. Purchases are left to their owners to destroy.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.purchases = make(map[event.Handle]*Purchase)
	m.mu.Unlock()
	if m.source != nil {
		m.source.RemoveCustomEventListener(m)
	}
}

// Supported reports whether the host offers in-app purchases.
func (m *Manager) Supported() (bool, error) {
	res, err := purchaseChannel.Invoke("supported", nil)
	if err != nil {
		return false, err
	}
	code, ok := platform.ToInt(res)
	if !ok {
		return false, fmt.Errorf("purchase supported: %w: %v", platform.ErrInvalidArguments, res)
	}
	return code == ResultOK, nil
}

// SetStoreURL sets the receipt verification endpoint.
func (m *Manager) SetStoreURL(url string) error {
	_, err := purchaseChannel.Invoke("setStoreURL", map[string]any{"url": url})
	return err
}

// RestoreTransactions asks the store to replay past purchases. Results
// arrive as StateRestored events on the matching Purchases.
func (m *Manager) RestoreTransactions() error {
	_, err := purchaseChannel.Invoke("restoreTransactions", nil)
	return err
}

// Create asks the host for a product handle. A product the host cannot
// sell at all yields a *errors.CapabilityError.
func (m *Manager) Create(productID string) (*Purchase, error) {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	n, err := purchaseChannel.InvokeHandle("create", map[string]any{"productId": productID})
	if err != nil {
		return nil, fmt.Errorf("create purchase %s: %w", productID, err)
	}
	h := event.Handle(n)
	if h == event.UnsupportedHandle {
		return nil, &errors.CapabilityError{Feature: "in-app purchase", Handle: n}
	}

	p := &Purchase{manager: m, handle: h, productID: productID, state: -1}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		// Closed while the host was creating it; nothing owns h now.
		_, _ = purchaseChannel.Invoke("destroy", map[string]any{"handle": n})
		return nil, ErrClosed
	}
	m.purchases[h] = p
	m.mu.Unlock()
	return p, nil
}

// CustomEvent implements event.CustomEventListener.
func (m *Manager) CustomEvent(ev event.Event) {
	if ev.Type != event.TypePurchase || ev.Purchase == nil {
		return
	}
	m.mu.RLock()
	p, ok := m.purchases[ev.Purchase.Handle]
	m.mu.RUnlock()
	if !ok {
		return
	}
	p.handleEvent(*ev.Purchase)
}

func (m *Manager) forget(h event.Handle) {
	m.mu.Lock()
	delete(m.purchases, h)
	m.mu.Unlock()
}

// Purchase is one product the application may buy.
type Purchase struct {
	manager   *Manager
	handle    event.Handle
	productID string
	state     State
	errorCode int
	listeners []Listener
	destroyed bool
	mu        sync.RWMutex
}

// Handle returns the host product handle.
func (p *Purchase) Handle() event.Handle {
	return p.handle
}

// ProductID returns the store product identifier.
func (p *Purchase) ProductID() string {
	return p.productID
}

// State returns the last reported state and, for StateFailed, its error
// code. Before any event the state is -1.
func (p *Purchase) State() (State, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state, p.errorCode
}

// AddListener subscribes l to state changes.
func (p *Purchase) AddListener(l Listener) {
	p.mu.Lock()
	p.listeners = append(p.listeners, l)
	p.mu.Unlock()
}

// Request starts buying quantity units of the product.
func (p *Purchase) Request(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity %d", platform.ErrInvalidArguments, quantity)
	}
	_, err := purchaseChannel.Invoke("request", map[string]any{
		"handle":   int64(p.handle),
		"quantity": quantity,
	})
	return err
}

// VerifyReceipt asks the store to validate the purchase receipt.
func (p *Purchase) VerifyReceipt() error {
	_, err := purchaseChannel.Invoke("verifyReceipt", map[string]any{"handle": int64(p.handle)})
	return err
}

// Field reads one receipt field.
func (p *Purchase) Field(name string) (string, error) {
	return purchaseChannel.InvokeString("getField", map[string]any{
		"handle": int64(p.handle),
		"field":  name,
	})
}

// Destroy stops routing events to p and frees the host handle.
func (p *Purchase) Destroy() error {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return nil
	}
	p.destroyed = true
	p.mu.Unlock()

	p.manager.forget(p.handle)
	_, err := purchaseChannel.Invoke("destroy", map[string]any{"handle": int64(p.handle)})
	return err
}

func (p *Purchase) handleEvent(data event.PurchaseEventData) {
	p.mu.Lock()
	p.state = State(data.State)
	p.errorCode = data.ErrorCode
	ls := make([]Listener, len(p.listeners))
	copy(ls, p.listeners)
	p.mu.Unlock()

	for _, l := range ls {
		l.PurchaseEvent(p, data)
	}
}
