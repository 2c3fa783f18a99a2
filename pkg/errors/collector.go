package errors

import "sync"

// Collector is an ErrorHandler that keeps reports in memory. Tests and
// tools use it to assert on what was reported.
type Collector struct {
	mu     sync.Mutex
	errs   []*Error
	panics []*PanicError
}

// Capture installs a new Collector as the error handler and registers the
// restore of the previous handler with cleanup (usually t.Cleanup).
func Capture(cleanup func(func())) *Collector {
	c := &Collector{}
	prev := SetHandler(c)
	cleanup(func() { SetHandler(prev) })
	return c
}

func (c *Collector) HandleError(err *Error) {
	c.mu.Lock()
	c.errs = append(c.errs, err)
	c.mu.Unlock()
}

func (c *Collector) HandlePanic(err *PanicError) {
	c.mu.Lock()
	c.panics = append(c.panics, err)
	c.mu.Unlock()
}

// Errors returns the reported errors in order.
func (c *Collector) Errors() []*Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Error(nil), c.errs...)
}

// Panics returns the recovered panics in order.
func (c *Collector) Panics() []*PanicError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*PanicError(nil), c.panics...)
}

// Count returns how many errors of kind were reported.
func (c *Collector) Count(kind ErrorKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.errs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets everything collected so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.errs = nil
	c.panics = nil
	c.mu.Unlock()
}
