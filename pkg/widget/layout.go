package widget

import (
	stderrors "errors"
	"sync"
)

// Layout is a native container that stacks its children.
type Layout struct {
	base
	children []Widget
	cmu      sync.Mutex
}

// NewVerticalLayout creates a layout stacking children top to bottom.
func (tk *Toolkit) NewVerticalLayout() (*Layout, error) {
	return tk.newLayout(TypeVerticalLayout)
}

// NewHorizontalLayout creates a layout stacking children left to right.
func (tk *Toolkit) NewHorizontalLayout() (*Layout, error) {
	return tk.newLayout(TypeHorizontalLayout)
}

func (tk *Toolkit) newLayout(typ string) (*Layout, error) {
	l := &Layout{}
	if err := l.init(tk, typ, l); err != nil {
		return nil, err
	}
	return l, nil
}

// AddChild appends child. The layout takes ownership: destroying the
// layout destroys its children.
func (l *Layout) AddChild(child Widget) error {
	if err := l.toolkit.addChild(l.handle, child.Handle()); err != nil {
		return err
	}
	l.cmu.Lock()
	l.children = append(l.children, child)
	l.cmu.Unlock()
	return nil
}

// Children returns the layout's children in insertion order.
func (l *Layout) Children() []Widget {
	l.cmu.Lock()
	defer l.cmu.Unlock()
	out := make([]Widget, len(l.children))
	copy(out, l.children)
	return out
}

// Destroy destroys every child, then the layout itself.
func (l *Layout) Destroy() error {
	l.cmu.Lock()
	children := l.children
	l.children = nil
	l.cmu.Unlock()

	var errs []error
	for _, c := range children {
		if err := c.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := l.base.Destroy(); err != nil {
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}

// Screen is a top-level native screen holding one main widget.
type Screen struct {
	base
	main Widget
}

// NewScreen creates a native screen.
func (tk *Toolkit) NewScreen() (*Screen, error) {
	s := &Screen{}
	if err := s.init(tk, TypeScreen, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetMainWidget makes w the screen's content. The screen takes ownership.
func (s *Screen) SetMainWidget(w Widget) error {
	if err := s.toolkit.addChild(s.handle, w.Handle()); err != nil {
		return err
	}
	s.mu.Lock()
	s.main = w
	s.mu.Unlock()
	return nil
}

// MainWidget returns the screen's content, or nil.
func (s *Screen) MainWidget() Widget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.main
}

// Show makes this the visible screen.
func (s *Screen) Show() error {
	return s.toolkit.showScreen(s.handle)
}

// Destroy destroys the main widget, then the screen.
func (s *Screen) Destroy() error {
	s.mu.Lock()
	main := s.main
	s.main = nil
	s.mu.Unlock()

	var errs []error
	if main != nil {
		if err := main.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.base.Destroy(); err != nil {
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}
