package widget

// Label is a native text label. It produces no events of its own.
type Label struct {
	base
}

// NewLabel creates a native label.
func (tk *Toolkit) NewLabel() (*Label, error) {
	l := &Label{}
	if err := l.init(tk, TypeLabel, l); err != nil {
		return nil, err
	}
	return l, nil
}

// SetText sets the label text.
func (l *Label) SetText(text string) error {
	return l.SetProperty(PropertyText, text)
}

// Text reads the label text back from the host.
func (l *Label) Text() (string, error) {
	return l.Property(PropertyText)
}
