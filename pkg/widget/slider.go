package widget

import (
	"sync"

	"github.com/go-drift/nativeui/pkg/event"
)

// SliderListener is notified when the user moves a slider.
type SliderListener interface {
	SliderValueChanged(s *Slider, value int)
}

// Slider is a native horizontal slider with an integer range [0, max].
type Slider struct {
	base
	value           int
	maxValue        int
	sliderListeners []SliderListener
	smu             sync.RWMutex
}

// NewSlider creates a native slider.
func (tk *Toolkit) NewSlider() (*Slider, error) {
	s := &Slider{maxValue: 100}
	if err := s.init(tk, TypeSlider, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetMaxValue sets the upper bound of the range.
func (s *Slider) SetMaxValue(max int) error {
	s.smu.Lock()
	s.maxValue = max
	s.smu.Unlock()
	return s.SetProperty(PropertyMaxValue, itoa(max))
}

// MaxValue returns the upper bound of the range.
func (s *Slider) MaxValue() int {
	s.smu.RLock()
	defer s.smu.RUnlock()
	return s.maxValue
}

// SetValue moves the slider, clamping to the range.
func (s *Slider) SetValue(value int) error {
	s.smu.Lock()
	value = clamp(value, 0, s.maxValue)
	s.value = value
	s.smu.Unlock()
	return s.SetProperty(PropertyValue, itoa(value))
}

// Value returns the last known position.
func (s *Slider) Value() int {
	s.smu.RLock()
	defer s.smu.RUnlock()
	return s.value
}

// AddSliderListener subscribes l to value changes.
func (s *Slider) AddSliderListener(l SliderListener) {
	s.smu.Lock()
	s.sliderListeners = append(s.sliderListeners, l)
	s.smu.Unlock()
}

// HandleWidgetEvent records value changes and notifies slider listeners.
func (s *Slider) HandleWidgetEvent(data *event.WidgetEventData) {
	s.base.HandleWidgetEvent(data)
	if data.Kind != event.WidgetEventSliderValueChanged {
		return
	}
	s.smu.Lock()
	s.value = data.Value
	ls := make([]SliderListener, len(s.sliderListeners))
	copy(ls, s.sliderListeners)
	s.smu.Unlock()
	for _, l := range ls {
		l.SliderValueChanged(s, data.Value)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
