// Package carousel models the hero carousel and the gallery lightbox: which
// slide is showing, whether autoplay is running, and whether the lightbox is
// open.
package carousel

import "errors"

// ErrNoSlides is returned when a machine is built without slides.
var ErrNoSlides = errors.New("carousel: no slides")

// Slide describes one image in a carousel or gallery.
type Slide struct {
	Image   string `yaml:"image" json:"image"`
	Title   string `yaml:"title" json:"title,omitempty"`
	Caption string `yaml:"caption" json:"caption,omitempty"`
	Alt     string `yaml:"alt" json:"alt,omitempty"`
}

// Mode is the presentation state.
type Mode int

const (
	Idle Mode = iota
	Paused
	LightboxOpen
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Paused:
		return "paused"
	case LightboxOpen:
		return "lightbox_open"
	}
	return "unknown"
}

// EventKind enumerates user input and timer events.
type EventKind int

const (
	Tick EventKind = iota
	HoverEnter
	HoverLeave
	Next
	Prev
	Select
	Close
	Backdrop
	Escape
	KeyLeft
	KeyRight
)

// Event is one input to the machine. Index is only read for Select.
type Event struct {
	Kind  EventKind
	Index int
}

// Effect tells the owner of the autoplay timer what to do after a
// transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectStart starts the timer with a fresh interval.
	EffectStart
	// EffectReset restarts the running timer's interval.
	EffectReset
	// EffectStop suspends the timer.
	EffectStop
)

// State is a snapshot of the machine.
type State struct {
	Mode  Mode
	Index int
	Slide Slide
}

// Machine holds carousel state. It is not safe for concurrent use; Player
// serializes access for timer-driven use.
type Machine struct {
	slides []Slide
	index  int
	mode   Mode
}

// New returns a machine in Idle at index 0.
func New(slides []Slide) (*Machine, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	return &Machine{slides: append([]Slide(nil), slides...)}, nil
}

// Len returns the number of slides.
func (m *Machine) Len() int { return len(m.slides) }

// Slides returns a copy of the slide list.
func (m *Machine) Slides() []Slide { return append([]Slide(nil), m.slides...) }

// State returns the current snapshot.
func (m *Machine) State() State {
	return State{Mode: m.mode, Index: m.index, Slide: m.slides[m.index]}
}

// Dispatch applies ev and returns the timer effect. Events that do not apply
// to the current mode are ignored.
func (m *Machine) Dispatch(ev Event) Effect {
	switch m.mode {
	case Idle:
		switch ev.Kind {
		case Tick:
			m.step(1)
		case HoverEnter:
			m.mode = Paused
			return EffectStop
		case Next:
			m.step(1)
			return EffectReset
		case Prev:
			m.step(-1)
			return EffectReset
		case Select:
			return m.open(ev.Index)
		}

	case Paused:
		switch ev.Kind {
		case HoverLeave:
			m.mode = Idle
			return EffectStart
		case Next:
			m.step(1)
		case Prev:
			m.step(-1)
		case Select:
			return m.open(ev.Index)
		}

	case LightboxOpen:
		switch ev.Kind {
		case KeyRight, Next:
			m.step(1)
		case KeyLeft, Prev:
			m.step(-1)
		case Close, Backdrop, Escape:
			m.mode = Idle
			return EffectStart
		}
	}
	return EffectNone
}

func (m *Machine) open(index int) Effect {
	if index < 0 || index >= len(m.slides) {
		return EffectNone
	}
	prev := m.mode
	m.index = index
	m.mode = LightboxOpen
	if prev == Idle {
		return EffectStop
	}
	return EffectNone
}

func (m *Machine) step(delta int) {
	n := len(m.slides)
	m.index = ((m.index+delta)%n + n) % n
}
