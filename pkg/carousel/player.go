package carousel

import (
	"sync"
	"time"
)

// DefaultInterval is the autoplay period of the hero carousel.
const DefaultInterval = 5 * time.Second

// TickerFunc starts a repeating timer and returns its channel and a stop
// function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func stdTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithTicker replaces the timer source.
func WithTicker(fn TickerFunc) PlayerOption {
	return func(p *Player) {
		if fn != nil {
			p.newTicker = fn
		}
	}
}

// OnChange registers a callback invoked after every transition that came
// from the autoplay timer.
func OnChange(fn func(State)) PlayerOption {
	return func(p *Player) { p.onChange = fn }
}

// Player drives a Machine with an autoplay timer. The timer only runs while
// the machine is Idle and is released by Close.
type Player struct {
	mu        sync.Mutex
	machine   *Machine
	interval  time.Duration
	newTicker TickerFunc
	onChange  func(State)
	stop      func()
	closed    bool
}

// NewPlayer wraps m. A non-positive interval uses DefaultInterval.
func NewPlayer(m *Machine, interval time.Duration, opts ...PlayerOption) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Player{
		machine:   m,
		interval:  interval,
		newTicker: stdTicker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins autoplay if the machine is Idle.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.machine.mode != Idle {
		return
	}
	p.startLocked()
}

// Dispatch applies a user event and performs its timer effect.
func (p *Player) Dispatch(ev Event) State {
	p.mu.Lock()
	defer p.mu.Unlock()

	effect := p.machine.Dispatch(ev)
	if !p.closed {
		switch effect {
		case EffectStart, EffectReset:
			p.startLocked()
		case EffectStop:
			p.stopLocked()
		}
	}
	return p.machine.State()
}

// State returns the current snapshot.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.machine.State()
}

// Running reports whether the autoplay timer is active.
func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

// Close stops the timer for good.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.closed = true
}

func (p *Player) startLocked() {
	p.stopLocked()

	ticks, stopTicker := p.newTicker(p.interval)
	done := make(chan struct{})
	p.stop = func() {
		close(done)
		stopTicker()
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticks:
				p.tick(done)
			}
		}
	}()
}

func (p *Player) stopLocked() {
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

func (p *Player) tick(done <-chan struct{}) {
	p.mu.Lock()
	// A tick that raced with stop belongs to a timer that no longer exists.
	select {
	case <-done:
		p.mu.Unlock()
		return
	default:
	}
	p.machine.Dispatch(Event{Kind: Tick})
	state := p.machine.State()
	onChange := p.onChange
	p.mu.Unlock()

	if onChange != nil {
		onChange(state)
	}
}
