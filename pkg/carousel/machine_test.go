package carousel

import (
	"errors"
	"testing"
)

func slides(n int) []Slide {
	out := make([]Slide, n)
	for i := range out {
		out[i] = Slide{Image: string(rune('a'+i)) + ".jpg"}
	}
	return out
}

func newMachine(t *testing.T, n int) *Machine {
	t.Helper()
	m, err := New(slides(n))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestNewRequiresSlides(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoSlides) {
		t.Fatalf("New(nil) error = %v, want ErrNoSlides", err)
	}
}

func TestInitialState(t *testing.T) {
	m := newMachine(t, 3)
	s := m.State()
	if s.Mode != Idle || s.Index != 0 {
		t.Fatalf("initial state = %v/%d, want idle/0", s.Mode, s.Index)
	}
	if s.Slide.Image != "a.jpg" {
		t.Errorf("Expected slide a.jpg, got %s", s.Slide.Image)
	}
}

func TestTicksWrapAround(t *testing.T) {
	m := newMachine(t, 3)
	for i := 0; i < 3; i++ {
		if effect := m.Dispatch(Event{Kind: Tick}); effect != EffectNone {
			t.Fatalf("tick effect = %v, want none", effect)
		}
	}
	if got := m.State().Index; got != 0 {
		t.Errorf("Expected index 0 after three ticks, got %d", got)
	}
}

func TestPrevWrapsToLast(t *testing.T) {
	m := newMachine(t, 3)
	if effect := m.Dispatch(Event{Kind: Prev}); effect != EffectReset {
		t.Errorf("Expected EffectReset, got %v", effect)
	}
	if got := m.State().Index; got != 2 {
		t.Errorf("Expected index 2, got %d", got)
	}
}

func TestHoverPausesTimer(t *testing.T) {
	m := newMachine(t, 3)

	if effect := m.Dispatch(Event{Kind: HoverEnter}); effect != EffectStop {
		t.Fatalf("hover enter effect = %v, want stop", effect)
	}
	if m.State().Mode != Paused {
		t.Fatalf("Expected paused, got %v", m.State().Mode)
	}

	m.Dispatch(Event{Kind: Tick})
	if got := m.State().Index; got != 0 {
		t.Errorf("tick while paused moved index to %d", got)
	}

	// Manual navigation still works but leaves the timer alone.
	if effect := m.Dispatch(Event{Kind: Next}); effect != EffectNone {
		t.Errorf("next while paused effect = %v, want none", effect)
	}
	if got := m.State().Index; got != 1 {
		t.Errorf("Expected index 1, got %d", got)
	}

	if effect := m.Dispatch(Event{Kind: HoverLeave}); effect != EffectStart {
		t.Errorf("hover leave effect = %v, want start", effect)
	}
	if m.State().Mode != Idle {
		t.Errorf("Expected idle, got %v", m.State().Mode)
	}
}

func TestLightboxNavigation(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "moves to next image", count: 9, want: 3},
		{name: "wraps in a short gallery", count: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t, tt.count)
			if effect := m.Dispatch(Event{Kind: Select, Index: 2}); effect != EffectStop {
				t.Fatalf("select effect = %v, want stop", effect)
			}
			m.Dispatch(Event{Kind: KeyRight})

			s := m.State()
			if s.Mode != LightboxOpen {
				t.Fatalf("Expected lightbox open, got %v", s.Mode)
			}
			if s.Index != tt.want {
				t.Errorf("Expected index %d, got %d", tt.want, s.Index)
			}
		})
	}
}

func TestLightboxIgnoresTicks(t *testing.T) {
	m := newMachine(t, 4)
	m.Dispatch(Event{Kind: Select, Index: 1})
	m.Dispatch(Event{Kind: Tick})
	m.Dispatch(Event{Kind: HoverLeave})
	if s := m.State(); s.Index != 1 || s.Mode != LightboxOpen {
		t.Errorf("Expected lightbox at 1, got %v/%d", s.Mode, s.Index)
	}
}

func TestLightboxCloseKeepsIndex(t *testing.T) {
	for _, kind := range []EventKind{Close, Backdrop, Escape} {
		m := newMachine(t, 5)
		m.Dispatch(Event{Kind: Select, Index: 3})
		m.Dispatch(Event{Kind: KeyLeft})

		if effect := m.Dispatch(Event{Kind: kind}); effect != EffectStart {
			t.Errorf("close kind %d effect = %v, want start", kind, effect)
		}
		if s := m.State(); s.Mode != Idle || s.Index != 2 {
			t.Errorf("close kind %d state = %v/%d, want idle/2", kind, s.Mode, s.Index)
		}
	}
}

func TestArrowKeysIgnoredOutsideLightbox(t *testing.T) {
	m := newMachine(t, 3)
	m.Dispatch(Event{Kind: KeyRight})
	if got := m.State().Index; got != 0 {
		t.Errorf("Expected index 0, got %d", got)
	}
}

func TestSelectOutOfRangeIgnored(t *testing.T) {
	m := newMachine(t, 3)
	for _, idx := range []int{-1, 3, 10} {
		if effect := m.Dispatch(Event{Kind: Select, Index: idx}); effect != EffectNone {
			t.Errorf("select %d effect = %v, want none", idx, effect)
		}
	}
	if s := m.State(); s.Mode != Idle || s.Index != 0 {
		t.Errorf("Expected idle/0, got %v/%d", s.Mode, s.Index)
	}
}

func TestSelectFromPausedOpensLightbox(t *testing.T) {
	m := newMachine(t, 3)
	m.Dispatch(Event{Kind: HoverEnter})
	if effect := m.Dispatch(Event{Kind: Select, Index: 2}); effect != EffectNone {
		t.Errorf("Expected no effect (timer already stopped), got %v", effect)
	}
	if s := m.State(); s.Mode != LightboxOpen || s.Index != 2 {
		t.Errorf("Expected lightbox/2, got %v/%d", s.Mode, s.Index)
	}
}

func TestIndexStaysInRange(t *testing.T) {
	m := newMachine(t, 2)
	events := []Event{
		{Kind: Prev}, {Kind: Prev}, {Kind: Prev}, {Kind: Tick},
		{Kind: Select, Index: 1}, {Kind: KeyRight}, {Kind: KeyRight}, {Kind: KeyLeft},
		{Kind: Escape}, {Kind: Next}, {Kind: Next},
	}
	for _, ev := range events {
		m.Dispatch(ev)
		if idx := m.State().Index; idx < 0 || idx >= m.Len() {
			t.Fatalf("index %d out of range after event %v", idx, ev)
		}
	}
}
