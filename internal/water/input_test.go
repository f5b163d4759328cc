package water

import (
	"testing"
	"time"
)

func TestAggregatorIdleWithoutPointer(t *testing.T) {
	a := NewAggregator(100*time.Millisecond, newMockClock())
	if got := a.Signal().Class; got != ForceIdle {
		t.Errorf("class before any event = %v, want idle", got)
	}
	a.Scroll()
	if got := a.Signal().Class; got != ForceIdle {
		t.Errorf("class after scroll with no pointer = %v, want idle", got)
	}
}

func TestAggregatorMoveTracksPointer(t *testing.T) {
	a := NewAggregator(100*time.Millisecond, newMockClock())
	a.PointerMove(0.25, 0.75)
	sig := a.Signal()
	if sig.Class != ForceMove || sig.X != 0.25 || sig.Y != 0.75 {
		t.Errorf("signal = %+v, want move at (0.25, 0.75)", sig)
	}
	a.PointerLeave()
	if got := a.Signal().Class; got != ForceIdle {
		t.Errorf("class after leave = %v, want idle", got)
	}
}

func TestAggregatorClickExpires(t *testing.T) {
	clock := newMockClock()
	a := NewAggregator(100*time.Millisecond, clock)

	a.PointerDown(0.5, 0.5)
	clock.Advance(50 * time.Millisecond)
	if got := a.Signal().Class; got != ForceClick {
		t.Fatalf("class at 50ms = %v, want click", got)
	}
	clock.Advance(50 * time.Millisecond)
	if got := a.Signal().Class; got == ForceClick {
		t.Fatalf("class at 100ms = %v, want window closed", got)
	}
	clock.Advance(50 * time.Millisecond)
	if got := a.Signal().Class; got != ForceMove {
		t.Errorf("class at 150ms = %v, want move", got)
	}
}

func TestAggregatorScrollReusesPointer(t *testing.T) {
	clock := newMockClock()
	a := NewAggregator(100*time.Millisecond, clock)
	a.PointerMove(0.1, 0.9)
	a.Scroll()
	sig := a.Signal()
	if sig.Class != ForceScroll || sig.X != 0.1 || sig.Y != 0.9 {
		t.Errorf("signal = %+v, want scroll at (0.1, 0.9)", sig)
	}
}

func TestAggregatorLastWriterWins(t *testing.T) {
	clock := newMockClock()
	a := NewAggregator(100*time.Millisecond, clock)
	a.PointerMove(0.5, 0.5)

	a.PointerDown(0.5, 0.5)
	clock.Advance(60 * time.Millisecond)
	a.Scroll()
	if got := a.Signal().Class; got != ForceScroll {
		t.Fatalf("class after scroll = %v, want scroll", got)
	}
	// The click window would have closed at 100ms; the scroll window runs
	// until 160ms.
	clock.Advance(60 * time.Millisecond)
	if got := a.Signal().Class; got != ForceScroll {
		t.Fatalf("class at 120ms = %v, want scroll", got)
	}
	clock.Advance(40 * time.Millisecond)
	if got := a.Signal().Class; got != ForceMove {
		t.Fatalf("class at 160ms = %v, want move", got)
	}

	// A second click restarts the window instead of extending it.
	a.PointerDown(0.5, 0.5)
	clock.Advance(90 * time.Millisecond)
	a.PointerDown(0.5, 0.5)
	clock.Advance(90 * time.Millisecond)
	if got := a.Signal().Class; got != ForceClick {
		t.Errorf("class 90ms after second click = %v, want click", got)
	}
	clock.Advance(10 * time.Millisecond)
	if got := a.Signal().Class; got != ForceMove {
		t.Errorf("class 100ms after second click = %v, want move", got)
	}
}

func TestAggregatorSignalIsIdempotent(t *testing.T) {
	clock := newMockClock()
	a := NewAggregator(100*time.Millisecond, clock)
	a.PointerDown(0.3, 0.4)
	first := a.Signal()
	for i := 0; i < 5; i++ {
		if got := a.Signal(); got != first {
			t.Fatalf("signal changed without events: %+v vs %+v", got, first)
		}
	}
}

func TestForceClassString(t *testing.T) {
	tests := map[ForceClass]string{
		ForceIdle:      "idle",
		ForceMove:      "move",
		ForceClick:     "click",
		ForceScroll:    "scroll",
		ForceClass(42): "unknown",
	}
	for class, want := range tests {
		if got := class.String(); got != want {
			t.Errorf("ForceClass(%d).String() = %q, want %q", int(class), got, want)
		}
	}
}
