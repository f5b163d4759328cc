package water

import (
	"sync"
	"time"
)

// ForceClass selects the strength of the per-frame disturbance.
type ForceClass int

const (
	ForceIdle ForceClass = iota
	ForceMove
	ForceClick
	ForceScroll
)

func (c ForceClass) String() string {
	switch c {
	case ForceIdle:
		return "idle"
	case ForceMove:
		return "move"
	case ForceClick:
		return "click"
	case ForceScroll:
		return "scroll"
	}
	return "unknown"
}

// ForcingSignal is the disturbance applied by one step. X and Y are in
// normalized field space with y growing downward.
type ForcingSignal struct {
	X, Y  float64
	Class ForceClass
}

// Aggregator folds pointer and scroll events into one ForcingSignal per
// frame. Event methods may be called from another goroutine than Signal.
type Aggregator struct {
	mu       sync.Mutex
	clock    TimeProvider
	debounce time.Duration

	x, y       float64
	hasPointer bool

	// At most one click or scroll window is open; a newer event replaces it.
	window    ForceClass
	windowEnd time.Time
}

// NewAggregator returns an aggregator whose click and scroll windows last
// for debounce. A nil clock uses the system time.
func NewAggregator(debounce time.Duration, clock TimeProvider) *Aggregator {
	if clock == nil {
		clock = systemClock{}
	}
	return &Aggregator{clock: clock, debounce: debounce}
}

// PointerMove records the pointer position.
func (a *Aggregator) PointerMove(x, y float64) {
	a.mu.Lock()
	a.x, a.y = x, y
	a.hasPointer = true
	a.mu.Unlock()
}

// PointerDown records the position and opens a click window.
func (a *Aggregator) PointerDown(x, y float64) {
	now := a.clock.Now()
	a.mu.Lock()
	a.x, a.y = x, y
	a.hasPointer = true
	a.openWindow(ForceClick, now)
	a.mu.Unlock()
}

// Scroll opens a scroll window at the last known pointer position.
func (a *Aggregator) Scroll() {
	now := a.clock.Now()
	a.mu.Lock()
	a.openWindow(ForceScroll, now)
	a.mu.Unlock()
}

// PointerLeave forgets the pointer so no force is applied until it returns.
func (a *Aggregator) PointerLeave() {
	a.mu.Lock()
	a.hasPointer = false
	a.mu.Unlock()
}

func (a *Aggregator) openWindow(class ForceClass, now time.Time) {
	a.window = class
	a.windowEnd = now.Add(a.debounce)
}

// Signal returns the forcing for the current frame without consuming it.
// Calls between events return the same value until the window expires.
func (a *Aggregator) Signal() ForcingSignal {
	now := a.clock.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.hasPointer {
		return ForcingSignal{X: a.x, Y: a.y, Class: ForceIdle}
	}
	class := ForceMove
	if a.window != ForceIdle && now.Before(a.windowEnd) {
		class = a.window
	}
	return ForcingSignal{X: a.x, Y: a.y, Class: class}
}
