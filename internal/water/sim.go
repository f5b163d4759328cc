package water

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// FrameStats describes the most recent frame.
type FrameStats struct {
	Frames    uint64
	StepTime  time.Duration
	ShadeTime time.Duration
	Backend   string
	GridW     int
	GridH     int
	Signal    ForcingSignal
}

// Simulation owns the field buffers, the input aggregator and the step
// backend of one water surface. Frame, Start and Stop must be called from
// the frame loop; input and Resize may arrive from elsewhere.
type Simulation struct {
	cfg        Config
	logger     *log.Logger
	clock      TimeProvider
	newStepper StepperFactory
	input      *Aggregator

	running bool
	stepper Stepper
	field   *FieldPair
	pixels  []byte
	stats   FrameStats

	resizeMu      sync.Mutex
	resizePending bool
	pendingW      int
	pendingH      int
}

// Option customizes a Simulation.
type Option func(*Simulation)

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithClock replaces the time source used for click and scroll windows.
func WithClock(c TimeProvider) Option {
	return func(s *Simulation) { s.clock = c }
}

// WithStepper selects the step backend. The default is NewCPUStepper.
func WithStepper(f StepperFactory) Option {
	return func(s *Simulation) { s.newStepper = f }
}

// New validates cfg and prepares a stopped simulation.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:        cfg,
		logger:     log.Default(),
		clock:      systemClock{},
		newStepper: NewCPUStepper,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.input = NewAggregator(cfg.Debounce, s.clock)
	return s, nil
}

// Input returns the aggregator fed by the host's pointer and scroll events.
func (s *Simulation) Input() *Aggregator { return s.input }

// Running reports whether Frame may be called.
func (s *Simulation) Running() bool { return s.running }

// Start allocates zeroed buffers for a viewport and the step backend. On
// error nothing is kept.
func (s *Simulation) Start(viewW, viewH int) error {
	if s.running {
		return nil
	}
	if viewW < 1 || viewH < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, viewW, viewH)
	}
	gw, gh := s.cfg.gridSize(viewW, viewH)
	field, err := newFieldPair(gw, gh)
	if err != nil {
		return fmt.Errorf("allocating field: %w", err)
	}
	stepper, err := s.newStepper(s.cfg)
	if err != nil {
		return fmt.Errorf("creating stepper: %w", err)
	}
	s.field = field
	s.stepper = stepper
	s.pixels = make([]byte, 4*gw*gh)
	s.stats = FrameStats{Backend: stepper.Name(), GridW: gw, GridH: gh}
	s.running = true
	s.logger.Printf("water: started %dx%d grid for %dx%d viewport (%s)", gw, gh, viewW, viewH, stepper.Name())
	return nil
}

// Stop halts frames, then releases the backend and buffers.
func (s *Simulation) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.stepper.Close()
	s.stepper = nil
	s.field = nil
	s.pixels = nil
	s.resizeMu.Lock()
	s.resizePending = false
	s.resizeMu.Unlock()
	s.logger.Printf("water: stopped after %d frames", s.stats.Frames)
}

// Resize records a new viewport. The buffers are recreated, zeroed, at the
// start of the next frame.
func (s *Simulation) Resize(viewW, viewH int) {
	if viewW < 1 || viewH < 1 {
		s.logger.Printf("water: ignoring resize to %dx%d", viewW, viewH)
		return
	}
	s.resizeMu.Lock()
	s.resizePending = true
	s.pendingW, s.pendingH = viewW, viewH
	s.resizeMu.Unlock()
}

// applyPendingResize swaps in new buffers at a frame boundary.
func (s *Simulation) applyPendingResize() error {
	s.resizeMu.Lock()
	pending := s.resizePending
	viewW, viewH := s.pendingW, s.pendingH
	s.resizePending = false
	s.resizeMu.Unlock()
	if !pending {
		return nil
	}
	gw, gh := s.cfg.gridSize(viewW, viewH)
	field, err := newFieldPair(gw, gh)
	if err != nil {
		return fmt.Errorf("reallocating field: %w", err)
	}
	s.field = field
	s.pixels = make([]byte, 4*gw*gh)
	s.stats.GridW, s.stats.GridH = gw, gh
	s.logger.Printf("water: resized to %dx%d grid for %dx%d viewport", gw, gh, viewW, viewH)
	return nil
}

// Frame runs one display frame: forcing, step, swap, shade.
func (s *Simulation) Frame() error {
	if !s.running {
		return ErrNotStarted
	}
	if err := s.applyPendingResize(); err != nil {
		return err
	}
	sig := s.input.Signal()

	start := time.Now()
	if err := s.stepper.Step(s.field.Read(), s.field.Write(), sig); err != nil {
		return fmt.Errorf("stepping field: %w", err)
	}
	s.field.Swap()
	shadeStart := time.Now()
	if err := Shade(s.field.Read(), s.pixels, s.cfg.ShadeParams()); err != nil {
		return fmt.Errorf("shading field: %w", err)
	}

	s.stats.StepTime = shadeStart.Sub(start)
	s.stats.ShadeTime = time.Since(shadeStart)
	s.stats.Signal = sig
	s.stats.Frames++
	return nil
}

// Pixels returns the premultiplied RGBA frame produced by the last Frame.
// The slice is reused by later frames.
func (s *Simulation) Pixels() []byte { return s.pixels }

// Field returns the buffer holding the latest step, or nil when stopped.
func (s *Simulation) Field() *FieldBuffer {
	if s.field == nil {
		return nil
	}
	return s.field.Read()
}

// GridSize reports the current grid dimensions.
func (s *Simulation) GridSize() (int, int) {
	if s.field == nil {
		return 0, 0
	}
	return s.field.Dims()
}

// Stats returns counters for the last frame.
func (s *Simulation) Stats() FrameStats { return s.stats }
