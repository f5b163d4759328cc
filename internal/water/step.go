package water

import "fmt"

// Stepper advances a field by one step, reading src and writing every cell
// of dst. Implementations must never alias src and dst.
type Stepper interface {
	Step(src, dst *FieldBuffer, sig ForcingSignal) error
	// Name identifies the backend in logs and overlays.
	Name() string
	// Close releases goroutines or device resources.
	Close()
}

// StepperFactory builds a Stepper for a configuration. Simulation.Start
// calls it so a failed backend leaves no partial state behind.
type StepperFactory func(cfg Config) (Stepper, error)

// stepParams are the per-step constants shared by every row.
type stepParams struct {
	stiffness float32
	viscosity float32
	limit     float32
}

func newStepParams(cfg Config) stepParams {
	return stepParams{
		stiffness: cfg.Stiffness,
		viscosity: cfg.Viscosity,
		limit:     cfg.HeightLimit,
	}
}

// checkStepBuffers enforces the double-buffering contract.
func checkStepBuffers(src, dst *FieldBuffer) error {
	if src == nil || dst == nil {
		return fmt.Errorf("%w: nil field buffer", ErrNotStarted)
	}
	if src == dst {
		return fmt.Errorf("step would read and write the same buffer")
	}
	if src.width != dst.width || src.height != dst.height {
		return fmt.Errorf("field size mismatch: src %dx%d dst %dx%d", src.width, src.height, dst.width, dst.height)
	}
	return nil
}

// stepRow integrates one row of the wave equation. Neighbor reads past the
// grid edge are clamped to the edge cell.
func stepRow(src, dst *FieldBuffer, y int, p stepParams, fp *forceFootprint) {
	w := src.width
	last := src.height - 1
	rowBase := 2 * y * w
	upBase := 2 * clampCoord(y-1, 0, last) * w
	downBase := 2 * clampCoord(y+1, 0, last) * w

	center := src.cells[rowBase : rowBase+2*w]
	up := src.cells[upBase : upBase+2*w]
	down := src.cells[downBase : downBase+2*w]
	out := dst.cells[rowBase : rowBase+2*w]

	for x := 0; x < w; x++ {
		xl := x - 1
		if xl < 0 {
			xl = 0
		}
		xr := x + 1
		if xr > w-1 {
			xr = w - 1
		}
		i := 2 * x
		height := center[i]
		vel := center[i+1]
		avg := (up[i] + down[i] + center[2*xl] + center[2*xr]) * 0.25
		vel += (avg - height) * p.stiffness
		vel *= p.viscosity
		height += vel
		out[i] = height
		out[i+1] = vel
	}

	if fp.coversRow(y) {
		for x := fp.x0; x <= fp.x1; x++ {
			out[2*x] -= fp.displacement(x, y)
		}
	}

	if p.limit > 0 {
		lim := p.limit
		for i, v := range out {
			if v > lim {
				out[i] = lim
			} else if v < -lim {
				out[i] = -lim
			}
		}
	}
}
