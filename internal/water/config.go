package water

import (
	"fmt"
	"runtime"
	"time"
)

// Config holds the initialization-time constants of a simulation. The values
// are fixed once a Simulation is created.
type Config struct {
	// Downscale divides the viewport size to obtain the grid size.
	Downscale int
	// Stiffness scales the pull of each cell toward its neighbor average.
	Stiffness float32
	// Viscosity multiplies the velocity every step. Must be below 1.
	Viscosity float32
	// MouseRadius is the forcing radius in normalized field space.
	MouseRadius float64

	MoveStrength   float32
	ClickStrength  float32
	ScrollStrength float32

	// Debounce is how long a click or scroll keeps its forcing class.
	Debounce time.Duration

	// NormalZ is the z component of the unnormalized surface normal. Lower
	// values make the waves look steeper.
	NormalZ float64
	// SpecularExponent sharpens the highlight.
	SpecularExponent float64

	// HeightLimit clamps height and velocity to ±HeightLimit after each step.
	// Zero disables clamping.
	HeightLimit float32

	// Workers is the number of goroutines used by the CPU stepper.
	Workers int
}

// DefaultConfig returns the stock ripple parameters.
func DefaultConfig() Config {
	return Config{
		Downscale:        2,
		Stiffness:        0.5,
		Viscosity:        0.98,
		MouseRadius:      0.03,
		MoveStrength:     0.1,
		ClickStrength:    1.5,
		ScrollStrength:   1.0,
		Debounce:         100 * time.Millisecond,
		NormalZ:          0.02,
		SpecularExponent: 30,
		Workers:          runtime.NumCPU(),
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Downscale < 1:
		return fmt.Errorf("%w: downscale %d must be at least 1", ErrInvalidConfig, c.Downscale)
	case c.Stiffness <= 0 || c.Stiffness > 1:
		return fmt.Errorf("%w: stiffness %g outside (0, 1]", ErrInvalidConfig, c.Stiffness)
	case c.Viscosity <= 0 || c.Viscosity >= 1:
		return fmt.Errorf("%w: viscosity %g outside (0, 1)", ErrInvalidConfig, c.Viscosity)
	case c.MouseRadius <= 0:
		return fmt.Errorf("%w: mouse radius %g must be positive", ErrInvalidConfig, c.MouseRadius)
	case c.Debounce < 0:
		return fmt.Errorf("%w: negative debounce %v", ErrInvalidConfig, c.Debounce)
	case c.NormalZ <= 0:
		return fmt.Errorf("%w: normal z %g must be positive", ErrInvalidConfig, c.NormalZ)
	case c.HeightLimit < 0:
		return fmt.Errorf("%w: negative height limit %g", ErrInvalidConfig, c.HeightLimit)
	}
	return nil
}

// strength maps a forcing class to its displacement coefficient.
func (c Config) strength(class ForceClass) float32 {
	switch class {
	case ForceMove:
		return c.MoveStrength
	case ForceClick:
		return c.ClickStrength
	case ForceScroll:
		return c.ScrollStrength
	}
	return 0
}

// gridSize derives the simulation grid from a viewport, never below 1x1.
func (c Config) gridSize(viewW, viewH int) (int, int) {
	gw := viewW / c.Downscale
	gh := viewH / c.Downscale
	if gw < 1 {
		gw = 1
	}
	if gh < 1 {
		gh = 1
	}
	return gw, gh
}
