package water

import "math"

// forceFootprint is the window of cells a forcing signal can reach during
// one step, with the parameters needed to attenuate by distance.
type forceFootprint struct {
	active   bool
	mx, my   float64
	aspect   float64
	radius   float64
	strength float64
	width    int
	height   int
	x0, x1   int
	y0, y1   int
}

// newForceFootprint bounds the aspect-corrected disc of the signal to grid
// rows and columns. Idle signals and zero strengths yield an inactive
// footprint.
func newForceFootprint(sig ForcingSignal, cfg Config, width, height int) forceFootprint {
	strength := cfg.strength(sig.Class)
	if strength == 0 || width < 1 || height < 1 {
		return forceFootprint{}
	}
	aspect := float64(width) / float64(height)
	r := cfg.MouseRadius
	fp := forceFootprint{
		active:   true,
		mx:       sig.X,
		my:       sig.Y,
		aspect:   aspect,
		radius:   r,
		strength: float64(strength),
		width:    width,
		height:   height,
	}
	// Cell centers sit at (i+0.5)/n, so i = n*pos - 0.5.
	fp.x0 = int(math.Floor(float64(width)*(sig.X-r/aspect) - 0.5))
	fp.x1 = int(math.Ceil(float64(width)*(sig.X+r/aspect) - 0.5))
	fp.y0 = int(math.Floor(float64(height)*(sig.Y-r) - 0.5))
	fp.y1 = int(math.Ceil(float64(height)*(sig.Y+r) - 0.5))
	if fp.x1 < 0 || fp.y1 < 0 || fp.x0 > width-1 || fp.y0 > height-1 {
		return forceFootprint{}
	}
	fp.x0 = clampCoord(fp.x0, 0, width-1)
	fp.x1 = clampCoord(fp.x1, 0, width-1)
	fp.y0 = clampCoord(fp.y0, 0, height-1)
	fp.y1 = clampCoord(fp.y1, 0, height-1)
	return fp
}

// coversRow reports whether row y intersects the footprint.
func (f *forceFootprint) coversRow(y int) bool {
	return f.active && y >= f.y0 && y <= f.y1
}

// displacement returns how much height the signal removes from cell (x, y):
// strength at the center, falling linearly to zero at the radius.
func (f *forceFootprint) displacement(x, y int) float32 {
	u, v := cellCenter(x, y, f.width, f.height)
	dx := (u - f.mx) * f.aspect
	dy := v - f.my
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist >= f.radius {
		return 0
	}
	return float32(f.strength * (f.radius - dist) / f.radius)
}
