package water

import (
	"fmt"
	"math"
)

// ShadeParams tune the surface lighting.
type ShadeParams struct {
	NormalZ          float64
	SpecularExponent float64
}

// ShadeParams extracts the lighting constants of a configuration.
func (c Config) ShadeParams() ShadeParams {
	return ShadeParams{NormalZ: c.NormalZ, SpecularExponent: c.SpecularExponent}
}

const (
	tintWeight     = 0.15
	specularWeight = 0.8
	turbulenceEdge = 0.002
	alphaGain      = 0.8
	minAlpha       = 0.02
)

var (
	waterTint = [3]float64{0.0, 0.6, 0.8}
	halfDir   = lightingHalfVector()
)

// lightingHalfVector combines the fixed light and view directions.
func lightingHalfVector() [3]float64 {
	lx, ly, lz := normalize3(-0.5, 0.5, 1.0)
	hx, hy, hz := normalize3(lx, ly, lz+1.0)
	return [3]float64{hx, hy, hz}
}

func normalize3(x, y, z float64) (float64, float64, float64) {
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 1
	}
	return x / l, y / l, z / l
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// ShadePixel lights one pixel from its height and the heights of the next
// column and the row above. The returned color is not premultiplied.
func ShadePixel(h, hRight, hUp float64, p ShadeParams) (r, g, b, a float64) {
	nx, ny, nz := normalize3(h-hRight, h-hUp, p.NormalZ)
	d := nx*halfDir[0] + ny*halfDir[1] + nz*halfDir[2]
	spec := math.Pow(math.Max(d, 0), p.SpecularExponent)

	r = waterTint[0]*tintWeight + spec*specularWeight
	g = waterTint[1]*tintWeight + spec*specularWeight
	b = waterTint[2]*tintWeight + spec*specularWeight

	turbulence := 1 - nz
	a = math.Min(smoothstep(0, turbulenceEdge, turbulence)*alphaGain+minAlpha, 1)
	return r, g, b, a
}

// Shade renders buf into dst as premultiplied RGBA8, one pixel per cell.
// It only reads the field.
func Shade(buf *FieldBuffer, dst []byte, p ShadeParams) error {
	w, h := buf.width, buf.height
	if len(dst) < 4*w*h {
		return fmt.Errorf("shade target holds %d bytes, need %d", len(dst), 4*w*h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := float64(buf.HeightAt(x, y))
			right := float64(buf.clampedHeight(x+1, y))
			up := float64(buf.clampedHeight(x, y-1))
			r, g, b, a := ShadePixel(c, right, up, p)
			i := 4 * (y*w + x)
			dst[i] = toByte(r * a)
			dst[i+1] = toByte(g * a)
			dst[i+2] = toByte(b * a)
			dst[i+3] = toByte(a)
		}
	}
	return nil
}

func toByte(v float64) byte {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
