package water

import (
	"bytes"
	"math"
	"testing"
)

func TestShadePixelFlatSurface(t *testing.T) {
	p := DefaultConfig().ShadeParams()
	r, g, b, a := ShadePixel(0, 0, 0, p)
	if math.Abs(a-minAlpha) > 1e-12 {
		t.Errorf("alpha = %v, want %v", a, minAlpha)
	}
	spec := math.Pow(halfDir[2], p.SpecularExponent)
	want := [3]float64{
		waterTint[0]*tintWeight + spec*specularWeight,
		waterTint[1]*tintWeight + spec*specularWeight,
		waterTint[2]*tintWeight + spec*specularWeight,
	}
	got := [3]float64{r, g, b}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("channel %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShadePixelDisturbedIsOpaque(t *testing.T) {
	p := DefaultConfig().ShadeParams()
	_, _, _, flat := ShadePixel(0, 0, 0, p)
	_, _, _, rough := ShadePixel(-0.5, 0, 0, p)
	if rough <= flat {
		t.Errorf("disturbed alpha %v not above flat alpha %v", rough, flat)
	}
	if math.Abs(rough-(alphaGain+minAlpha)) > 1e-9 {
		t.Errorf("steep alpha = %v, want %v", rough, alphaGain+minAlpha)
	}
}

func TestShadeIsDeterministic(t *testing.T) {
	b := mustBuffer(t, 16, 9)
	seedField(b)
	before := append([]float32(nil), b.cells...)
	p := DefaultConfig().ShadeParams()

	first := make([]byte, 4*16*9)
	second := make([]byte, 4*16*9)
	if err := Shade(b, first, p); err != nil {
		t.Fatalf("Shade: %v", err)
	}
	if err := Shade(b, second, p); err != nil {
		t.Fatalf("Shade: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two shading passes over the same field differ")
	}
	for i := range before {
		if before[i] != b.cells[i] {
			t.Fatalf("Shade mutated field value %d", i)
		}
	}
}

func TestShadePremultipliesAlpha(t *testing.T) {
	b := mustBuffer(t, 4, 4)
	b.Set(1, 1, -1, 0)
	dst := make([]byte, 4*4*4)
	if err := Shade(b, dst, DefaultConfig().ShadeParams()); err != nil {
		t.Fatalf("Shade: %v", err)
	}
	for i := 0; i < len(dst); i += 4 {
		a := dst[i+3]
		for c := 0; c < 3; c++ {
			if dst[i+c] > a {
				t.Fatalf("pixel %d channel %d = %d exceeds alpha %d", i/4, c, dst[i+c], a)
			}
		}
	}
}

func TestShadeRejectsShortTarget(t *testing.T) {
	b := mustBuffer(t, 4, 4)
	if err := Shade(b, make([]byte, 10), DefaultConfig().ShadeParams()); err == nil {
		t.Error("Shade into a short slice succeeded")
	}
}

// TestShadeSamplesRightAndRowAbove raises one cell and checks which pixels
// see it: the cell itself, its left neighbor (through hRight) and the pixel
// below it (through hUp). The pixels to its right and above must stay flat.
func TestShadeSamplesRightAndRowAbove(t *testing.T) {
	const w, h = 5, 5
	p := DefaultConfig().ShadeParams()

	flat := make([]byte, 4*w*h)
	if err := Shade(mustBuffer(t, w, h), flat, p); err != nil {
		t.Fatalf("Shade: %v", err)
	}
	b := mustBuffer(t, w, h)
	b.Set(2, 2, 0.5, 0)
	got := make([]byte, 4*w*h)
	if err := Shade(b, got, p); err != nil {
		t.Fatalf("Shade: %v", err)
	}

	pixel := func(buf []byte, x, y int) []byte {
		i := 4 * (y*w + x)
		return buf[i : i+4]
	}
	tests := []struct {
		name    string
		x, y    int
		changed bool
	}{
		{"raised cell", 2, 2, true},
		{"left neighbor", 1, 2, true},
		{"row below", 2, 3, true},
		{"right neighbor", 3, 2, false},
		{"row above", 2, 1, false},
		{"far corner", 0, 0, false},
	}
	for _, tt := range tests {
		differs := !bytes.Equal(pixel(got, tt.x, tt.y), pixel(flat, tt.x, tt.y))
		if differs != tt.changed {
			t.Errorf("%s (%d,%d): changed = %v, want %v", tt.name, tt.x, tt.y, differs, tt.changed)
		}
	}
}
