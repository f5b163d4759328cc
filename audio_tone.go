package main

import (
	"math"
	"sync"
)

// rippleTone is a sine voice for ebiten's audio player. Its loudness follows
// the water height under the pointer and its pitch the vertical speed of
// the surface there.
type rippleTone struct {
	mu         sync.Mutex
	sampleRate float64
	targetAmp  float64
	targetFreq float64

	// Read-side state, only touched by the audio goroutine under mu.
	amp   float64
	freq  float64
	phase float64
}

func newRippleTone(sampleRate int) *rippleTone {
	return &rippleTone{
		sampleRate: float64(sampleRate),
		targetFreq: toneBaseHz,
		freq:       toneBaseHz,
	}
}

// SetSurface retunes the voice from one field cell. A resting surface is
// silent.
func (t *rippleTone) SetSurface(height, velocity float32) {
	amp := math.Min(math.Abs(float64(height))*audioGain, 1)
	sweep := math.Min(math.Abs(float64(velocity))*toneVelocityScale, 1)
	t.mu.Lock()
	t.targetAmp = amp
	t.targetFreq = toneBaseHz + sweep*toneSweepHz
	t.mu.Unlock()
}

// Read fills p with whole 16-bit little-endian stereo frames. Amplitude and
// pitch glide toward their targets sample by sample so frame-rate updates
// never click.
func (t *rippleTone) Read(p []byte) (int, error) {
	n := len(p) - len(p)%4
	if n == 0 {
		return 0, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	step := 2 * math.Pi / t.sampleRate
	for i := 0; i < n; i += 4 {
		t.amp += (t.targetAmp - t.amp) * toneGlide
		t.freq += (t.targetFreq - t.freq) * toneGlide
		t.phase += t.freq * step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
		v := int16(t.amp * math.Sin(t.phase) * 32767)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return n, nil
}

func (t *rippleTone) Close() error {
	return nil
}
