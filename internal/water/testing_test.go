package water

import (
	"io"
	"log"
	"math"
	"testing"
	"time"
)

// mockClock is a settable TimeProvider for tests.
type mockClock struct {
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time { return c.now }

func (c *mockClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func mustBuffer(t testing.TB, w, h int) *FieldBuffer {
	t.Helper()
	b, err := newFieldBuffer(w, h)
	if err != nil {
		t.Fatalf("newFieldBuffer(%d, %d): %v", w, h, err)
	}
	return b
}

// heightStats returns the mean height and the summed absolute deviation from it.
func heightStats(b *FieldBuffer) (mean, deviation float64) {
	n := float64(b.width * b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			mean += float64(b.HeightAt(x, y))
		}
	}
	mean /= n
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			deviation += math.Abs(float64(b.HeightAt(x, y)) - mean)
		}
	}
	return mean, deviation
}

// energy sums squared height deviations and squared velocities.
func energy(b *FieldBuffer) float64 {
	mean, _ := heightStats(b)
	var e float64
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			dh := float64(b.HeightAt(x, y)) - mean
			v := float64(b.VelocityAt(x, y))
			e += dh*dh + v*v
		}
	}
	return e
}

// deviationL2 is the Euclidean norm of the height deviation from the mean.
func deviationL2(b *FieldBuffer) float64 {
	mean, _ := heightStats(b)
	var sum float64
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			d := float64(b.HeightAt(x, y)) - mean
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}
