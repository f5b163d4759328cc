package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestCellToField(t *testing.T) {
	tests := []struct {
		cx, cy, cols, rows int
		wantX, wantY       float64
	}{
		{0, 0, 10, 4, 0.05, 0.125},
		{9, 3, 10, 4, 0.95, 0.875},
		{4, 1, 8, 2, 0.5625, 0.75},
		{3, 3, 0, 0, 0.5, 0.5},
	}
	for _, tt := range tests {
		x, y := cellToField(tt.cx, tt.cy, tt.cols, tt.rows)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("cellToField(%d,%d,%d,%d) = (%v,%v), want (%v,%v)",
				tt.cx, tt.cy, tt.cols, tt.rows, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestComposite(t *testing.T) {
	bg := [3]uint8{10, 20, 30}

	r, g, b := composite(0, 0, 0, 0, bg)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("transparent pixel = (%d,%d,%d), want background", r, g, b)
	}

	r, g, b = composite(200, 100, 50, 255, bg)
	if r != 200 || g != 100 || b != 50 {
		t.Errorf("opaque pixel = (%d,%d,%d), want (200,100,50)", r, g, b)
	}

	r, _, _ = composite(250, 0, 0, 128, [3]uint8{255, 0, 0})
	if r != 255 {
		t.Errorf("saturated blend = %d, want 255", r)
	}
}

func TestSampleColorNearest(t *testing.T) {
	// 2x2 grid: top-left opaque white, rest transparent.
	pixels := make([]byte, 16)
	pixels[0], pixels[1], pixels[2], pixels[3] = 255, 255, 255, 255

	// A 2x1 terminal has a 2x2 lattice of half cells, one per pixel.
	if c := sampleColor(pixels, 2, 2, 0, 0, 2, 2); c.Hex() != 0xffffff {
		t.Errorf("top-left = %06x, want ffffff", c.Hex())
	}
	want := int32(background[0])<<16 | int32(background[1])<<8 | int32(background[2])
	if c := sampleColor(pixels, 2, 2, 1, 1, 2, 2); c.Hex() != want {
		t.Errorf("bottom-right = %06x, want %06x", c.Hex(), want)
	}
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()

	// Nobody reads events, so the pump blocks on its first send.
	events := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pumpEvents(screen, events, done)
		close(finished)
	}()
	if err := screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}

	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("event pump still blocked after done was closed")
	}
}

func TestPumpEventsStopsAfterFini(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	finished := make(chan struct{})
	go func() {
		pumpEvents(screen, make(chan tcell.Event, 1), make(chan struct{}))
		close(finished)
	}()
	screen.Fini()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("event pump still running after Fini")
	}
}
