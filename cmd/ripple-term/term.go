package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"ripple/internal/water"
)

const (
	frameInterval = 16 * time.Millisecond

	// Each character cell covers a 2x4 block of viewport pixels so that,
	// after the simulation's half-resolution downscale, one cell maps to
	// two vertically stacked field cells.
	cellViewW = 2
	cellViewH = 4
)

var background = [3]uint8{0x0b, 0x10, 0x1a}

type term struct {
	screen tcell.Screen
	sim    *water.Simulation
	sound  *dripSound

	cols, rows int
	buttons    tcell.ButtonMask
}

func newTerm(sim *water.Simulation, withSound bool) (*term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	t := &term{screen: screen, sim: sim}
	t.cols, t.rows = screen.Size()

	if withSound {
		s, err := newDripSound()
		if err != nil {
			// Non-fatal, the water runs silently
			log.Printf("Audio initialization failed: %v", err)
		} else {
			t.sound = s
		}
	}
	return t, nil
}

func (t *term) run() error {
	if err := t.sim.Start(t.cols*cellViewW, t.rows*cellViewH); err != nil {
		return err
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(t.screen, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := t.sim.Frame(); err != nil {
				return err
			}
			t.draw()
		}
	}
}

// pumpEvents forwards screen events until the screen is finalized or done
// is closed.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent forwards terminal input to the aggregator; it returns false
// when the user asks to quit.
func (t *term) handleEvent(ev tcell.Event) bool {
	in := t.sim.Input()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		x, y := cellToField(cx, cy, t.cols, t.rows)
		in.PointerMove(x, y)
		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0 {
			in.PointerDown(x, y)
			t.sound.play(dripClick)
		}
		if buttons&(tcell.WheelUp|tcell.WheelDown) != 0 {
			in.Scroll()
			t.sound.play(dripScroll)
		}
		t.buttons = buttons

	case *tcell.EventFocus:
		if !ev.Focused {
			in.PointerLeave()
		}

	case *tcell.EventResize:
		t.cols, t.rows = t.screen.Size()
		t.sim.Resize(t.cols*cellViewW, t.rows*cellViewH)
		t.screen.Sync()
	}
	return true
}

// cellToField maps the center of character cell (cx, cy) to normalized
// field coordinates for a cols x rows terminal.
func cellToField(cx, cy, cols, rows int) (float64, float64) {
	if cols < 1 || rows < 1 {
		return 0.5, 0.5
	}
	return (float64(cx) + 0.5) / float64(cols), (float64(cy) + 0.5) / float64(rows)
}

// draw renders two field rows per terminal row with upper half blocks: the
// foreground is the top row and the background the bottom row.
func (t *term) draw() {
	gw, gh := t.sim.GridSize()
	pixels := t.sim.Pixels()
	if gw == 0 || gh == 0 || len(pixels) != 4*gw*gh {
		return
	}
	for cy := 0; cy < t.rows; cy++ {
		for cx := 0; cx < t.cols; cx++ {
			top := sampleColor(pixels, gw, gh, cx, 2*cy, t.cols, 2*t.rows)
			bottom := sampleColor(pixels, gw, gh, cx, 2*cy+1, t.cols, 2*t.rows)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
	t.screen.Show()
}

// sampleColor picks the nearest field pixel for sub-cell (sx, sy) of a
// cols x subRows lattice and composites it over the page background.
func sampleColor(pixels []byte, gw, gh, sx, sy, cols, subRows int) tcell.Color {
	px := sx * gw / cols
	py := sy * gh / subRows
	if px >= gw {
		px = gw - 1
	}
	if py >= gh {
		py = gh - 1
	}
	i := 4 * (py*gw + px)
	r, g, b := composite(pixels[i], pixels[i+1], pixels[i+2], pixels[i+3], background)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// composite blends a premultiplied pixel over an opaque background.
func composite(r, g, b, a uint8, bg [3]uint8) (uint8, uint8, uint8) {
	inv := 255 - uint32(a)
	blend := func(c, base uint8) uint8 {
		v := uint32(c) + (uint32(base)*inv+127)/255
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return blend(r, bg[0]), blend(g, bg[1]), blend(b, bg[2])
}

func (t *term) cleanup() {
	t.sim.Stop()
	t.sound.close()
	t.screen.Fini()
}
