package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw presents the shaded half-resolution field stretched over the window
// and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if !*transparentFlag {
		screen.Fill(pageBackground)
	}
	if g.sim.Running() && g.sim.Stats().Frames > 0 {
		gw, gh := g.sim.GridSize()
		pixels := g.sim.Pixels()
		if len(pixels) == 4*gw*gh {
			g.ensureFrameImage(gw, gh)
			g.frameImg.WritePixels(pixels)
			sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(sw)/float64(gw), float64(sh)/float64(gh))
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(g.frameImg, op)
		}
	}

	if *debugFlag {
		g.drawDebugOverlay(screen)
	}
}

// ensureFrameImage keeps an offscreen image matching the grid size.
func (g *Game) ensureFrameImage(w, h int) {
	if g.frameImg != nil {
		b := g.frameImg.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		g.frameImg.Deallocate()
	}
	g.frameImg = ebiten.NewImage(w, h)
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	st := g.sim.Stats()
	tps := ebiten.ActualTPS()
	if tps < 0 {
		tps = 0
	}
	status := st.Backend
	if g.disabled {
		status = "disabled"
	}
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nGrid: %dx%d (%s)\nStep: %.2f ms  Shade: %.2f ms  Frame: %.2f ms\nForce: %s",
		ebiten.ActualFPS(), tps,
		st.GridW, st.GridH, status,
		st.StepTime.Seconds()*1000, st.ShadeTime.Seconds()*1000, g.lastFrameDuration.Seconds()*1000,
		st.Signal.Class)
	ebitenutil.DebugPrint(screen, msg)
}

// Layout reports the logical screen size; Update turns size changes into
// simulation resizes at the next frame.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
