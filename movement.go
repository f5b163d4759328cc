package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollPointer forwards cursor, button, touch, and wheel state to the
// simulation's input aggregator.
func (g *Game) pollPointer() {
	in := g.sim.Input()
	cx, cy := ebiten.CursorPosition()
	inside := cx >= 0 && cy >= 0 && cx < g.screenW && cy < g.screenH
	if inside {
		x, y := g.normalize(cx, cy)
		if !g.cursorInside || cx != g.cursorX || cy != g.cursorY {
			in.PointerMove(x, y)
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			in.PointerDown(x, y)
		}
	} else if g.cursorInside {
		in.PointerLeave()
	}
	g.cursorX, g.cursorY, g.cursorInside = cx, cy, inside

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		in.PointerDown(g.normalize(tx, ty))
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		in.Scroll()
	}
}

// normalize maps logical screen pixels to field space.
func (g *Game) normalize(x, y int) (float64, float64) {
	return float64(x) / float64(g.screenW), float64(y) / float64(g.screenH)
}

// enableAutoWalk schedules scripted pointer input for a limited duration.
func (g *Game) enableAutoWalk(duration time.Duration) {
	g.autoWalk = true
	g.autoWalkDeadline = time.Now().Add(duration)
	if g.autoWalkRand == nil {
		g.autoWalkRand = rand.New(rand.NewSource(time.Now().UnixNano() + 3))
	}
	g.autoWalkFrameCount = 0
	g.autoWalkTick = 0
}

// stepAutoWalk moves a virtual pointer around the window, clicking and
// scrolling at fixed intervals.
func (g *Game) stepAutoWalk() {
	if time.Now().After(g.autoWalkDeadline) {
		g.autoWalk = false
		g.sim.Input().PointerLeave()
		return
	}
	for attempts := 0; attempts < 5; attempts++ {
		if g.autoWalkFrameCount <= 0 {
			g.randomizeAutoWalkDirection()
		}
		nextX := g.autoWalkX + g.autoWalkDirX*autoWalkSpeed
		nextY := g.autoWalkY + g.autoWalkDirY*autoWalkSpeed
		if nextX > 0 && nextX < 1 && nextY > 0 && nextY < 1 {
			g.autoWalkX, g.autoWalkY = nextX, nextY
			g.autoWalkFrameCount--
			break
		}
		g.autoWalkFrameCount = 0
	}

	in := g.sim.Input()
	in.PointerMove(g.autoWalkX, g.autoWalkY)
	g.autoWalkTick++
	if g.autoWalkTick%autoWalkClickEvery == 0 {
		in.PointerDown(g.autoWalkX, g.autoWalkY)
	}
	if g.autoWalkTick%autoWalkScrollEvery == 0 {
		in.Scroll()
	}
}

// randomizeAutoWalkDirection chooses a new heading for automatic walking.
func (g *Game) randomizeAutoWalkDirection() {
	angle := g.autoWalkRand.Float64() * 2 * math.Pi
	g.autoWalkDirX = math.Cos(angle)
	g.autoWalkDirY = math.Sin(angle)
	g.autoWalkFrameCount = 20 + g.autoWalkRand.Intn(50)
}
