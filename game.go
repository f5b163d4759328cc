package main

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"ripple/internal/water"
)

// Game adapts a water.Simulation to ebiten's frame loop: Update feeds input
// and advances one frame, Draw presents the shaded field.
type Game struct {
	sim        *water.Simulation
	pixelRatio float64

	// Logical screen size reported by Layout, and the viewport the
	// simulation was last sized for.
	screenW, screenH int
	viewW, viewH     int
	disabled         bool

	frameImg *ebiten.Image

	cursorX, cursorY int
	cursorInside     bool

	autoWalk           bool
	autoWalkDeadline   time.Time
	autoWalkRand       *rand.Rand
	autoWalkX          float64
	autoWalkY          float64
	autoWalkDirX       float64
	autoWalkDirY       float64
	autoWalkFrameCount int
	autoWalkTick       int
	stopRecording      func()

	lastFrameDuration time.Duration

	audioCtx    *audio.Context
	audioStream *rippleTone
	audioPlayer *audio.Player
}

// newGame wraps sim; the simulation starts on the first Update once the
// window size is known.
func newGame(sim *water.Simulation, pixelRatio float64) *Game {
	g := &Game{
		sim:          sim,
		pixelRatio:   pixelRatio,
		autoWalkRand: rand.New(rand.NewSource(time.Now().UnixNano() + 2)),
		autoWalkX:    0.5,
		autoWalkY:    0.5,
	}
	if *enableAudioFlag {
		g.startAudio()
	}
	return g
}

// startAudio opens the audio device; failures leave the game silent.
func (g *Game) startAudio() {
	ctx := audio.NewContext(audioSampleRate)
	g.audioCtx = ctx
	stream := newRippleTone(audioSampleRate)
	g.audioStream = stream
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		log.Printf("Audio player creation failed: %v", err)
		return
	}
	g.audioPlayer = player
	g.audioPlayer.SetBufferSize(audioPlayerBufferLatency)
	g.audioPlayer.Play()
}

// Update feeds input into the simulation and advances it by one frame.
func (g *Game) Update() error {
	if g.stopRecording != nil && !g.autoWalk {
		g.stopRecording()
		return ebiten.Termination
	}
	if g.disabled || g.screenW == 0 || g.screenH == 0 {
		return nil
	}
	if err := g.syncViewport(); err != nil {
		g.disable(err)
		return nil
	}

	if g.autoWalk {
		g.stepAutoWalk()
	} else {
		g.pollPointer()
	}

	start := time.Now()
	if err := g.sim.Frame(); err != nil {
		g.disable(err)
		return nil
	}
	g.lastFrameDuration = time.Since(start)

	if g.audioStream != nil {
		g.audioStream.SetSurface(g.surfaceUnderPointer())
	}
	return nil
}

// syncViewport starts the simulation on the first frame and forwards window
// size changes afterwards.
func (g *Game) syncViewport() error {
	w := int(math.Round(float64(g.screenW) * g.pixelRatio))
	h := int(math.Round(float64(g.screenH) * g.pixelRatio))
	if w == g.viewW && h == g.viewH && g.sim.Running() {
		return nil
	}
	if !g.sim.Running() {
		if err := g.sim.Start(w, h); err != nil {
			return err
		}
	} else {
		g.sim.Resize(w, h)
	}
	g.viewW, g.viewH = w, h
	return nil
}

// disable stops the effect after an error; the window keeps running with
// only the background.
func (g *Game) disable(err error) {
	log.Printf("Water effect disabled: %v", err)
	g.disabled = true
	g.sim.Stop()
}

// surfaceUnderPointer samples height and velocity at the last forcing
// position; an idle or off-field pointer reads a resting surface.
func (g *Game) surfaceUnderPointer() (float32, float32) {
	field := g.sim.Field()
	if field == nil {
		return 0, 0
	}
	sig := g.sim.Stats().Signal
	if sig.Class == water.ForceIdle {
		return 0, 0
	}
	x := int(sig.X * float64(field.Width()))
	y := int(sig.Y * float64(field.Height()))
	if x < 0 || y < 0 || x >= field.Width() || y >= field.Height() {
		return 0, 0
	}
	return field.HeightAt(x, y), field.VelocityAt(x, y)
}

// Close stops the simulation and audio after the window closes.
func (g *Game) Close() {
	if g.audioPlayer != nil {
		if err := g.audioPlayer.Close(); err != nil {
			log.Printf("Closing audio player: %v", err)
		}
	}
	g.sim.Stop()
	if g.stopRecording != nil {
		g.stopRecording()
	}
}
