package main

import (
	"errors"
	"flag"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"ripple/internal/water"
)

func main() {
	flag.Parse()

	cfg := water.DefaultConfig()
	cfg.HeightLimit = float32(*heightLimitFlag)
	if *workersFlag > 0 {
		cfg.Workers = *workersFlag
	}
	opts := []water.Option{}
	if *openCLFlag {
		opts = append(opts, water.WithStepper(openCLWithFallback))
	}
	sim, err := water.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Water configuration rejected: %v", err)
	}

	ratio := math.Max(minPixelRatio, math.Min(maxPixelRatio, *pixelRatioFlag))
	g := newGame(sim, ratio)
	defer g.Close()

	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording(pgoProfilePath)
		if err != nil {
			log.Fatalf("PGO recording failed: %v", err)
		}
		g.stopRecording = stop
		g.enableAutoWalk(pgoRecordDuration)
	}

	ebiten.SetWindowSize(defaultWindowW, defaultWindowH)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	runOpts := &ebiten.RunGameOptions{ScreenTransparent: *transparentFlag}
	if err := ebiten.RunGameWithOptions(g, runOpts); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("Window closed with error: %v", err)
	}
}

// openCLWithFallback prefers the OpenCL stepper and falls back to the CPU
// pool when no device or driver is present.
func openCLWithFallback(cfg water.Config) (water.Stepper, error) {
	s, err := water.NewOpenCLStepper(cfg)
	if err != nil {
		log.Printf("OpenCL initialization failed, using CPU stepper: %v", err)
		return water.NewCPUStepper(cfg)
	}
	log.Printf("OpenCL solver enabled (%s)", s.Name())
	return s, nil
}
