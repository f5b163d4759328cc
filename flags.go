package main

import "flag"

// Command-line flags that control optional rendering, simulation, and runtime
// behavior. The simulation constants themselves are fixed at start-up.
var (
	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation timing overlay")

	// openCLFlag runs the step on an OpenCL device when the binary was built
	// with -tags opencl.
	openCLFlag = flag.Bool("opencl", false, "step the water on an OpenCL device (falls back to CPU)")

	// workersFlag sets the CPU stepper goroutine count; 0 uses every CPU.
	workersFlag = flag.Int("workers", 0, "CPU step goroutines (0 = NumCPU)")

	// heightLimitFlag clamps height and velocity after each step.
	heightLimitFlag = flag.Float64("height-limit", 0, "clamp height and velocity to ±limit (0 disables)")

	// transparentFlag draws the water over a transparent window.
	transparentFlag = flag.Bool("transparent", false, "use a transparent window so only the ripples are visible")

	// pixelRatioFlag scales the viewport before the half-resolution grid is derived.
	pixelRatioFlag = flag.Float64("pixel-ratio", 1, "viewport pixel ratio (1-2)")

	// enableAudioFlag voices the height and speed of the water under the pointer.
	enableAudioFlag = flag.Bool("enable-audio", false, "play a tone that follows the water under the pointer")

	// recordDefaultPGO triggers a scripted pointer walk to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "wander and click for 15s while capturing default.pgo")
)
