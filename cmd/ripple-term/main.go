// Command ripple-term runs the water surface in a 24-bit color terminal,
// two field rows per character cell.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"ripple/internal/water"
)

var (
	soundFlag       = flag.Bool("sound", false, "play a drip tone on clicks and scrolls")
	workersFlag     = flag.Int("workers", 0, "CPU step goroutines (0 = NumCPU)")
	heightLimitFlag = flag.Float64("height-limit", 0, "clamp height and velocity to ±limit (0 disables)")
	logFlag         = flag.String("log", "", "append diagnostics to this file")
)

func main() {
	flag.Parse()

	// The screen owns stdout and stderr while running.
	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := water.DefaultConfig()
	cfg.HeightLimit = float32(*heightLimitFlag)
	if *workersFlag > 0 {
		cfg.Workers = *workersFlag
	}
	sim, err := water.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	t, err := newTerm(sim, *soundFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	runErr := t.run()
	t.cleanup()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Water effect stopped: %v\n", runErr)
		os.Exit(1)
	}
}
