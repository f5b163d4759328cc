package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type dripKind int

const (
	dripClick dripKind = iota
	dripScroll
)

// dripSound plays short sine tones through the default speaker. A nil
// *dripSound is silent.
type dripSound struct{}

func newDripSound() (*dripSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &dripSound{}, nil
}

func (d *dripSound) play(kind dripKind) {
	if d == nil {
		return
	}
	freq, dur := 660.0, 60*time.Millisecond
	if kind == dripScroll {
		freq, dur = 440.0, 40*time.Millisecond
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	tone := beep.Take(sampleRate.N(dur), sine)
	speaker.Play(&effects.Volume{Streamer: tone, Base: 2, Volume: -2})
}

func (d *dripSound) close() {
	if d == nil {
		return
	}
	speaker.Close()
}
