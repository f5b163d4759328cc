package main

import (
	"image/color"
	"time"
)

// Window, audio, and scripted-input constants for the desktop front-end. The
// simulation constants live in water.DefaultConfig.
const (
	defaultWindowW           = 1280
	defaultWindowH           = 720
	windowTitle              = "Water Ripple"
	minPixelRatio            = 1.0
	maxPixelRatio            = 2.0
	pgoRecordDuration        = 15 * time.Second
	pgoProfilePath           = "default.pgo"
	autoWalkSpeed            = 0.006
	autoWalkClickEvery       = 40
	autoWalkScrollEvery      = 150
	audioSampleRate          = 48000
	audioPlayerBufferLatency = 80 * time.Millisecond
	audioGain                = 0.5
	toneBaseHz               = 180.0
	toneSweepHz              = 540.0
	toneVelocityScale        = 8.0
	toneGlide                = 0.002
)

// pageBackground is drawn under the water when the window is opaque.
var pageBackground = color.RGBA{0x0b, 0x10, 0x1a, 0xff}
