package water

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid water config")
	// ErrInvalidViewport is returned for non-positive viewport sizes.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrUnsupportedFormat means float32 grid storage could not be allocated.
	ErrUnsupportedFormat = errors.New("floating-point field storage unavailable")
	// ErrBackendUnavailable means the requested step backend cannot run here.
	ErrBackendUnavailable = errors.New("step backend unavailable")
	// ErrNotStarted is returned by Frame outside Start/Stop.
	ErrNotStarted = errors.New("simulation not started")
)
