package water

import "time"

// TimeProvider supplies the current time to the input aggregator.
type TimeProvider interface {
	Now() time.Time
}

// systemClock reads the wall clock with its monotonic component.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
