package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/Draft-Lab/panela-tracker/internal/common/clock Clock

// Clock is the time source for every timestamp the tracker persists.
type Clock interface {
	Now() time.Time
}

// UTCClock reads the system clock and normalizes it to UTC with the
// monotonic reading stripped, so values survive a storage round trip unchanged.
type UTCClock struct{}

// New returns the system clock
func New() *UTCClock {
	return &UTCClock{}
}

// Now returns the current time in UTC
func (c *UTCClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
