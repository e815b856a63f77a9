package clock

import "time"

// Clock provides the current instant so "now"-relative queries can be tested
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC, matching how fixture dates are parsed
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
