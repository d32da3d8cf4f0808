package clock

import (
	"time"

	"github.com/sophialabs/harcleaner/internal/infrastructure/ports"
)

var _ ports.Clock = (*RealClock)(nil)

// RealClock implements ports.Clock using the system clock in UTC.
type RealClock struct{}

// New creates a new RealClock.
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time { return time.Now().UTC() }

// Since returns the time elapsed since start according to clk.
func Since(clk ports.Clock, start time.Time) time.Duration {
	return clk.Now().Sub(start)
}
