package clock

import "time"

// Clock reports a monotonic offset from an arbitrary, fixed epoch.
type Clock interface {
	Now() time.Duration
}

// Monotonic reads Go's monotonic clock, which is immune to wall-clock
// adjustments.
type Monotonic struct {
	epoch time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{epoch: time.Now()}
}

func (m *Monotonic) Now() time.Duration {
	return time.Since(m.epoch)
}

// BusyWait spins on c until d has elapsed and returns the number of spin
// iterations. It never yields the CPU.
func BusyWait(c Clock, d time.Duration) int {
	spins := 0
	start := c.Now()
	for c.Now()-start < d {
		spins++
	}
	return spins
}
