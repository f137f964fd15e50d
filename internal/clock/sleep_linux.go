package clock

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

var nanosleep = unix.Nanosleep

// Sleep blocks for d. A sleep interrupted by a signal resumes for the
// remaining time reported by the kernel.
func Sleep(d time.Duration) error {
	if d <= 0 {
		return nil
	}

	ts := unix.NsecToTimespec(int64(d))
	for {
		var rem unix.Timespec
		err := nanosleep(&ts, &rem)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EINTR) {
			return err
		}
		ts = rem
	}
}
