//go:build !linux

package clock

import "time"

func Sleep(d time.Duration) error {
	if d > 0 {
		time.Sleep(d)
	}
	return nil
}
