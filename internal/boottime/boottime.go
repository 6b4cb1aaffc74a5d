// Package boottime answers "when did this host last boot", the reference
// point the system monitor compares heartbeats against.
package boottime

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// Get queries the OS for the host's boot time.
func Get() (time.Time, error) {
	sec, err := host.BootTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("boottime: %w", err)
	}
	return time.Unix(int64(sec), 0), nil
}
