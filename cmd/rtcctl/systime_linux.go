//go:build linux

package main

import (
	"time"

	"golang.org/x/sys/unix"
)

// setSysTime sets the kernel clock. Needs CAP_SYS_TIME.
func setSysTime(t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	return unix.Settimeofday(&tv)
}
