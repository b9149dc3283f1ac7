//go:build !linux

package main

import (
	"errors"
	"time"
)

func setSysTime(time.Time) error {
	return errors.New("setting the system clock is only supported on linux")
}
