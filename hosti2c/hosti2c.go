// Package hosti2c adapts a Linux I²C bus to the drivers.I2C transfer
// interface, so register-level chip drivers run unchanged against
// /dev/i2c-* devices.
package hosti2c

import (
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"rtccode-go/errcode"
)

// Compile-time check.
var _ drivers.I2C = (*Bus)(nil)

// Bus owns an open host I²C port. A Bus must be closed when no longer used;
// it is meant for a single owner and performs no internal locking beyond what
// the kernel provides per transaction.
type Bus struct {
	port i2c.BusCloser
}

// Open initializes the host drivers and opens the named bus ("1",
// "/dev/i2c-1", or "" for the first one available).
func Open(name string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, &errcode.E{C: errcode.BusOpen, Op: "hosti2c.Open", Msg: "host init failed", Err: err}
	}
	port, err := i2creg.Open(name)
	if err != nil {
		return nil, &errcode.E{C: errcode.BusOpen, Op: "hosti2c.Open", Msg: name, Err: err}
	}
	return &Bus{port: port}, nil
}

// Tx implements drivers.I2C: a write of w followed, without releasing the
// bus, by a read into r. Either slice may be empty.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if err := b.port.Tx(addr, w, r); err != nil {
		return &errcode.E{C: errcode.BusIO, Op: "hosti2c.Tx", Err: err}
	}
	return nil
}

// Close frees the underlying port.
func (b *Bus) Close() error {
	return b.port.Close()
}
