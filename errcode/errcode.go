package errcode

import (
	"errors"

	"rtccode-go/drivers/pcf8523"
)

// Code is a stable, operator-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	InvalidField Code = "invalid_field"     // calendar/alarm value out of range
	EncodeRange  Code = "encode_range"      // value not representable in BCD
	InvalidFreq  Code = "invalid_frequency" // unknown CLKOUT code
	BadRequest   Code = "bad_request"       // malformed CLI or config input

	BusOpen Code = "bus_open" // host bus unavailable
	BusIO   Code = "bus_io"   // bus transaction failed

	Error Code = "error" // generic fallback
)

// E is an optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps pcf8523 driver errors to a Code. Anything the driver did
// not type itself came from the bus layer and is reported as such.
func MapDriverErr(err error) Code {
	if err == nil {
		return OK
	}
	var fe *pcf8523.FieldError
	if errors.As(err, &fe) {
		return InvalidField
	}
	var ee *pcf8523.EncodeError
	if errors.As(err, &ee) {
		return EncodeRange
	}
	if errors.Is(err, pcf8523.ErrInvalidFrequency) {
		return InvalidFreq
	}
	if c := Of(err); c != Error {
		return c
	}
	return BusIO
}
