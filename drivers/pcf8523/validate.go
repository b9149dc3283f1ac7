package pcf8523

import (
	"errors"
	"strconv"
)

// ErrInvalidFrequency is returned for CLKOUT codes outside the documented set.
var ErrInvalidFrequency = errors.New("pcf8523: unknown CLKOUT frequency code")

// FieldError reports a calendar or alarm value outside its documented range.
// It is raised before any bus transaction is attempted.
type FieldError struct {
	Field Field
	Value int
}

func (e *FieldError) Error() string {
	return "pcf8523: invalid " + e.Field.String() + " " + strconv.Itoa(e.Value)
}

// EncodeError reports a value not representable as two BCD digits. Reaching
// it through the public API means an upstream programming error, since range
// validation runs first.
type EncodeError struct {
	Value int
}

func (e *EncodeError) Error() string {
	return "pcf8523: value " + strconv.Itoa(e.Value) + " not BCD-encodable"
}

// Fields is a partial calendar update. Nil members are skipped on write.
type Fields struct {
	Seconds *int
	Minutes *int
	Hours   *int
	Day     *int
	Month   *int
	Year    *int
	Weekday *int
}

// Int is a convenience for building Fields and Alarm literals.
func Int(v int) *int { return &v }

// Validate checks every present member against its field domain. It runs in
// full before the first register write, so a bad request touches no hardware.
func (f Fields) Validate() error {
	checks := [...]struct {
		kind Field
		v    *int
	}{
		{FieldSeconds, f.Seconds},
		{FieldMinutes, f.Minutes},
		{FieldHours, f.Hours},
		{FieldDay, f.Day},
		{FieldMonth, f.Month},
		{FieldYear, f.Year},
		{FieldWeekday, f.Weekday},
	}
	for _, c := range checks {
		if c.v == nil {
			continue
		}
		if err := c.kind.check(*c.v); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) check(v int) error {
	lo, hi := f.Range()
	if v < lo || v > hi {
		return &FieldError{Field: f, Value: v}
	}
	return nil
}
