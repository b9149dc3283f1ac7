// Package pcf8523 implements a driver for the PCF8523 real-time clock:
// time/date read and write, alarm programming, alarm interrupt control,
// CLKOUT frequency selection and software reset.
//
// Datasheet: https://www.nxp.com/docs/en/data-sheet/PCF8523.pdf
//
// The driver caches no register state; every accessor re-reads or re-writes
// the chip so results reflect hardware truth. Control-bit updates and alarm
// programming span more than one bus transaction and are not atomic, so a
// device must have a single owner; concurrent access needs external
// serialization.
package pcf8523

import (
	"time"

	"tinygo.org/x/drivers"
)

// Config controls optional construction parameters.
type Config struct {
	// Address is the 7-bit device address; defaults to 0x68 if zero.
	Address uint16
}

// Device wraps an I2C connection to a PCF8523.
type Device struct {
	bus  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [1]byte
}

// New creates a PCF8523 connection. The I2C bus must already be configured.
// This only builds the Device object; it does not touch the chip.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: AddressDefault}
}

// Configure applies optional parameters.
func (d *Device) Configure(cfg Config) {
	if cfg.Address != 0 {
		d.addr = cfg.Address
	}
}

// ---------------- Field readers ----------------

func (d *Device) readField(reg byte, f Field) (int, error) {
	b, err := d.readReg(reg)
	if err != nil {
		return 0, err
	}
	return decodeBCD(b & f.Mask()), nil
}

func (d *Device) Seconds() (int, error) { return d.readField(regSeconds, FieldSeconds) }
func (d *Device) Minutes() (int, error) { return d.readField(regMinutes, FieldMinutes) }
func (d *Device) Hours() (int, error)   { return d.readField(regHours, FieldHours) }

// Day returns the day of month (1..31).
func (d *Device) Day() (int, error) { return d.readField(regDays, FieldDay) }

// Weekday returns the independently tracked weekday register (1..7).
func (d *Device) Weekday() (int, error) { return d.readField(regWeekday, FieldWeekday) }

func (d *Device) Month() (int, error) { return d.readField(regMonth, FieldMonth) }
func (d *Device) Year() (int, error)  { return d.readField(regYear, FieldYear) }

// ---------------- Composite read ----------------

// Snapshot holds one full read of the seven calendar registers.
type Snapshot struct {
	Year    int // two digits, 0..99
	Month   int
	Day     int
	Weekday int
	Hours   int
	Minutes int
	Seconds int
}

// String formats the snapshot as "yy-mm-dd HH:MM:SS".
func (s Snapshot) String() string {
	b := make([]byte, 0, 17)
	b = pad2(b, s.Year)
	b = append(b, '-')
	b = pad2(b, s.Month)
	b = append(b, '-')
	b = pad2(b, s.Day)
	b = append(b, ' ')
	b = pad2(b, s.Hours)
	b = append(b, ':')
	b = pad2(b, s.Minutes)
	b = append(b, ':')
	b = pad2(b, s.Seconds)
	return string(b)
}

func pad2(b []byte, v int) []byte {
	return append(b, byte('0'+v/10%10), byte('0'+v%10))
}

// ReadAll reads the seven calendar registers one at a time, in the order
// year, month, day, weekday, hours, minutes, seconds.
func (d *Device) ReadAll() (Snapshot, error) {
	var s Snapshot
	var err error
	if s.Year, err = d.Year(); err != nil {
		return Snapshot{}, err
	}
	if s.Month, err = d.Month(); err != nil {
		return Snapshot{}, err
	}
	if s.Day, err = d.Day(); err != nil {
		return Snapshot{}, err
	}
	if s.Weekday, err = d.Weekday(); err != nil {
		return Snapshot{}, err
	}
	if s.Hours, err = d.Hours(); err != nil {
		return Snapshot{}, err
	}
	if s.Minutes, err = d.Minutes(); err != nil {
		return Snapshot{}, err
	}
	if s.Seconds, err = d.Seconds(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Time assembles a time.Time (UTC) from a full register read. The chip has no
// century register; century counts from 1, so 21 means 20xx. Zero selects the
// 21st century. The weekday register is not consulted: the chip tracks it
// independently of the date.
func (d *Device) Time(century int) (time.Time, error) {
	s, err := d.ReadAll()
	if err != nil {
		return time.Time{}, err
	}
	if century == 0 {
		century = 21
	}
	year := (century-1)*100 + s.Year
	return time.Date(year, time.Month(s.Month), s.Day, s.Hours, s.Minutes, s.Seconds, 0, time.UTC), nil
}

// ---------------- Writes ----------------

// WriteFields writes every present member of f, one register each, in the
// order seconds, minutes, hours, day, month, year, weekday. All members are
// validated before the first bus transaction: either the whole request is in
// range or nothing is written.
func (d *Device) WriteFields(f Fields) error {
	if err := f.Validate(); err != nil {
		return err
	}
	writes := [...]struct {
		reg byte
		v   *int
	}{
		{regSeconds, f.Seconds},
		{regMinutes, f.Minutes},
		{regHours, f.Hours}, // 24-hour mode
		{regDays, f.Day},
		{regMonth, f.Month},
		{regYear, f.Year},
		{regWeekday, f.Weekday},
	}
	for _, w := range writes {
		if w.v == nil {
			continue
		}
		b, err := encodeBCD(*w.v)
		if err != nil {
			return err
		}
		if err := d.writeReg(w.reg, b); err != nil {
			return err
		}
	}
	return nil
}

// SetTime writes all seven fields from t, deriving the ISO weekday
// (1=Monday .. 7=Sunday) from the date. Only the two-digit year is stored;
// the century is the caller's to track.
func (d *Device) SetTime(t time.Time) error {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // time.Sunday is 0, ISO Sunday is 7
	}
	return d.WriteFields(Fields{
		Seconds: Int(t.Second()),
		Minutes: Int(t.Minute()),
		Hours:   Int(t.Hour()),
		Day:     Int(t.Day()),
		Month:   Int(int(t.Month())),
		Year:    Int(t.Year() % 100),
		Weekday: Int(wd),
	})
}

// ---------------- Chip control ----------------

// Reset issues the chip's software reset by writing the documented command
// byte to control-1, reinitializing the chip to power-on defaults. There is
// no way back.
func (d *Device) Reset() error {
	return d.writeReg(regControl1, resetCommand)
}

// SetClkOutFrequency selects the CLKOUT square-wave frequency, or puts the
// pin in high impedance with ClkOutOff. Codes outside the documented five
// return ErrInvalidFrequency.
func (d *Device) SetClkOutFrequency(f ClkOutFreq) error {
	switch f {
	case ClkOut32768Hz, ClkOut1024Hz, ClkOut32Hz, ClkOut1Hz, ClkOutOff:
	default:
		return ErrInvalidFrequency
	}
	return d.writeReg(regClkOut, byte(f))
}
