package pcf8523

import (
	"errors"
	"testing"
	"time"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeBus)(nil)

var errBus = errors.New("bus failure")

type regWrite struct {
	reg, val byte
}

// fakeBus is a scripted register file speaking the chip's one-byte register
// read/write protocol.
type fakeBus struct {
	regs   [0x10]byte
	writes []regWrite // ordered log of register writes
	fail   bool
}

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	if f.fail {
		return errBus
	}
	if addr != AddressDefault {
		return errors.New("unexpected address")
	}
	switch {
	case len(w) == 1 && len(r) == 1: // register read
		r[0] = f.regs[w[0]]
		return nil
	case len(w) == 2 && len(r) == 0: // register write
		f.regs[w[0]] = w[1]
		f.writes = append(f.writes, regWrite{w[0], w[1]})
		return nil
	}
	return errors.New("unexpected transaction shape")
}

func newDevice() (*Device, *fakeBus) {
	bus := &fakeBus{}
	return New(bus), bus
}

func TestReadAllMasksStatusBits(t *testing.T) {
	d, bus := newDevice()
	// Data with status/unused high bits set; they must not leak into values.
	bus.regs[regSeconds] = 0x80 | 0x45 // OS flag + 45s
	bus.regs[regMinutes] = 0x30
	bus.regs[regHours] = 0xC0 | 0x13
	bus.regs[regDays] = 0xC0 | 0x15
	bus.regs[regWeekday] = 0xF8 | 0x04
	bus.regs[regMonth] = 0xE0 | 0x06
	bus.regs[regYear] = 0x23

	s, err := d.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := Snapshot{Year: 23, Month: 6, Day: 15, Weekday: 4, Hours: 13, Minutes: 30, Seconds: 45}
	if s != want {
		t.Fatalf("ReadAll = %+v, want %+v", s, want)
	}
}

func TestWriteFieldsReadAllRoundTrip(t *testing.T) {
	d, _ := newDevice()
	f := Fields{
		Seconds: Int(45), Minutes: Int(30), Hours: Int(13),
		Day: Int(15), Month: Int(6), Year: Int(23), Weekday: Int(4),
	}
	if err := d.WriteFields(f); err != nil {
		t.Fatalf("WriteFields: %v", err)
	}
	s, err := d.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := Snapshot{Year: 23, Month: 6, Day: 15, Weekday: 4, Hours: 13, Minutes: 30, Seconds: 45}
	if s != want {
		t.Fatalf("round trip = %+v, want %+v", s, want)
	}
}

func TestWriteFieldsOrderAndEncoding(t *testing.T) {
	d, bus := newDevice()
	f := Fields{
		Seconds: Int(45), Minutes: Int(30), Hours: Int(13),
		Day: Int(15), Month: Int(6), Year: Int(23), Weekday: Int(4),
	}
	if err := d.WriteFields(f); err != nil {
		t.Fatalf("WriteFields: %v", err)
	}
	want := []regWrite{
		{regSeconds, 0x45},
		{regMinutes, 0x30},
		{regHours, 0x13},
		{regDays, 0x15},
		{regMonth, 0x06},
		{regYear, 0x23},
		{regWeekday, 0x04},
	}
	if len(bus.writes) != len(want) {
		t.Fatalf("wrote %d registers, want %d", len(bus.writes), len(want))
	}
	for i, w := range want {
		if bus.writes[i] != w {
			t.Fatalf("write %d = %+v, want %+v", i, bus.writes[i], w)
		}
	}
}

func TestWriteFieldsPartial(t *testing.T) {
	d, bus := newDevice()
	if err := d.WriteFields(Fields{Minutes: Int(7)}); err != nil {
		t.Fatalf("WriteFields: %v", err)
	}
	if len(bus.writes) != 1 || bus.writes[0] != (regWrite{regMinutes, 0x07}) {
		t.Fatalf("writes = %+v, want single minutes write", bus.writes)
	}
}

func TestWriteFieldsRejectsBeforeAnyWrite(t *testing.T) {
	d, bus := newDevice()
	err := d.WriteFields(Fields{Seconds: Int(10), Hours: Int(24)})
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != FieldHours || fe.Value != 24 {
		t.Fatalf("error = %v, want FieldError for hours=24", err)
	}
	if len(bus.writes) != 0 {
		t.Fatalf("bus written despite validation failure: %+v", bus.writes)
	}
}

func TestSetTimeDerivesAllFields(t *testing.T) {
	d, bus := newDevice()
	// 2023-06-15 is a Thursday (ISO weekday 4).
	at := time.Date(2023, time.June, 15, 13, 30, 45, 0, time.UTC)
	if err := d.SetTime(at); err != nil {
		t.Fatalf("SetTime: %v", err)
	}
	checks := map[byte]byte{
		regSeconds: 0x45,
		regMinutes: 0x30,
		regHours:   0x13,
		regDays:    0x15,
		regMonth:   0x06,
		regYear:    0x23,
		regWeekday: 0x04,
	}
	for reg, want := range checks {
		if got := bus.regs[reg]; got != want {
			t.Errorf("reg %#02x = %#02x, want %#02x", reg, got, want)
		}
	}
}

func TestSetTimeSundayIsISO7(t *testing.T) {
	d, bus := newDevice()
	// 2023-06-18 is a Sunday.
	at := time.Date(2023, time.June, 18, 0, 0, 0, 0, time.UTC)
	if err := d.SetTime(at); err != nil {
		t.Fatalf("SetTime: %v", err)
	}
	if got := bus.regs[regWeekday]; got != 0x07 {
		t.Fatalf("weekday reg = %#02x, want 0x07", got)
	}
}

func TestTimeAppliesCentury(t *testing.T) {
	d, bus := newDevice()
	bus.regs[regSeconds] = 0x05
	bus.regs[regMinutes] = 0x04
	bus.regs[regHours] = 0x03
	bus.regs[regDays] = 0x02
	bus.regs[regWeekday] = 0x01
	bus.regs[regMonth] = 0x01
	bus.regs[regYear] = 0x23

	got, err := d.Time(0) // default 21st century
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	want := time.Date(2023, time.January, 2, 3, 4, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Time(0) = %v, want %v", got, want)
	}

	got, err = d.Time(20)
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	if got.Year() != 1923 {
		t.Fatalf("Time(20) year = %d, want 1923", got.Year())
	}
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{Year: 23, Month: 6, Day: 15, Weekday: 4, Hours: 13, Minutes: 30, Seconds: 45}
	if got := s.String(); got != "23-06-15 13:30:45" {
		t.Fatalf("String() = %q", got)
	}
	zero := Snapshot{Year: 5, Month: 1, Day: 2, Hours: 3, Minutes: 4, Seconds: 5}
	if got := zero.String(); got != "05-01-02 03:04:05" {
		t.Fatalf("String() = %q", got)
	}
}

func TestSetClkOutFrequency(t *testing.T) {
	d, bus := newDevice()
	for _, f := range []ClkOutFreq{ClkOut32768Hz, ClkOut1024Hz, ClkOut32Hz, ClkOut1Hz, ClkOutOff} {
		if err := d.SetClkOutFrequency(f); err != nil {
			t.Fatalf("SetClkOutFrequency(%#02x): %v", byte(f), err)
		}
		if bus.regs[regClkOut] != byte(f) {
			t.Fatalf("clkout reg = %#02x, want %#02x", bus.regs[regClkOut], byte(f))
		}
	}
	before := len(bus.writes)
	if err := d.SetClkOutFrequency(ClkOutFreq(0x84)); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("unknown code error = %v, want ErrInvalidFrequency", err)
	}
	if len(bus.writes) != before {
		t.Fatal("unknown code reached the bus")
	}
}

func TestResetWritesCommandByte(t *testing.T) {
	d, bus := newDevice()
	if err := d.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(bus.writes) != 1 || bus.writes[0] != (regWrite{regControl1, 0x58}) {
		t.Fatalf("writes = %+v, want single 0x58 to control-1", bus.writes)
	}
}

func TestBusErrorsPropagateUnchanged(t *testing.T) {
	d, bus := newDevice()
	bus.fail = true
	if _, err := d.Seconds(); !errors.Is(err, errBus) {
		t.Fatalf("Seconds error = %v, want the bus error", err)
	}
	if err := d.WriteFields(Fields{Seconds: Int(1)}); !errors.Is(err, errBus) {
		t.Fatalf("WriteFields error = %v, want the bus error", err)
	}
	if err := d.EnableAlarmInterrupt(); !errors.Is(err, errBus) {
		t.Fatalf("EnableAlarmInterrupt error = %v, want the bus error", err)
	}
}
