package pcf8523

// Alarm describes a match pattern for the four alarm registers. Minute is
// always compared; each nil optional member is programmed with the ignore
// sentinel so the hardware skips it when matching. The INT pin falls when the
// clock matches every compared field.
type Alarm struct {
	Minute  int
	Hour    *int
	Day     *int
	Weekday *int
}

func (a Alarm) validate() error {
	return Fields{
		Minutes: Int(a.Minute),
		Hours:   a.Hour,
		Day:     a.Day,
		Weekday: a.Weekday,
	}.Validate()
}

// SetAlarm validates a, programs all four alarm registers and enables the
// alarm interrupt. Unspecified registers are written with the sentinel every
// time, so fields of a previously programmed alarm never linger.
func (d *Device) SetAlarm(a Alarm) error {
	if err := a.validate(); err != nil {
		return err
	}
	regs := [...]struct {
		reg byte
		v   *int
	}{
		{regAlarmMinute, Int(a.Minute)},
		{regAlarmHour, a.Hour},
		{regAlarmDay, a.Day},
		{regAlarmWeekday, a.Weekday},
	}
	for _, r := range regs {
		b := byte(alarmIgnore)
		if r.v != nil {
			enc, err := encodeBCD(*r.v)
			if err != nil {
				return err
			}
			b = enc &^ alarmIgnore // sentinel bit cleared: compare this field
		}
		if err := d.writeReg(r.reg, b); err != nil {
			return err
		}
	}
	return d.EnableAlarmInterrupt()
}

// ---------------- Interrupt and flag control (read-modify-write) ----------------

// EnableAlarmInterrupt sets AIE in control-1, preserving the other bits.
func (d *Device) EnableAlarmInterrupt() error {
	return d.modifyReg(regControl1, ctl1AlarmIntEnable, 0)
}

// DisableAlarmInterrupt clears AIE in control-1, preserving the other bits.
func (d *Device) DisableAlarmInterrupt() error {
	return d.modifyReg(regControl1, 0, ctl1AlarmIntEnable)
}

// AlarmInterruptEnabled reports the AIE bit.
func (d *Device) AlarmInterruptEnabled() (bool, error) {
	v, err := d.readReg(regControl1)
	return v&ctl1AlarmIntEnable != 0, err
}

// AlarmTriggered reports the AF flag, set by hardware when the clock matched
// the programmed alarm.
func (d *Device) AlarmTriggered() (bool, error) {
	v, err := d.readReg(regControl2)
	return v&ctl2AlarmFlag != 0, err
}

// AcknowledgeAlarm clears AF so the next match raises it again. Other
// control-2 bits are preserved.
func (d *Device) AcknowledgeAlarm() error {
	return d.modifyReg(regControl2, 0, ctl2AlarmFlag)
}

// ClearAlarm disarms the whole alarm system: control-2 is zeroed (all status
// flags, not just AF) and the four alarm registers return to the ignore
// sentinel. Distinct from DisableAlarmInterrupt, which only gates the INT
// line and leaves the match pattern armed.
func (d *Device) ClearAlarm() error {
	if err := d.writeReg(regControl2, 0x00); err != nil {
		return err
	}
	for _, reg := range [...]byte{regAlarmMinute, regAlarmHour, regAlarmDay, regAlarmWeekday} {
		if err := d.writeReg(reg, alarmIgnore); err != nil {
			return err
		}
	}
	return nil
}
