// Package pcf8523 provides constants for register addresses and bitfields used
// in the operation of the PCF8523 real-time clock.
package pcf8523

const (
	// 7-bit I2C address (1101_000b).
	AddressDefault = 0x68

	// --- Register sub-addresses (8-bit byte registers) ---

	// Control / status
	regControl1 = 0x00 // R/W (stop, hour mode, alarm/second interrupt enables)
	regControl2 = 0x01 // R/W (watchdog/timer plumbing, alarm flag AF)

	// Time and date, BCD, status flags share the high bits
	regSeconds = 0x03 // bit7 = oscillator-stop OS flag
	regMinutes = 0x04
	regHours   = 0x05 // 24-hour mode assumed
	regDays    = 0x06
	regWeekday = 0x07
	regMonth   = 0x08
	regYear    = 0x09

	// Alarm; bit7 of each register is the "do not compare" sentinel
	regAlarmMinute  = 0x0A
	regAlarmHour    = 0x0B
	regAlarmDay     = 0x0C
	regAlarmWeekday = 0x0D

	// Clock output / timer control
	regClkOut = 0x0F

	// --- Control bits ---

	ctl1AlarmIntEnable = 1 << 1 // AIE, control-1
	ctl2AlarmFlag      = 1 << 3 // AF, control-2; set by hardware on a match

	// Software reset command byte for control-1.
	resetCommand = 0x58

	// Alarm register sentinel: high bit set skips the field when matching.
	alarmIgnore = 0x80
)

// ClkOutFreq selects the square-wave frequency emitted on the CLKOUT pin.
type ClkOutFreq uint8

const (
	ClkOut32768Hz ClkOutFreq = 0x80
	ClkOut1024Hz  ClkOutFreq = 0x81
	ClkOut32Hz    ClkOutFreq = 0x82
	ClkOut1Hz     ClkOutFreq = 0x83
	ClkOutOff     ClkOutFreq = 0x00 // CLKOUT high impedance
)
