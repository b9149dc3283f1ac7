package pcf8523

// Field identifies one calendar register for masking and range validation.
type Field uint8

const (
	FieldSeconds Field = iota
	FieldMinutes
	FieldHours
	FieldDay
	FieldWeekday
	FieldMonth
	FieldYear
)

func (f Field) String() string {
	switch f {
	case FieldSeconds:
		return "seconds"
	case FieldMinutes:
		return "minutes"
	case FieldHours:
		return "hours"
	case FieldDay:
		return "day"
	case FieldWeekday:
		return "weekday"
	case FieldMonth:
		return "month"
	case FieldYear:
		return "year"
	}
	return "unknown"
}

// Mask returns the data bits of the field's register. The remaining bits are
// status flags or unused and must be stripped before BCD decode.
func (f Field) Mask() byte {
	switch f {
	case FieldSeconds, FieldMinutes:
		return 0x7F
	case FieldHours, FieldDay:
		return 0x3F
	case FieldMonth:
		return 0x1F
	case FieldWeekday:
		return 0x07
	}
	return 0xFF // FieldYear uses the whole register
}

// Range returns the closed domain of the field.
func (f Field) Range() (lo, hi int) {
	switch f {
	case FieldSeconds, FieldMinutes:
		return 0, 59
	case FieldHours:
		return 0, 23
	case FieldDay:
		return 1, 31
	case FieldWeekday:
		return 1, 7 // ISO: 1=Monday .. 7=Sunday
	case FieldMonth:
		return 1, 12
	}
	return 0, 99 // FieldYear, two digits
}

// decodeBCD interprets b as two 4-bit decimal digits. No validation; callers
// mask status bits off first.
func decodeBCD(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// encodeBCD packs a value into two decimal nibbles. Values outside 0..99
// cannot be represented and return an EncodeError rather than truncating
// silently into the register.
func encodeBCD(v int) (byte, error) {
	if v < 0 || v > 99 {
		return 0, &EncodeError{Value: v}
	}
	return byte(v/10)<<4 | byte(v%10), nil
}
