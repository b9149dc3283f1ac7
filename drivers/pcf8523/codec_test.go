package pcf8523

import (
	"errors"
	"testing"
)

func TestBCDRoundTrip(t *testing.T) {
	for n := 0; n <= 99; n++ {
		b, err := encodeBCD(n)
		if err != nil {
			t.Fatalf("encodeBCD(%d): %v", n, err)
		}
		if got := decodeBCD(b); got != n {
			t.Fatalf("decodeBCD(encodeBCD(%d)) = %d", n, got)
		}
	}
}

func TestEncodeBCDRejectsOutOfRange(t *testing.T) {
	for _, n := range []int{-1, -10, 100, 255} {
		b, err := encodeBCD(n)
		if err == nil {
			t.Fatalf("encodeBCD(%d) = %#02x, want error", n, b)
		}
		var ee *EncodeError
		if !errors.As(err, &ee) || ee.Value != n {
			t.Fatalf("encodeBCD(%d) error = %v, want EncodeError carrying the value", n, err)
		}
	}
}

func TestFieldMasks(t *testing.T) {
	want := map[Field]byte{
		FieldSeconds: 0x7F,
		FieldMinutes: 0x7F,
		FieldHours:   0x3F,
		FieldDay:     0x3F,
		FieldMonth:   0x1F,
		FieldWeekday: 0x07,
		FieldYear:    0xFF,
	}
	for f, m := range want {
		if got := f.Mask(); got != m {
			t.Errorf("%s mask = %#02x, want %#02x", f, got, m)
		}
	}
}

func TestFieldRangeBoundaries(t *testing.T) {
	cases := []struct {
		f      Field
		v      int
		wantOK bool
	}{
		{FieldSeconds, 59, true},
		{FieldSeconds, 60, false},
		{FieldMinutes, 59, true},
		{FieldMinutes, 60, false},
		{FieldHours, 23, true},
		{FieldHours, 24, false},
		{FieldDay, 1, true},
		{FieldDay, 31, true},
		{FieldDay, 0, false},
		{FieldDay, 32, false},
		{FieldMonth, 1, true},
		{FieldMonth, 12, true},
		{FieldMonth, 0, false},
		{FieldMonth, 13, false},
		{FieldYear, 99, true},
		{FieldYear, 100, false},
		{FieldWeekday, 1, true},
		{FieldWeekday, 7, true},
		{FieldWeekday, 0, false},
		{FieldWeekday, 8, false},
	}
	for _, c := range cases {
		err := c.f.check(c.v)
		if c.wantOK && err != nil {
			t.Errorf("%s=%d rejected: %v", c.f, c.v, err)
		}
		if !c.wantOK {
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Errorf("%s=%d accepted, want FieldError", c.f, c.v)
				continue
			}
			if fe.Field != c.f || fe.Value != c.v {
				t.Errorf("%s=%d error names %s=%d", c.f, c.v, fe.Field, fe.Value)
			}
		}
	}
}
