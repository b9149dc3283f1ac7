package pcf8523

// I2C 8-bit register operations. Every driver accessor funnels through these
// two primitives; bus errors propagate to the caller unchanged, no retries.

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.bus.Tx(d.addr, d.w[:2], nil)
}

// modifyReg is the read-modify-write helper for control bits: bits outside
// set/clear are written back untouched. The two transactions are not atomic;
// the bus handle must have a single owner.
func (d *Device) modifyReg(reg, set, clear byte) error {
	cur, err := d.readReg(reg)
	if err != nil {
		return err
	}
	return d.writeReg(reg, (cur|set)&^clear)
}
