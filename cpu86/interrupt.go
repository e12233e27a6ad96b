package cpu86

// pcInterrupt composes the 16-bit FLAGS word, pushes FLAGS/CS/IP (in
// that order), clears TF and IF, and loads CS:IP from the IVT entry at
// vector*4 (§4.4).
func (c *CPU) pcInterrupt(vector byte) {
	c.push16(c.Flags16())
	c.push16(c.CS())
	c.push16(c.IP())
	c.SetFlag(FlagTF, false)
	c.SetFlag(FlagIF, false)

	entry := uint32(vector) * 4
	newIP := c.mem.Read16(entry)
	newCS := c.mem.Read16(entry + 2)
	c.SetIP(newIP)
	c.SetCS(newCS)
}

// pollDevicesAndInterrupts runs once per instruction after the flag
// update (§4.4): it services the timer tick, the latched single-step
// trap, and external IRQ injection, in that exact order — an IRQ must
// never interpose between a prefix and the instruction it modifies,
// and the trap-flag check must fire for the *previous* instruction's
// TF, not the one that just set or cleared it.
func (c *CPU) pollDevicesAndInterrupts() {
	if c.device != nil {
		if c.device.TimerTick(4) {
			switch {
			case c.device.ExitEmulation():
				c.Halt()
			case c.device.FDChanged():
				if err := c.openFloppy(c.device.GetFDImageFilename()); err != nil {
					c.log.Error("reopening floppy image failed", "error", err)
				}
			case c.device.Reset():
				c.performReset()
			}
		}
	}

	if c.trapFlagLatched {
		c.pcInterrupt(1)
	}
	c.trapFlagLatched = c.TF()

	c.instrSinceInt8++

	if c.prefixActive() || !c.IF() || c.TF() {
		return
	}
	if c.device == nil {
		return
	}
	vector, ok := c.device.IntPending()
	if !ok {
		return
	}
	if vector == 8 && c.instrSinceInt8 < c.int8RateLimit {
		return
	}
	if vector == 8 {
		c.instrSinceInt8 = 0
	}
	c.pcInterrupt(vector)
}
