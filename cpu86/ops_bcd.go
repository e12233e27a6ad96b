package cpu86

// opDAA implements class 28: DAA (0x27) — decimal-adjusts AL after an
// addition that produced a packed-BCD result. Affects AF, CF, and (via
// the generic SZP policy) SF/ZF/PF; OF is left undefined, matching the
// documented behavior.
func opDAA(c *CPU) {
	al := c.AL()
	oldAL := al
	oldCF := c.CF()

	if al&0x0F > 9 || c.AF() {
		carry := al > 0xFF-6
		al += 6
		c.SetFlag(FlagAF, true)
		c.SetFlag(FlagCF, oldCF || carry)
	} else {
		c.SetFlag(FlagAF, false)
	}

	if oldAL > 0x99 || oldCF {
		al += 0x60
		c.SetFlag(FlagCF, true)
	} else {
		c.SetFlag(FlagCF, c.CF())
	}

	c.SetAL(al)
	c.recordALUResult(0, 0, uint32(al))
	c.flagsUpdate = UpdateSZP
}

// opDAS implements class 29: DAS (0x2F) — the subtraction counterpart
// of DAA.
func opDAS(c *CPU) {
	al := c.AL()
	oldAL := al
	oldCF := c.CF()

	if al&0x0F > 9 || c.AF() {
		borrow := al < 6
		al -= 6
		c.SetFlag(FlagAF, true)
		c.SetFlag(FlagCF, oldCF || borrow)
	} else {
		c.SetFlag(FlagAF, false)
	}

	if oldAL > 0x99 || oldCF {
		al -= 0x60
		c.SetFlag(FlagCF, true)
	}

	c.SetAL(al)
	c.recordALUResult(0, 0, uint32(al))
	c.flagsUpdate = UpdateSZP
}

// opAAAAS implements classes 30 (AAA, extra=0) and (AAS, extra=1):
// ASCII-adjust AL after an 8-bit add/sub, carrying the tens digit into
// AH. Affects only AF and CF; the others are undefined on real silicon.
func opAAAAS(c *CPU) {
	if c.AL()&0x0F > 9 || c.AF() {
		if c.extra == 0 {
			c.SetAL(c.AL() + 6)
			c.SetAH(c.AH() + 1)
		} else {
			c.SetAL(c.AL() - 6)
			c.SetAH(c.AH() - 1)
		}
		c.SetFlag(FlagAF, true)
		c.SetFlag(FlagCF, true)
	} else {
		c.SetFlag(FlagAF, false)
		c.SetFlag(FlagCF, false)
	}
	c.SetAL(c.AL() & 0x0F)
	c.flagsUpdate = 0
}

// opCBWCWD implements class 31: CBW (0x98, extra=0) sign-extends AL
// into AX; CWD (0x99, extra=1) sign-extends AX into DX:AX.
func opCBWCWD(c *CPU) {
	if c.extra == 0 {
		c.SetAX(uint16(int16(int8(c.AL()))))
	} else {
		if c.AX()&0x8000 != 0 {
			c.SetDX(0xFFFF)
		} else {
			c.SetDX(0)
		}
	}
	c.flagsUpdate = 0
}

// opAAM implements class 41: AAM imm8 (0xD4) — ASCII-adjust AX after an
// 8-bit multiply, splitting AL into AH:AL by the given base (usually
// 10). A zero base vectors a divide error, as on real hardware.
func opAAM(c *CPU) {
	base := c.immByte()
	if base == 0 {
		c.pcInterrupt(0)
		c.skipAutoIPAdvance()
		return
	}
	al := c.AL()
	c.SetAH(al / base)
	c.SetAL(al % base)
	c.recordALUResult(0, 0, uint32(c.AL()))
	c.flagsUpdate = UpdateSZP
}

// opAAD implements class 42: AAD imm8 (0xD5) — ASCII-adjust AX before
// an 8-bit divide, folding AH*base into AL.
func opAAD(c *CPU) {
	base := c.immByte()
	al := c.AL() + c.AH()*base
	c.SetAL(al)
	c.SetAH(0)
	c.recordALUResult(0, 0, uint32(al))
	c.flagsUpdate = UpdateSZP
}
