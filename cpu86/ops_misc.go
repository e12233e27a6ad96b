package cpu86

// opRepPrefix implements class 23: REPNZ (0xF2, extra=0) / REP-REPZ
// (0xF3, extra=1). Like the segment-override prefix, the counter is set
// to 2 so it reads as active for exactly the one instruction following
// it once this Step's own decrementPrefixCounters runs on that
// instruction. A segment override decoded immediately before REP has
// already had this same Step's decrement applied to it, so it must be
// bumped back up by one here or it expires one instruction early and
// the following string op silently falls back to DS.
func opRepPrefix(c *CPU) {
	c.repOverrideEn = 2
	c.repMode = int(c.extra)
	if c.segOverrideEn > 0 {
		c.segOverrideEn++
	}
}

// opIn implements class 21: IN AL/AX,imm8 (0xE4/0xE5) and IN AL/AX,DX
// (0xEC/0xED).
func opIn(c *CPU) {
	var port uint16
	switch c.opcode {
	case 0xE4, 0xE5:
		port = uint16(c.immByte())
	default:
		port = c.DX()
	}
	if c.iw == 0 {
		c.SetAL(c.readPort(port))
	} else {
		lo := c.readPort(port)
		hi := c.readPort(port + 1)
		c.SetAX(uint16(lo) | uint16(hi)<<8)
	}
}

// opOut implements class 22: OUT imm8,AL/AX (0xE6/0xE7) and OUT DX,AL/AX
// (0xEE/0xEF).
func opOut(c *CPU) {
	var port uint16
	switch c.opcode {
	case 0xE6, 0xE7:
		port = uint16(c.immByte())
	default:
		port = c.DX()
	}
	if c.iw == 0 {
		c.writePort(port, c.AL())
	} else {
		v := c.AX()
		c.writePort(port, byte(v))
		c.writePort(port+1, byte(v>>8))
	}
}

// opPushf implements class 33: PUSHF (0x9C).
func opPushf(c *CPU) { c.push16(c.Flags16()) }

// opPopf implements class 34: POPF (0x9D).
func opPopf(c *CPU) { c.SetFlags16(c.pop16()) }

// opSahf implements class 35: SAHF (0x9E) — loads CF/PF/AF/ZF/SF from AH.
func opSahf(c *CPU) {
	ah := c.AH()
	c.SetFlag(FlagCF, ah&0x01 != 0)
	c.SetFlag(FlagPF, ah&0x04 != 0)
	c.SetFlag(FlagAF, ah&0x10 != 0)
	c.SetFlag(FlagZF, ah&0x40 != 0)
	c.SetFlag(FlagSF, ah&0x80 != 0)
}

// opLahf implements class 36: LAHF (0x9F) — stores CF/PF/AF/ZF/SF into AH.
func opLahf(c *CPU) {
	var ah byte
	if c.CF() {
		ah |= 0x01
	}
	ah |= 0x02
	if c.PF() {
		ah |= 0x04
	}
	if c.AF() {
		ah |= 0x10
	}
	if c.ZF() {
		ah |= 0x40
	}
	if c.SF() {
		ah |= 0x80
	}
	c.SetAH(ah)
}

// opSalc implements class 43: SALC (0xD6, undocumented) — AL = 0xFF if
// CF else 0x00.
func opSalc(c *CPU) {
	if c.CF() {
		c.SetAL(0xFF)
	} else {
		c.SetAL(0x00)
	}
}

// opXlat implements class 44: XLAT (0xD7) — AL = [DS:BX+AL], honoring
// an active segment override.
func opXlat(c *CPU) {
	seg := c.DS()
	if c.segOverrideEn > 0 {
		seg = c.Reg16(c.segOverride)
	}
	addr := 16*uint32(seg) + uint32(c.BX()) + uint32(c.AL())
	c.SetAL(c.mem.Read8(addr))
}

// opCmc implements class 45: CMC (0xF5) — complement CF.
func opCmc(c *CPU) { c.SetFlag(FlagCF, !c.CF()) }

// opFlagSet implements class 46: CLC/STC/CLI/STI/CLD/STD (0xF8-0xFD),
// selector in extra (0..5).
func opFlagSet(c *CPU) {
	switch c.extra {
	case 0:
		c.SetFlag(FlagCF, false)
	case 1:
		c.SetFlag(FlagCF, true)
	case 2:
		c.SetFlag(FlagIF, false)
	case 3:
		c.SetFlag(FlagIF, true)
	case 4:
		c.SetFlag(FlagDF, false)
	case 5:
		c.SetFlag(FlagDF, true)
	}
}

// opTestAccImm implements class 47: TEST AL,imm8 (0xA8) / TEST AX,imm16
// (0xA9) — AND with flags only, no write-back.
func opTestAccImm(c *CPU) {
	var imm uint32
	if c.iw == 0 {
		imm = uint32(c.immByte())
	} else {
		imm = uint32(c.immWord())
	}
	c.doALUOp(AluAND, uint32(c.RegWidth(0, c.iw)), imm)
}

// opLock implements class 48: LOCK (0xF0) — the bus-lock prefix has no
// observable effect on a single-core interpreter.
func opLock(*CPU) {}

// opHlt implements class 49: HLT (0xF4) — stalls by re-executing itself
// every Step until an interrupt fires, which is exactly what real
// silicon does while waiting in a halted bus cycle.
func opHlt(c *CPU) {
	c.branchDelta = -1
}

// opUnimplemented covers 80186/NEC-V20 opcodes and 8087 escapes this
// core doesn't model (classes 55, 58, 69-71) and the catch-all bad
// opcode class (72): log each execution and fall through as a no-op
// rather than aborting the run.
func opUnimplemented(c *CPU) {
	c.log.Warn("unimplemented instruction", "opcode", c.opcode, "class", c.xlatID, "cs", c.CS(), "ip", c.IP())
}
