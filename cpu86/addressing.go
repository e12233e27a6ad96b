package cpu86

// decodeModRM parses the mod/reg/rm byte following the opcode (at pc+1)
// and any trailing displacement, then asks the addressing unit to
// compute rm_addr, op_from_addr and op_to_addr (§4.1, §4.3 step 6).
func (c *CPU) decodeModRM(pc uint32) {
	modrm := byte(c.data0)
	c.iMod = (modrm >> 6) & 3
	c.iReg = (modrm >> 3) & 7
	c.iRM = modrm & 7
	c.haveModRM = true

	switch {
	case c.iMod == 1:
		c.disp = int32(int8(byte(c.data1)))
	case c.iMod == 2 || (c.iMod == 0 && c.iRM == 6):
		c.disp = int32(int16(c.data1))
	default:
		c.disp = 0
	}

	c.effectiveAddress()
}

// modRMLength returns the length of the mod/reg/rm byte plus its
// displacement: 1 for the mod/rm byte itself, plus 0, 1, or 2
// displacement bytes. The opcode byte is counted by the caller.
func (c *CPU) modRMLength() uint16 {
	if c.iMod == 3 {
		return 1
	}
	switch {
	case c.iMod == 1:
		return 2
	case c.iMod == 2 || (c.iMod == 0 && c.iRM == 6):
		return 3
	default:
		return 1
	}
}

// effectiveAddress implements the addressing unit (C4, §4.1): from
// (i_mod, i_rm, disp) and the active segment override, compute the
// linear effective address and set rm_addr/op_from_addr/op_to_addr.
func (c *CPU) effectiveAddress() {
	if c.iMod == 3 {
		c.rmAddr = regAddr(c.iRM, c.iw)
		c.setDirection()
		return
	}

	k := 0
	if c.iMod == 0 {
		k = 4
	}
	baseReg := c.tables.AddrBase(k, c.iRM)
	indexReg := c.tables.AddrBase(k+1, c.iRM)
	dispEnable := c.tables.AddrBase(k+2, c.iRM)
	segReg := c.tables.AddrBase(k+3, c.iRM)

	off := c.Reg16(baseReg) + c.Reg16(indexReg)
	if dispEnable != 0 {
		off += uint16(c.disp)
	}

	if c.segOverrideEn > 0 {
		segReg = c.segOverride
	}

	linear := 16*uint32(c.Reg16(segReg)) + uint32(off)
	c.rmAddr = linear
	c.setDirection()
}

// setDirection applies the d-bit swap described in §4.1: op_to_addr is
// the r/m operand by default, op_from_addr is the reg-field operand;
// if i_d is set, the two swap (reg field becomes the destination).
func (c *CPU) setDirection() {
	regAddr := regAddr(c.iReg, c.iw)
	c.opToAddr = c.rmAddr
	c.opFromAddr = regAddr
	if c.id != 0 {
		c.opToAddr, c.opFromAddr = c.opFromAddr, c.opToAddr
	}
}

// operandOffset returns the byte offset from pc where any trailing
// immediate operand begins: past the opcode byte, and past the mod/rm
// byte plus its displacement bytes when the opcode has a mod/rm form.
func (c *CPU) operandOffset() uint32 {
	off := uint32(1)
	if c.modSize > 0 {
		off++
		switch {
		case c.iMod == 1:
			off++
		case c.iMod == 2 || (c.iMod == 0 && c.iRM == 6):
			off += 2
		}
	}
	return off
}

// immByte/immWord read the trailing immediate operand at its correct
// offset regardless of whether a mod/rm+displacement preceded it.
func (c *CPU) immByte() byte    { return c.mem.Read8(c.pc + c.operandOffset()) }
func (c *CPU) immWord() uint16  { return c.mem.Read16(c.pc + c.operandOffset()) }
func (c *CPU) immByteAfter(extra uint32) byte {
	return c.mem.Read8(c.pc + c.operandOffset() + extra)
}

// readOperandWidth reads the operand at addr at the current width.
func (c *CPU) readOperandWidth(addr uint32) uint32 {
	if c.iw == 0 {
		return uint32(c.mem.Read8(addr))
	}
	return uint32(c.mem.Read16(addr))
}

// writeOperandWidth writes v to addr at the current width.
func (c *CPU) writeOperandWidth(addr uint32, v uint32) {
	if c.iw == 0 {
		c.mem.Write8(addr, byte(v))
	} else {
		c.mem.Write16(addr, uint16(v))
	}
}
