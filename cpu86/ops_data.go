package cpu86

// opMOVRegImm implements class 1: MOV reg,imm (0xB0-0xBF). Width comes
// from opcode bit 3, not the generic bit-0 extraction (§4.3 class 1).
func opMOVRegImm(c *CPU) {
	c.iw = int((c.opcode >> 3) & 1)
	var v uint32
	if c.iw == 0 {
		v = uint32(c.immByte())
	} else {
		v = uint32(c.immWord())
	}
	c.SetRegWidth(c.extra&7, c.iw, v)
}

// opMovSregLeaPop implements class 10: MOV r/m,Sreg (0x8C), LEA (0x8D),
// MOV Sreg,r/m (0x8E), POP r/m (0x8F).
func opMovSregLeaPop(c *CPU) {
	switch c.opcode {
	case 0x8C: // MOV r/m,Sreg: segment register (i_reg) is the source
		v := c.Reg16(segRegForID(int(c.iReg)))
		c.writeOperandWidth(c.rmAddr, uint32(v))
	case 0x8E: // MOV Sreg,r/m: segment register (i_reg) is the destination
		v := c.readOperandWidth(c.rmAddr)
		c.SetReg16(segRegForID(int(c.iReg)), uint16(v))
	case 0x8D: // LEA: load the computed offset, not the memory contents
		off := c.rmAddr - 16*uint32(c.effectiveSegment())
		c.SetReg16(c.iReg, uint16(off))
	case 0x8F: // POP r/m
		v := c.pop16()
		c.writeOperandWidth(c.rmAddr, uint32(v))
	}
}

// effectiveSegment recovers which segment register effectiveAddress
// used for the operand just decoded, for LEA's "subtract the segment
// back out" trick (LEA wants an offset, not a linear address).
func (c *CPU) effectiveSegment() uint16 {
	k := 0
	if c.iMod == 0 {
		k = 4
	}
	segReg := c.tables.AddrBase(k+3, c.iRM)
	if c.segOverrideEn > 0 {
		segReg = c.segOverride
	}
	return c.Reg16(segReg)
}

// opMOVAbs implements class 11: MOV AL/AX,[abs] and MOV [abs],AL/AX
// (0xA0-0xA3), synthesizing mod=0,rm=6 against the current DS (or
// override).
func opMOVAbs(c *CPU) {
	offset := c.immWord()
	seg := c.DS()
	if c.segOverrideEn > 0 {
		seg = c.Reg16(c.segOverride)
	}
	addr := 16*uint32(seg) + uint32(offset)
	if c.id == 0 {
		v := c.readOperandWidth(addr)
		c.writeOperandWidth(regAddr(0, c.iw), v)
	} else {
		v := c.readOperandWidth(regAddr(0, c.iw))
		c.writeOperandWidth(addr, v)
	}
}

// opMOVImmRM implements class 20: MOV r/m,imm (0xC6/0xC7).
func opMOVImmRM(c *CPU) {
	var v uint32
	if c.iw == 0 {
		v = uint32(c.immByte())
	} else {
		v = uint32(c.immWord())
	}
	c.SetRegWidth(RegTmp, c.iw, v)
	c.writeOperandWidth(c.rmAddr, c.RegWidth(RegTmp, c.iw))
}

// opXCHGAX implements class 16: XCHG AX,reg (0x90-0x97); 0x90 is NOP.
func opXCHGAX(c *CPU) {
	if c.extra == 0 {
		return
	}
	ax := c.AX()
	other := c.Reg16(c.extra)
	c.SetAX(other)
	c.SetReg16(c.extra, ax)
}

// opXCHGRegMem implements class 24: XCHG reg,r/m; a no-op when both
// addresses coincide (register aliased to itself).
func opXCHGRegMem(c *CPU) {
	if c.opToAddr == c.opFromAddr {
		return
	}
	a := c.readOperandWidth(c.opToAddr)
	b := c.readOperandWidth(c.opFromAddr)
	c.writeOperandWidth(c.opToAddr, b)
	c.writeOperandWidth(c.opFromAddr, a)
}

// stringSegment returns the segment to use for the source operand of a
// string instruction: the active override if any, else DS. The
// destination (ES:DI) is never overridable on real 8086 hardware.
func (c *CPU) stringSegment() uint16 {
	if c.segOverrideEn > 0 {
		return c.Reg16(c.segOverride)
	}
	return c.DS()
}

func (c *CPU) stepSI(delta uint16) {
	if c.DF() {
		c.SetSI(c.SI() - delta)
	} else {
		c.SetSI(c.SI() + delta)
	}
}

func (c *CPU) stepDI(delta uint16) {
	if c.DF() {
		c.SetDI(c.DI() - delta)
	} else {
		c.SetDI(c.DI() + delta)
	}
}

// opStringMove implements class 17: MOVS/STOS/LODS, REP-aware (plain
// REP, not REPE/REPNE — these string forms don't test ZF).
func opStringMove(c *CPU) {
	delta := uint16(1)
	if c.iw == 1 {
		delta = 2
	}
	run := func() {
		switch c.extra {
		case 0: // MOVS
			srcAddr := 16*uint32(c.stringSegment()) + uint32(c.SI())
			dstAddr := 16*uint32(c.ES()) + uint32(c.DI())
			v := c.readOperandWidth(srcAddr)
			c.writeOperandWidth(dstAddr, v)
			c.stepSI(delta)
			c.stepDI(delta)
		case 1: // STOS
			dstAddr := 16*uint32(c.ES()) + uint32(c.DI())
			c.writeOperandWidth(dstAddr, c.RegWidth(0, c.iw))
			c.stepDI(delta)
		case 2: // LODS
			srcAddr := 16*uint32(c.stringSegment()) + uint32(c.SI())
			c.SetRegWidth(0, c.iw, c.readOperandWidth(srcAddr))
			c.stepSI(delta)
		}
	}
	if c.repOverrideEn > 0 {
		for c.CX() != 0 {
			run()
			c.SetCX(c.CX() - 1)
		}
	} else {
		run()
	}
}

// opStringCompare implements class 18: CMPS/SCAS, REP-aware; the
// repeat terminates early once ZF diverges from rep_mode (§4.3 class
// 18).
func opStringCompare(c *CPU) {
	delta := uint16(1)
	if c.iw == 1 {
		delta = 2
	}
	run := func() {
		switch c.extra {
		case 0: // CMPS
			srcAddr := 16*uint32(c.stringSegment()) + uint32(c.SI())
			dstAddr := 16*uint32(c.ES()) + uint32(c.DI())
			a := c.readOperandWidth(srcAddr)
			b := c.readOperandWidth(dstAddr)
			c.doALUOp(AluCMP, a, b)
			c.stepSI(delta)
			c.stepDI(delta)
		case 1: // SCAS
			dstAddr := 16*uint32(c.ES()) + uint32(c.DI())
			a := c.RegWidth(0, c.iw)
			b := c.readOperandWidth(dstAddr)
			c.doALUOp(AluCMP, a, b)
			c.stepDI(delta)
		}
	}
	c.flagsUpdate = UpdateSZP | UpdateAOArith
	if c.repOverrideEn > 0 {
		for c.CX() != 0 {
			run()
			c.SetCX(c.CX() - 1)
			c.applyFlagPolicy()
			if c.ZF() != (c.repMode != 0) {
				break
			}
		}
	} else {
		run()
	}
}

// opLxS implements class 37: LES/LDS — load a 16-bit register from
// rm_addr, then load the destination segment register from rm_addr+2.
func opLxS(c *CPU) {
	v := c.mem.Read16(c.rmAddr)
	seg := c.mem.Read16(c.rmAddr + 2)
	c.SetReg16(c.iReg, v)
	if c.extra == 0 {
		c.SetES(seg)
	} else {
		c.SetDS(seg)
	}
}

// opINSOUTS implements classes 59/60: INS/OUTS, REP-aware, delegating
// the port access to the device interface.
func opINSOUTS(c *CPU, out bool) {
	delta := uint16(1)
	if c.extra == 1 {
		delta = 2
	}
	run := func() {
		port := c.DX()
		if out {
			addr := 16*uint32(c.stringSegment()) + uint32(c.SI())
			var v byte
			if c.extra == 0 {
				v = c.mem.Read8(addr)
				c.writePort(port, v)
			} else {
				w := c.mem.Read16(addr)
				c.writePort(port, byte(w))
				c.writePort(port+1, byte(w>>8))
			}
			c.stepSI(delta)
		} else {
			addr := 16*uint32(c.ES()) + uint32(c.DI())
			if c.extra == 0 {
				c.mem.Write8(addr, c.readPort(port))
			} else {
				lo := c.readPort(port)
				hi := c.readPort(port + 1)
				c.mem.Write16(addr, uint16(lo)|uint16(hi)<<8)
			}
			c.stepDI(delta)
		}
	}
	if c.repOverrideEn > 0 {
		for c.CX() != 0 {
			run()
			c.SetCX(c.CX() - 1)
		}
	} else {
		run()
	}
}

func opINS(c *CPU)  { opINSOUTS(c, false) }
func opOUTS(c *CPU) { opINSOUTS(c, true) }
