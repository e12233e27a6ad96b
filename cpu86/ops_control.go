package cpu86

// evaluateCondition implements the four conditional-jump decode tables
// A-D (§4.3 class 0): nibble selects a primary flag, optionally a
// secondary flag and a combine mode, and an invert bit.
func (c *CPU) evaluateCondition(nibble int) bool {
	a := c.tables.CondTable(0, nibble)
	b := c.tables.CondTable(1, nibble)
	combine := c.tables.CondTable(2, nibble)
	invert := c.tables.CondTable(3, nibble)

	result := c.Flag(int(a))
	switch combine {
	case 1:
		result = result || c.Flag(int(b))
	case 2:
		result = result != c.Flag(int(b))
	case 3:
		result = (result != c.Flag(int(b))) || c.ZF()
	}
	if invert != 0 {
		result = !result
	}
	return result
}

// opCondJumpShort implements class 0: conditional short jump (0x70-0x7F).
func opCondJumpShort(c *CPU) {
	rel := int8(c.immByte())
	if c.evaluateCondition(int(c.opcode & 0xF)) {
		c.branchDelta = int32(rel)
	}
}

// opLoop implements class 13: LOOP/LOOPZ/LOOPNZ/JCXZ (0xE0-0xE3).
// CX is decremented first (except JCXZ); JCXZ tests CX directly.
func opLoop(c *CPU) {
	rel := int8(c.immByte())
	var take bool
	switch c.extra {
	case 0: // LOOPNZ/LOOPNE
		c.SetCX(c.CX() - 1)
		take = c.CX() != 0 && !c.ZF()
	case 1: // LOOPZ/LOOPE
		c.SetCX(c.CX() - 1)
		take = c.CX() != 0 && c.ZF()
	case 2: // LOOP
		c.SetCX(c.CX() - 1)
		take = c.CX() != 0
	case 3: // JCXZ
		take = c.CX() == 0
	}
	if take {
		c.branchDelta = int32(rel)
	}
}

// opJmpCallImm implements class 14: CALL near (0xE8), JMP near (0xE9),
// JMP far (0xEA), JMP short (0xEB).
func opJmpCallImm(c *CPU) {
	switch c.extra {
	case 0: // CALL near
		rel := int16(c.immWord())
		ret := c.IP() + 3
		c.push16(ret)
		c.SetIP(uint16(int32(ret) + int32(rel)))
		c.extraSize = 0
		c.skipAutoIPAdvance()
	case 1: // JMP near
		rel := int16(c.immWord())
		target := uint16(int32(c.IP()) + 3 + int32(rel))
		c.SetIP(target)
		c.skipAutoIPAdvance()
	case 2: // JMP far
		newIP := c.immWord()
		newCS := c.immWordAfter(2)
		c.SetCS(newCS)
		c.SetIP(newIP)
		c.skipAutoIPAdvance()
	case 3: // JMP short
		rel := int8(c.immByte())
		c.branchDelta = int32(rel)
	}
}

// immWordAfter reads a 16-bit immediate at operandOffset()+extra bytes.
func (c *CPU) immWordAfter(extra uint32) uint16 {
	return c.mem.Read16(c.pc + c.operandOffset() + extra)
}

// skipAutoIPAdvance cancels the generic IP-advance Step performs after
// the handler returns, for instructions (near/far jumps and calls)
// that set IP to an absolute target themselves. It sets
// suppressIPAdvance, so Step leaves the already-final IP as it is.
func (c *CPU) skipAutoIPAdvance() {
	c.suppressIPAdvance = true
}

// opGrpFEFF implements classes 2/5: INC/DEC/CALL/JMP/PUSH via the
// FE/FF mod/rm group, sub-op in i_reg (§4.3 classes 2,5).
func opGrpFEFF(c *CPU) {
	switch c.iReg {
	case 0: // INC
		dest := c.readOperandWidth(c.rmAddr)
		result := (dest + 1) & c.widthMask()
		c.writeOperandWidth(c.rmAddr, result)
		c.recordALUResult(dest, 1, result)
		c.flagsUpdate = UpdateSZP | UpdateAOArith
	case 1: // DEC
		dest := c.readOperandWidth(c.rmAddr)
		result := (dest - 1) & c.widthMask()
		c.writeOperandWidth(c.rmAddr, result)
		c.recordALUResult(dest, 1, result)
		c.flagsUpdate = UpdateSZP | UpdateAOArith
	case 2: // CALL near indirect
		target := c.readOperandWidth(c.rmAddr)
		c.push16(c.IP() + 1 + uint16(c.modRMLength()))
		c.SetIP(uint16(target))
		c.skipAutoIPAdvance()
	case 3: // CALL far indirect
		newIP := c.mem.Read16(c.rmAddr)
		newCS := c.mem.Read16(c.rmAddr + 2)
		c.push16(c.CS())
		c.push16(c.IP() + 1 + uint16(c.modRMLength()))
		c.SetCS(newCS)
		c.SetIP(newIP)
		c.skipAutoIPAdvance()
	case 4: // JMP near indirect
		target := c.readOperandWidth(c.rmAddr)
		c.SetIP(uint16(target))
		c.skipAutoIPAdvance()
	case 5: // JMP far indirect
		newIP := c.mem.Read16(c.rmAddr)
		newCS := c.mem.Read16(c.rmAddr + 2)
		c.SetCS(newCS)
		c.SetIP(newIP)
		c.skipAutoIPAdvance()
	case 6: // PUSH r/m
		v := c.readOperandWidth(c.rmAddr)
		c.push16(uint16(v))
	}
}

// opRet implements class 19: RET (imm16)/RETF (imm16)/IRET.
func opRet(c *CPU) {
	switch c.extra {
	case 0: // RET imm16
		imm := c.immWord()
		ip := c.pop16()
		c.SetIP(ip)
		c.SetSP(c.SP() + imm)
		c.skipAutoIPAdvance()
	case 1: // RET
		ip := c.pop16()
		c.SetIP(ip)
		c.skipAutoIPAdvance()
	case 2: // RETF imm16
		imm := c.immWord()
		ip := c.pop16()
		cs := c.pop16()
		c.SetIP(ip)
		c.SetCS(cs)
		c.SetSP(c.SP() + imm)
		c.skipAutoIPAdvance()
	case 3: // RETF
		ip := c.pop16()
		cs := c.pop16()
		c.SetIP(ip)
		c.SetCS(cs)
		c.skipAutoIPAdvance()
	case 4: // IRET
		ip := c.pop16()
		cs := c.pop16()
		flags := c.pop16()
		c.SetIP(ip)
		c.SetCS(cs)
		c.SetFlags16(flags)
		c.skipAutoIPAdvance()
	}
}

// opCallFar implements class 32: CALL FAR imm16:imm16 (0x9A).
func opCallFar(c *CPU) {
	newIP := c.immWord()
	newCS := c.immWordAfter(2)
	c.push16(c.CS())
	c.push16(c.IP() + 5)
	c.SetCS(newCS)
	c.SetIP(newIP)
	c.skipAutoIPAdvance()
}

// opInt3 implements class 38: INT 3 (0xCC). pcInterrupt must push the
// address of the instruction *after* INT 3 — unlike the divide-error
// and AAM-zero faults (which push the faulting instruction's own
// address, matching real 8086 behavior), a software interrupt resumes
// past itself — so IP is advanced here, before redirecting, and the
// generic Step advance is then suppressed.
func opInt3(c *CPU) {
	c.SetIP(c.IP() + 1)
	c.pcInterrupt(3)
	c.skipAutoIPAdvance()
}

// opIntImm implements class 39: INT imm8 (0xCD), a fixed 2-byte
// instruction (opcode + vector).
func opIntImm(c *CPU) {
	vector := c.immByte()
	c.SetIP(c.IP() + 2)
	c.pcInterrupt(vector)
	c.skipAutoIPAdvance()
}

// opInto implements class 40: INTO (0xCE) — vectors INT 4 iff OF=1.
func opInto(c *CPU) {
	if c.OF() {
		c.SetIP(c.IP() + 1)
		c.pcInterrupt(4)
		c.skipAutoIPAdvance()
	}
}
