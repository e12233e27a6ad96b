package cpu86

// opPushReg implements class 3: PUSH r16 (0x50-0x57), register in extra.
func opPushReg(c *CPU) {
	c.push16(c.Reg16(c.extra))
}

// opPopReg implements class 4: POP r16 (0x58-0x5F), register in extra.
func opPopReg(c *CPU) {
	c.SetReg16(c.extra, c.pop16())
}

// opPushSreg implements class 25: PUSH ES/CS/SS/DS, segment id in extra.
func opPushSreg(c *CPU) {
	c.push16(c.Reg16(segRegForID(int(c.extra))))
}

// opPopSreg implements class 26: POP ES/SS/DS (CS has no pop form; 0x0F
// is repurposed for the hypercall escape, so extra never selects CS).
func opPopSreg(c *CPU) {
	c.SetReg16(segRegForID(int(c.extra)), c.pop16())
}

// opSegOverridePrefix implements class 27: the four segment-override
// prefix bytes (26/2E/36/3E). The counter is set to 2 so that, after
// decrementPrefixCounters runs on the *next* instruction, the override
// is still seen as active for exactly one more instruction —
// decrement-before-use, so a counter of N means "active for N-1 more
// instructions after this one."
func opSegOverridePrefix(c *CPU) {
	c.segOverrideEn = 2
	c.segOverride = segRegForID(int(c.extra))
}

// opEnter implements class 51: ENTER imm16,imm8 (0xC8) — allocates a
// stack frame with up to 31 levels of display-pointer chaining. Nesting
// beyond level 0 is vanishingly rare in real-mode guests but handled
// per the documented procedure.
func opEnter(c *CPU) {
	frameSize := c.immWord()
	level := c.immByteAfter(2) & 0x1F

	c.push16(c.BP())
	frameTemp := c.SP()

	if level > 0 {
		bp := c.BP()
		for i := byte(1); i < level; i++ {
			bp -= 2
			c.push16(c.mem.Read16(16*uint32(c.SS()) + uint32(bp)))
		}
		c.push16(frameTemp)
	}

	c.SetBP(frameTemp)
	c.SetSP(frameTemp - frameSize)
}

// opLeave implements class 52: LEAVE (0xC9) — undoes the most recent
// ENTER by restoring SP from BP, then popping the saved BP.
func opLeave(c *CPU) {
	c.SetSP(c.BP())
	c.SetBP(c.pop16())
}

// opPusha implements class 53: PUSHA (0x60, 80186+) — pushes AX, CX,
// DX, BX, the original SP, BP, SI, DI, in that order.
func opPusha(c *CPU) {
	sp := c.SP()
	c.push16(c.AX())
	c.push16(c.CX())
	c.push16(c.DX())
	c.push16(c.BX())
	c.push16(sp)
	c.push16(c.BP())
	c.push16(c.SI())
	c.push16(c.DI())
}

// opPopa implements class 54: POPA (0x61, 80186+) — the mirror image of
// PUSHA; the popped SP value is discarded, matching the original push.
func opPopa(c *CPU) {
	c.SetDI(c.pop16())
	c.SetSI(c.pop16())
	c.SetBP(c.pop16())
	c.pop16() // discard SP
	c.SetBX(c.pop16())
	c.SetDX(c.pop16())
	c.SetCX(c.pop16())
	c.SetAX(c.pop16())
}

// opPushImm16 implements class 56: PUSH imm16 (0x68, 80186+).
func opPushImm16(c *CPU) {
	c.push16(c.immWord())
}

// opPushImm8 implements class 57: PUSH imm8 (0x6A, 80186+) — the
// immediate is sign-extended to 16 bits before being pushed.
func opPushImm8(c *CPU) {
	c.push16(uint16(int16(int8(c.immByte()))))
}
