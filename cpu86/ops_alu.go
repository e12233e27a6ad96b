package cpu86

// flagsForALUOp returns the flag-update policy for a dynamically
// selected ALU sub-op (used by Grp1, where the op comes from the
// mod/rm reg field rather than the opcode itself).
func flagsForALUOp(op byte) byte {
	switch op {
	case AluOR, AluAND, AluXOR:
		return UpdateSZP | UpdateOCLogic
	default:
		return UpdateSZP | UpdateAOArith
	}
}

// opALUImmediate implements class 7: accumulator-immediate ALU forms
// (opcode+4/+5) and the Grp1 immediate-to-r/m forms (0x80/0x81/0x83),
// whose ALU sub-op comes from the mod/rm reg field (§4.3 classes 7-9).
func opALUImmediate(c *CPU) {
	var aluOp byte
	var destAddr uint32
	var imm uint32

	if c.extra == 0xFF {
		aluOp = c.iReg
		destAddr = c.rmAddr
		if c.opcode == 0x83 {
			imm = uint32(int32(int8(c.immByte()))) & c.widthMask()
			c.extraSize = 1
		} else if c.iw == 0 {
			imm = uint32(c.immByte())
			c.extraSize = 1
		} else {
			imm = uint32(c.immWord())
		}
	} else {
		aluOp = c.extra
		destAddr = regAddr(0, c.iw)
		if c.iw == 0 {
			imm = uint32(c.immByte())
		} else {
			imm = uint32(c.immWord())
		}
	}

	dest := c.readOperandWidth(destAddr)
	result := c.doALUOp(aluOp, dest, imm)
	if aluOp != AluCMP {
		c.writeOperandWidth(destAddr, result)
	}
	c.flagsUpdate = flagsForALUOp(aluOp)
}

// opALURegMem implements class 8: ADD/OR/ADC/SBB/AND/SUB/XOR/CMP
// between a register and a mod/rm operand, direction per i_d.
func opALURegMem(c *CPU) {
	dest := c.readOperandWidth(c.opToAddr)
	src := c.readOperandWidth(c.opFromAddr)
	result := c.doALUOp(c.extra, dest, src)
	if c.extra != AluCMP {
		c.writeOperandWidth(c.opToAddr, result)
	}
}

// opMOVRegMem implements class 9: MOV between a register and a mod/rm
// operand, direction per i_d. No flags are touched.
func opMOVRegMem(c *CPU) {
	v := c.readOperandWidth(c.opFromAddr)
	c.writeOperandWidth(c.opToAddr, v)
}

// opTESTRegMem implements class 15: TEST reg,r/m — bitwise AND with
// flags only, no write-back.
func opTESTRegMem(c *CPU) {
	dest := c.readOperandWidth(c.opToAddr)
	src := c.readOperandWidth(c.opFromAddr)
	c.doALUOp(AluAND, dest, src)
}

// Grp3 (F6/F7) sub-ops, selected by mod/rm reg field.
const (
	grp3TEST = 0
	grp3NOT  = 2
	grp3NEG  = 3
	grp3MUL  = 4
	grp3IMUL = 5
	grp3DIV  = 6
	grp3IDIV = 7
)

// opGrp3 implements class 6: TEST/NOT/NEG/MUL/IMUL/DIV/IDIV via the F6/F7
// mod/rm group, sub-op in i_reg (§4.3 class 6).
func opGrp3(c *CPU) {
	dest := c.readOperandWidth(c.rmAddr)
	switch c.iReg {
	case grp3TEST:
		var imm uint32
		if c.iw == 0 {
			imm = uint32(c.immByte())
			c.extraSize = 1
		} else {
			imm = uint32(c.immWord())
			c.extraSize = 2
		}
		c.doALUOp(AluAND, dest, imm)
		c.flagsUpdate = UpdateSZP | UpdateOCLogic

	case grp3NOT:
		result := ^dest & c.widthMask()
		c.writeOperandWidth(c.rmAddr, result)

	case grp3NEG:
		result := c.doALUOp(AluSUB, 0, dest)
		c.SetFlag(FlagCF, dest != 0)
		c.writeOperandWidth(c.rmAddr, result)
		c.flagsUpdate = UpdateSZP | UpdateAOArith

	case grp3MUL:
		if c.iw == 0 {
			product := uint32(c.AL()) * uint32(dest)
			c.SetAX(uint16(product))
			c.SetFlag(FlagCF, product > 0xFF)
			c.SetFlag(FlagOF, product > 0xFF)
		} else {
			product := uint32(c.AX()) * dest
			c.SetAX(uint16(product))
			c.SetDX(uint16(product >> 16))
			c.SetFlag(FlagCF, product > 0xFFFF)
			c.SetFlag(FlagOF, product > 0xFFFF)
		}
		c.flagsUpdate = 0

	case grp3IMUL:
		if c.iw == 0 {
			product := int32(int8(c.AL())) * int32(int8(byte(dest)))
			c.SetAX(uint16(product))
			overflow := product < -128 || product > 127
			c.SetFlag(FlagCF, overflow)
			c.SetFlag(FlagOF, overflow)
		} else {
			product := int64(int16(c.AX())) * int64(int16(uint16(dest)))
			c.SetAX(uint16(product))
			c.SetDX(uint16(product >> 16))
			overflow := product < -32768 || product > 32767
			c.SetFlag(FlagCF, overflow)
			c.SetFlag(FlagOF, overflow)
		}
		c.flagsUpdate = 0

	case grp3DIV:
		c.doDivide(dest, false)
	case grp3IDIV:
		c.doDivide(dest, true)
	}
}

// doDivide implements DIV/IDIV for Grp3, vectoring INT 0 on divide-by-
// zero or quotient overflow per §4.3 class 6.
func (c *CPU) doDivide(divisor uint32, signed bool) {
	if c.iw == 0 {
		if byte(divisor) == 0 {
			c.pcInterrupt(0)
			c.skipAutoIPAdvance()
			return
		}
		dividend := c.AX()
		if signed {
			q := int16(dividend) / int16(int8(byte(divisor)))
			r := int16(dividend) % int16(int8(byte(divisor)))
			if q > 127 || q < -128 {
				c.pcInterrupt(0)
				c.skipAutoIPAdvance()
				return
			}
			c.SetAL(byte(q))
			c.SetAH(byte(r))
		} else {
			q := dividend / uint16(byte(divisor))
			r := dividend % uint16(byte(divisor))
			if q > 0xFF {
				c.pcInterrupt(0)
				c.skipAutoIPAdvance()
				return
			}
			c.SetAL(byte(q))
			c.SetAH(byte(r))
		}
	} else {
		if uint16(divisor) == 0 {
			c.pcInterrupt(0)
			c.skipAutoIPAdvance()
			return
		}
		dividend := uint32(c.DX())<<16 | uint32(c.AX())
		if signed {
			sd := int64(int32(dividend))
			sv := int64(int16(uint16(divisor)))
			q := sd / sv
			r := sd % sv
			if q > 32767 || q < -32768 {
				c.pcInterrupt(0)
				c.skipAutoIPAdvance()
				return
			}
			c.SetAX(uint16(q))
			c.SetDX(uint16(r))
		} else {
			q := dividend / uint32(uint16(divisor))
			r := dividend % uint32(uint16(divisor))
			if q > 0xFFFF {
				c.pcInterrupt(0)
				c.skipAutoIPAdvance()
				return
			}
			c.SetAX(uint16(q))
			c.SetDX(uint16(r))
		}
	}
	c.flagsUpdate = 0
}
