package cpu86

// ALU sub-function indices, shared between the immediate, reg/mem and
// accumulator-immediate opcode families (§4.3 classes 7/8/9).
const (
	AluADD = 0
	AluOR  = 1
	AluADC = 2
	AluSBB = 3
	AluAND = 4
	AluSUB = 5
	AluXOR = 6
	AluCMP = 7
)

func (c *CPU) widthMask() uint32 {
	if c.iw == 0 {
		return 0xFF
	}
	return 0xFFFF
}

func (c *CPU) signBit(v uint32) bool {
	if c.iw == 0 {
		return v&0x80 != 0
	}
	return v&0x8000 != 0
}

// doALUOp executes one of the eight two-operand ALU primitives,
// widening dest/source to 32 bits so carry and overflow are plain
// integer comparisons. It records opDest/opSource/opResult for
// applyFlagPolicy and sets CF explicitly for the arithmetic ops (CF
// for add/sub is set per opcode, not derived generically like the
// other flags). The masked 32-bit result is returned; callers write
// it back except for CMP/TEST-shaped callers, which discard it.
func (c *CPU) doALUOp(op byte, dest, source uint32) uint32 {
	mask := c.widthMask()
	dest &= mask
	source &= mask
	var result uint32

	switch op {
	case AluADD:
		result = dest + source
		c.SetFlag(FlagCF, result&^mask != 0 || result > mask)
	case AluADC:
		carry := uint32(0)
		if c.CF() {
			carry = 1
		}
		result = dest + source + carry
		c.SetFlag(FlagCF, result > mask)
	case AluOR:
		result = dest | source
	case AluSBB:
		borrow := uint32(0)
		if c.CF() {
			borrow = 1
		}
		result = dest - source - borrow
		c.SetFlag(FlagCF, source+borrow > dest)
	case AluAND:
		result = dest & source
	case AluSUB, AluCMP:
		result = dest - source
		c.SetFlag(FlagCF, source > dest)
	case AluXOR:
		result = dest ^ source
	default:
		result = dest
	}

	result &= mask
	c.opDest = dest
	c.opSource = source
	c.opResult = result
	return result
}

// applyFlagPolicy applies the flag-update bitfield recorded for the
// opcode just executed (§4.2), using the operand snapshot doALUOp (or a
// non-ALU opcode handler) left behind.
func (c *CPU) applyFlagPolicy() {
	if c.flagsUpdate&UpdateSZP != 0 {
		c.SetFlag(FlagSF, c.signBit(c.opResult))
		c.SetFlag(FlagZF, c.opResult&c.widthMask() == 0)
		c.SetFlag(FlagPF, c.tables.Parity(byte(c.opResult)))
	}
	if c.flagsUpdate&UpdateAOArith != 0 {
		c.SetFlag(FlagAF, (c.opSource^c.opDest^c.opResult)&0x10 != 0)
		if c.opResult == c.opDest {
			c.SetFlag(FlagOF, false)
		} else {
			of := c.CF() != c.signBit(c.opSource^c.opDest^c.opResult)
			c.SetFlag(FlagOF, of)
		}
	}
	if c.flagsUpdate&UpdateOCLogic != 0 {
		c.SetFlag(FlagCF, false)
		c.SetFlag(FlagOF, false)
	}
}

// recordALUResult lets non-doALUOp opcode handlers (INC/DEC, shifts,
// string compares...) feed the flag unit without going through the
// two-operand primitive above.
func (c *CPU) recordALUResult(dest, source, result uint32) {
	c.opDest = dest & c.widthMask()
	c.opSource = source & c.widthMask()
	c.opResult = result & c.widthMask()
}
