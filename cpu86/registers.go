package cpu86

// 16-bit general register ids, in the order the memory-mapped register
// window lays them out: REGS_BASE + 2*id.
const (
	RegAX = 0
	RegCX = 1
	RegDX = 2
	RegBX = 3
	RegSP = 4
	RegBP = 5
	RegSI = 6
	RegDI = 7

	RegES = 8
	RegCS = 9
	RegSS = 10
	RegDS = 11

	RegZero    = 12 // always reads as zero; used as the addressing-base for mod=00/rm=110
	RegScratch = 13 // engine-internal scratch, not guest-visible
	RegIP      = 14 // IP mirror, written back each Step (§4.3 step 10)
	RegTmp     = 15 // engine-internal scratch for MOV r/m,imm (§4.3 class 20)
)

// Flag byte offsets, relative to RegsBase+32 (just past the sixteen
// 16-bit register slots), each holding 0 or 1 (§3).
const (
	FlagCF = iota
	FlagPF
	FlagAF
	FlagZF
	FlagSF
	FlagTF
	FlagIF
	FlagDF
	FlagOF
	numFlags
)

// reg16Offset returns the offset of the low byte of the given 16-bit
// register id, relative to RegsBase.
func reg16Offset(id byte) uint32 {
	return uint32(2 * (id & 0xF))
}

// reg8Offset implements the aliasing rule from §3: the 8-bit alias for
// id r in 0..7 lives at RegsBase + ((2r + r/4) & 7), reproducing the
// classic AL/CL/DL/BL/AH/CH/DH/BH layout over the 16-bit register window.
func reg8Offset(r byte) uint32 {
	r &= 7
	return uint32((2*uint32(r) + uint32(r)/4) & 7)
}

// regAddr returns the linear address of register id at the given width
// (0 = 8-bit, 1 = 16-bit), per f(reg_id, width) in §3.
func regAddr(id byte, width int) uint32 {
	if width == 0 && id < 8 {
		return RegsBase + reg8Offset(id)
	}
	return RegsBase + reg16Offset(id)
}

// Reg16 reads a 16-bit register (general, segment, or internal) by id.
func (c *CPU) Reg16(id byte) uint16 {
	if id == RegZero {
		return 0
	}
	return c.mem.Read16(RegsBase + reg16Offset(id))
}

// SetReg16 writes a 16-bit register by id. Writes to RegZero are dropped.
func (c *CPU) SetReg16(id byte, v uint16) {
	if id == RegZero {
		return
	}
	c.mem.Write16(RegsBase+reg16Offset(id), v)
}

// Reg8 reads an 8-bit register alias (ids 0..7 only).
func (c *CPU) Reg8(id byte) byte {
	return c.mem.Read8(RegsBase + reg8Offset(id))
}

// SetReg8 writes an 8-bit register alias (ids 0..7 only).
func (c *CPU) SetReg8(id byte, v byte) {
	c.mem.Write8(RegsBase+reg8Offset(id), v)
}

// RegWidth reads a register at the given width (0 = 8-bit alias, 1 = 16-bit).
func (c *CPU) RegWidth(id byte, width int) uint32 {
	if width == 0 {
		return uint32(c.Reg8(id))
	}
	return uint32(c.Reg16(id))
}

// SetRegWidth writes a register at the given width (0 = 8-bit alias, 1 = 16-bit).
func (c *CPU) SetRegWidth(id byte, width int, v uint32) {
	if width == 0 {
		c.SetReg8(id, byte(v))
	} else {
		c.SetReg16(id, uint16(v))
	}
}

// AX/BX/CX/DX/SI/DI/BP/SP/IP are thin convenience accessors used throughout
// the opcode implementations and tests.
func (c *CPU) AX() uint16 { return c.Reg16(RegAX) }
func (c *CPU) BX() uint16 { return c.Reg16(RegBX) }
func (c *CPU) CX() uint16 { return c.Reg16(RegCX) }
func (c *CPU) DX() uint16 { return c.Reg16(RegDX) }
func (c *CPU) SI() uint16 { return c.Reg16(RegSI) }
func (c *CPU) DI() uint16 { return c.Reg16(RegDI) }
func (c *CPU) BP() uint16 { return c.Reg16(RegBP) }
func (c *CPU) SP() uint16 { return c.Reg16(RegSP) }
func (c *CPU) IP() uint16 { return c.Reg16(RegIP) }
func (c *CPU) CS() uint16 { return c.Reg16(RegCS) }
func (c *CPU) DS() uint16 { return c.Reg16(RegDS) }
func (c *CPU) ES() uint16 { return c.Reg16(RegES) }
func (c *CPU) SS() uint16 { return c.Reg16(RegSS) }

func (c *CPU) SetAX(v uint16) { c.SetReg16(RegAX, v) }
func (c *CPU) SetBX(v uint16) { c.SetReg16(RegBX, v) }
func (c *CPU) SetCX(v uint16) { c.SetReg16(RegCX, v) }
func (c *CPU) SetDX(v uint16) { c.SetReg16(RegDX, v) }
func (c *CPU) SetSI(v uint16) { c.SetReg16(RegSI, v) }
func (c *CPU) SetDI(v uint16) { c.SetReg16(RegDI, v) }
func (c *CPU) SetBP(v uint16) { c.SetReg16(RegBP, v) }
func (c *CPU) SetSP(v uint16) { c.SetReg16(RegSP, v) }
func (c *CPU) SetIP(v uint16) { c.SetReg16(RegIP, v) }
func (c *CPU) SetCS(v uint16) { c.SetReg16(RegCS, v) }
func (c *CPU) SetDS(v uint16) { c.SetReg16(RegDS, v) }
func (c *CPU) SetES(v uint16) { c.SetReg16(RegES, v) }
func (c *CPU) SetSS(v uint16) { c.SetReg16(RegSS, v) }

// AL/AH/... are the 8-bit aliases.
func (c *CPU) AL() byte { return c.Reg8(0) }
func (c *CPU) CL() byte { return c.Reg8(1) }
func (c *CPU) DL() byte { return c.Reg8(2) }
func (c *CPU) BL() byte { return c.Reg8(3) }
func (c *CPU) AH() byte { return c.Reg8(4) }
func (c *CPU) CH() byte { return c.Reg8(5) }
func (c *CPU) DH() byte { return c.Reg8(6) }
func (c *CPU) BH() byte { return c.Reg8(7) }

func (c *CPU) SetAL(v byte) { c.SetReg8(0, v) }
func (c *CPU) SetCL(v byte) { c.SetReg8(1, v) }
func (c *CPU) SetDL(v byte) { c.SetReg8(2, v) }
func (c *CPU) SetBL(v byte) { c.SetReg8(3, v) }
func (c *CPU) SetAH(v byte) { c.SetReg8(4, v) }
func (c *CPU) SetCH(v byte) { c.SetReg8(5, v) }
func (c *CPU) SetDH(v byte) { c.SetReg8(6, v) }
func (c *CPU) SetBH(v byte) { c.SetReg8(7, v) }

// Flag reads a single flag byte (0 or 1).
func (c *CPU) Flag(f int) bool {
	return c.mem.Read8(RegsBase+32+uint32(f)) != 0
}

// SetFlag writes a single flag byte.
func (c *CPU) SetFlag(f int, v bool) {
	var b byte
	if v {
		b = 1
	}
	c.mem.Write8(RegsBase+32+uint32(f), b)
}

func (c *CPU) CF() bool { return c.Flag(FlagCF) }
func (c *CPU) PF() bool { return c.Flag(FlagPF) }
func (c *CPU) AF() bool { return c.Flag(FlagAF) }
func (c *CPU) ZF() bool { return c.Flag(FlagZF) }
func (c *CPU) SF() bool { return c.Flag(FlagSF) }
func (c *CPU) TF() bool { return c.Flag(FlagTF) }
func (c *CPU) IF() bool { return c.Flag(FlagIF) }
func (c *CPU) DF() bool { return c.Flag(FlagDF) }
func (c *CPU) OF() bool { return c.Flag(FlagOF) }

// Flags16 composes the nine flag bytes into a real FLAGS word using the
// bit-position table published by C3, forcing the 8086 reserved bits
// (base value 0xF002, per §3/§6).
func (c *CPU) Flags16() uint16 {
	v := uint16(0xF002)
	for i := 0; i < numFlags; i++ {
		if c.Flag(i) {
			v |= 1 << c.tables.FlagBit[i]
		}
	}
	return v
}

// SetFlags16 decomposes a real FLAGS word into the nine flag bytes.
func (c *CPU) SetFlags16(v uint16) {
	for i := 0; i < numFlags; i++ {
		c.SetFlag(i, v&(1<<c.tables.FlagBit[i]) != 0)
	}
}

// segRegForID maps a segment-override id (0..3 = ES/CS/SS/DS) to its
// 16-bit register id in the combined register space.
func segRegForID(segID int) byte {
	return byte(RegES + segID)
}
