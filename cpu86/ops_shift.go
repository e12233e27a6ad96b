package cpu86

// opShiftGroup implements class 12: the C0/C1/D0-D3 shift/rotate group.
// The sub-op is in modrm.reg; the count's source depends on the opcode:
// C0/C1 take an immediate byte, D0/D1 shift by 1, D2/D3 shift by CL.
func opShiftGroup(c *CPU) {
	dest := c.readOperandWidth(c.rmAddr)

	var n byte
	switch c.opcode {
	case 0xC0, 0xC1:
		n = c.immByte()
	case 0xD0, 0xD1:
		n = 1
	case 0xD2, 0xD3:
		n = c.CL()
	}

	result := c.doShift(c.iReg, dest, n)
	c.writeOperandWidth(c.rmAddr, result)
}
