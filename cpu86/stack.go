package cpu86

// push16 decrements SP by 2 once, then writes the word: a double
// decrement (SP adjusted once for the pointer arithmetic and again by
// the write) is a classic off-by-one here and is deliberately avoided.
func (c *CPU) push16(v uint16) {
	sp := c.SP() - 2
	c.SetSP(sp)
	c.mem.Write16(16*uint32(c.SS())+uint32(sp), v)
}

// pop16 reads the word at SS:SP, then increments SP by 2.
func (c *CPU) pop16() uint16 {
	sp := c.SP()
	v := c.mem.Read16(16*uint32(c.SS()) + uint32(sp))
	c.SetSP(sp + 2)
	return v
}
