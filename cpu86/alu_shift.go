package cpu86

// Shift/rotate sub-op indices, taken from the mod/rm reg field of the
// C0/C1/D0-D3 group (§4.2).
const (
	ShiftROL = 0
	ShiftROR = 1
	ShiftRCL = 2
	ShiftRCR = 3
	ShiftSHL = 4
	ShiftSHR = 5
	ShiftSAL = 6 // undocumented alias of SHL
	ShiftSAR = 7
)

// doShift executes one shift/rotate primitive for count n (ROL/ROR
// reduce n mod width and RCL/RCR mod width+1 here; the caller passes
// the raw count), deriving CF/OF per the table in §4.2. It leaves
// opDest/opSource/opResult set so the caller's forced UPDATE_SZP policy
// picks up SF/ZF/PF from opResult.
func (c *CPU) doShift(op byte, dest uint32, n byte) uint32 {
	width := 8
	if c.iw == 1 {
		width = 16
	}
	mask := c.widthMask()
	dest &= mask
	result := dest

	if n == 0 {
		c.recordALUResult(dest, uint32(n), dest)
		return dest
	}

	switch op {
	case ShiftROL:
		rot := n % byte(width)
		result = ((dest << rot) | (dest >> (uint(width) - uint(rot)))) & mask
		cf := result&1 != 0
		c.SetFlag(FlagCF, cf)
		c.SetFlag(FlagOF, c.signBit(result) != cf)

	case ShiftROR:
		rot := n % byte(width)
		result = ((dest >> rot) | (dest << (uint(width) - uint(rot)))) & mask
		cf := c.signBit(result)
		prevMSB := (result<<1)&mask != 0 && c.signBit((result<<1)&mask)
		c.SetFlag(FlagCF, cf)
		c.SetFlag(FlagOF, cf != prevMSB)

	case ShiftRCL:
		total := uint(width) + 1
		rot := uint(n) % total
		cfBit := uint32(0)
		if c.CF() {
			cfBit = 1
		}
		wide := dest | (cfBit << uint(width))
		wideMask := (mask << 1) | 1
		for i := uint(0); i < rot; i++ {
			top := (wide >> uint(width)) & 1
			wide = ((wide << 1) | top) & wideMask
		}
		result = wide & mask
		cf := (wide>>uint(width))&1 != 0
		c.SetFlag(FlagCF, cf)
		c.SetFlag(FlagOF, c.signBit(result) != cf)

	case ShiftRCR:
		total := uint(width) + 1
		rot := uint(n) % total
		cfBit := uint32(0)
		if c.CF() {
			cfBit = 1
		}
		wide := dest | (cfBit << uint(width))
		wideMask := (mask << 1) | 1
		ofBefore := c.signBit(dest) != c.CF()
		for i := uint(0); i < rot; i++ {
			bottom := wide & 1
			wide = (wide >> 1) | (bottom << uint(width))
			wide &= wideMask
		}
		result = wide & mask
		cf := (wide>>uint(width))&1 != 0
		c.SetFlag(FlagCF, cf)
		if rot == 1 {
			c.SetFlag(FlagOF, ofBefore)
		} else {
			c.SetFlag(FlagOF, false)
		}

	case ShiftSHL, ShiftSAL:
		if int(n) <= width {
			cf := (dest>>(uint(width)-uint(n)))&1 != 0
			result = (dest << n) & mask
			c.SetFlag(FlagCF, cf)
			c.SetFlag(FlagOF, c.signBit(result) != cf)
		} else {
			result = 0
			c.SetFlag(FlagCF, false)
			c.SetFlag(FlagOF, false)
		}

	case ShiftSHR:
		cf := (dest>>(n-1))&1 != 0
		result = (dest & mask) >> n
		c.SetFlag(FlagCF, cf)
		c.SetFlag(FlagOF, c.signBit(dest))

	case ShiftSAR:
		cf := (dest>>(n-1))&1 != 0
		var signedVal int64
		if c.iw == 0 {
			signedVal = int64(int8(dest))
		} else {
			signedVal = int64(int16(dest))
		}
		result = uint32(signedVal>>n) & mask
		c.SetFlag(FlagCF, cf)
		c.SetFlag(FlagOF, false)
	}

	c.recordALUResult(dest, uint32(n), result)
	return result
}
