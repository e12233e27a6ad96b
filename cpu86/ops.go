package cpu86

// initOps populates the xlated-opcode-class dispatch table (§4.3): each
// slot is a small, single-purpose handler keyed by the class id the
// decode tables resolve the raw opcode to, never by the raw opcode
// itself.
func (c *CPU) initOps() {
	c.ops[0] = opCondJumpShort
	c.ops[1] = opMOVRegImm
	c.ops[2] = opGrpFEFF
	c.ops[3] = opPushReg
	c.ops[4] = opPopReg
	c.ops[5] = opGrpFEFF
	c.ops[6] = opGrp3
	c.ops[7] = opALUImmediate
	c.ops[8] = opALURegMem
	c.ops[9] = opMOVRegMem
	c.ops[10] = opMovSregLeaPop
	c.ops[11] = opMOVAbs
	c.ops[12] = opShiftGroup
	c.ops[13] = opLoop
	c.ops[14] = opJmpCallImm
	c.ops[15] = opTESTRegMem
	c.ops[16] = opXCHGAX
	c.ops[17] = opStringMove
	c.ops[18] = opStringCompare
	c.ops[19] = opRet
	c.ops[20] = opMOVImmRM
	c.ops[21] = opIn
	c.ops[22] = opOut
	c.ops[23] = opRepPrefix
	c.ops[24] = opXCHGRegMem
	c.ops[25] = opPushSreg
	c.ops[26] = opPopSreg
	c.ops[27] = opSegOverridePrefix
	c.ops[28] = opDAA
	c.ops[29] = opDAS
	c.ops[30] = opAAAAS
	c.ops[31] = opCBWCWD
	c.ops[32] = opCallFar
	c.ops[33] = opPushf
	c.ops[34] = opPopf
	c.ops[35] = opSahf
	c.ops[36] = opLahf
	c.ops[37] = opLxS
	c.ops[38] = opInt3
	c.ops[39] = opIntImm
	c.ops[40] = opInto
	c.ops[41] = opAAM
	c.ops[42] = opAAD
	c.ops[43] = opSalc
	c.ops[44] = opXlat
	c.ops[45] = opCmc
	c.ops[46] = opFlagSet
	c.ops[47] = opTestAccImm
	c.ops[48] = opLock
	c.ops[49] = opHlt
	c.ops[50] = opHypercall
	c.ops[51] = opEnter
	c.ops[52] = opLeave
	c.ops[53] = opPusha
	c.ops[54] = opPopa
	c.ops[55] = opUnimplemented
	c.ops[56] = opPushImm16
	c.ops[57] = opPushImm8
	c.ops[58] = opUnimplemented
	c.ops[59] = opINS
	c.ops[60] = opOUTS
	for i := range c.ops {
		if c.ops[i] == nil {
			c.ops[i] = opUnimplemented
		}
	}
}
