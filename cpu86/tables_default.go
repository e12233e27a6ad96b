package cpu86

// initDefaultTables synthesizes the 20 decode tables directly from the
// static 8086/80186 instruction-set definition, reproducing what a real
// BIOS image would publish at boot (§6), for callers that want to run
// the core without a BIOS (chiefly tests: see *_test.go and harte_test.go).
//
// ALU sub-function indices (stored in RowExtra for the ALU opcode
// families) are fixed as: 0 ADD, 1 OR, 2 ADC, 3 SBB, 4 AND, 5 SUB,
// 6 XOR, 7 CMP, 8 MOV.
func initDefaultTables(t *Tables) {
	for i := 0; i < 256; i++ {
		t.rows[RowXlatOpcode][i] = 72 // bad opcode unless overridden below
	}
	initParityTable(t)
	initCondTables(t)
	initAddrTables(t)
	initFlagBitTable(t)

	const (
		aluADD = 0
		aluOR  = 1
		aluADC = 2
		aluSBB = 3
		aluAND = 4
		aluSUB = 5
		aluXOR = 6
		aluCMP = 7
	)
	arithFlags := byte(UpdateSZP | UpdateAOArith)
	logicFlags := byte(UpdateSZP | UpdateOCLogic)
	aluFlags := [8]byte{arithFlags, logicFlags, arithFlags, arithFlags, logicFlags, arithFlags, logicFlags, arithFlags}
	aluBase := [8]byte{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}

	// reg/mem ALU forms: op+0..op+3 (Eb,Gb / Ev,Gv / Gb,Eb / Gv,Ev).
	for op := byte(0); op < 8; op++ {
		base := aluBase[op]
		for variant := byte(0); variant < 4; variant++ {
			opcode := base + variant
			t.rows[RowXlatOpcode][opcode] = 8
			t.rows[RowExtra][opcode] = op
			t.rows[RowModSize][opcode] = 1
			t.rows[RowBaseSize][opcode] = 0
			t.rows[RowWidthSize][opcode] = 0
			t.rows[RowFlagsUpdate][opcode] = aluFlags[op]
		}
		// accumulator-immediate forms: op+4 (AL,Ib), op+5 (AX,Iv).
		t.rows[RowXlatOpcode][base+4] = 7
		t.rows[RowExtra][base+4] = op
		t.rows[RowModSize][base+4] = 0
		t.rows[RowBaseSize][base+4] = 0
		t.rows[RowWidthSize][base+4] = 1
		t.rows[RowFlagsUpdate][base+4] = aluFlags[op]

		t.rows[RowXlatOpcode][base+5] = 7
		t.rows[RowExtra][base+5] = op
		t.rows[RowModSize][base+5] = 0
		t.rows[RowBaseSize][base+5] = 0
		t.rows[RowWidthSize][base+5] = 1
		t.rows[RowFlagsUpdate][base+5] = aluFlags[op]
	}

	// Grp1 immediate-to-r/m: 0x80 Eb,Ib; 0x81 Ev,Iv; 0x83 Ev,Ib(sign-extend).
	// ALU op index comes from the mod/rm reg field at decode time, not extra.
	for _, opcode := range []byte{0x80, 0x81, 0x83} {
		t.rows[RowXlatOpcode][opcode] = 7
		t.rows[RowExtra][opcode] = 0xFF // signal: take ALU op from modrm.reg
		t.rows[RowModSize][opcode] = 1
		t.rows[RowBaseSize][opcode] = 0
		if opcode == 0x81 {
			t.rows[RowWidthSize][opcode] = 1
		} else {
			t.rows[RowWidthSize][opcode] = 0
		}
		t.rows[RowFlagsUpdate][opcode] = 0 // resolved per-op at dispatch
	}
	t.rows[RowXlatOpcode][0x83] = 7
	t.rows[RowWidthSize][0x83] = 0 // Ib operand, sign-extended to width at runtime

	// 0x82 is an undocumented alias of 0x80 (Eb,Ib) on real 8086/V20 silicon.
	t.rows[RowXlatOpcode][0x82] = 7
	t.rows[RowExtra][0x82] = 0xFF
	t.rows[RowModSize][0x82] = 1

	// Conditional short jumps: 0x70-0x7F, nibble selects the condition.
	for nibble := byte(0); nibble < 16; nibble++ {
		t.rows[RowXlatOpcode][0x70+nibble] = 0
		t.rows[RowBaseSize][0x70+nibble] = 1
	}

	// MOV reg/mem: 0x88..0x8B.
	for _, opcode := range []byte{0x88, 0x89, 0x8A, 0x8B} {
		t.rows[RowXlatOpcode][opcode] = 9
		t.rows[RowExtra][opcode] = 8
		t.rows[RowModSize][opcode] = 1
	}

	// MOV reg,imm: 0xB0..0xBF (0xB0-B7 = 8-bit reg, 0xB8-BF = 16-bit reg).
	for r := byte(0); r < 8; r++ {
		t.rows[RowXlatOpcode][0xB0+r] = 1
		t.rows[RowExtra][0xB0+r] = r
		t.rows[RowWidthSize][0xB0+r] = 1
		t.rows[RowXlatOpcode][0xB8+r] = 1
		t.rows[RowExtra][0xB8+r] = r
		t.rows[RowWidthSize][0xB8+r] = 1
	}

	// Grp FE/FF (INC/DEC/CALL/JMP/PUSH via mod/rm, sub-op in modrm.reg).
	t.rows[RowXlatOpcode][0xFE] = 2
	t.rows[RowModSize][0xFE] = 1
	t.rows[RowXlatOpcode][0xFF] = 2
	t.rows[RowModSize][0xFF] = 1

	// PUSH/POP reg: 0x50-0x57 / 0x58-0x5F.
	for r := byte(0); r < 8; r++ {
		t.rows[RowXlatOpcode][0x50+r] = 3
		t.rows[RowExtra][0x50+r] = r
		t.rows[RowXlatOpcode][0x58+r] = 4
		t.rows[RowExtra][0x58+r] = r
	}

	// Grp3 F6/F7: TEST/NOT/NEG/MUL/IMUL/DIV/IDIV, sub-op in modrm.reg.
	t.rows[RowXlatOpcode][0xF6] = 6
	t.rows[RowModSize][0xF6] = 1
	t.rows[RowXlatOpcode][0xF7] = 6
	t.rows[RowModSize][0xF7] = 1

	// MOV sreg/r/m (0x8C,0x8E), LEA (0x8D), POP r/m (0x8F).
	for _, opcode := range []byte{0x8C, 0x8D, 0x8E, 0x8F} {
		t.rows[RowXlatOpcode][opcode] = 10
		t.rows[RowModSize][opcode] = 1
	}

	// MOV AL/AX,[abs]: 0xA0-0xA3.
	for _, opcode := range []byte{0xA0, 0xA1, 0xA2, 0xA3} {
		t.rows[RowXlatOpcode][opcode] = 11
		t.rows[RowBaseSize][opcode] = 2
	}

	// Shift/rotate group: 0xC0,0xC1 (imm8 count, 80186+), 0xD0-0xD3 (1 or CL).
	t.rows[RowXlatOpcode][0xC0] = 12
	t.rows[RowModSize][0xC0] = 1
	t.rows[RowBaseSize][0xC0] = 1
	t.rows[RowFlagsUpdate][0xC0] = byte(UpdateSZP)
	t.rows[RowXlatOpcode][0xC1] = 12
	t.rows[RowModSize][0xC1] = 1
	t.rows[RowBaseSize][0xC1] = 1
	t.rows[RowFlagsUpdate][0xC1] = byte(UpdateSZP)
	for _, opcode := range []byte{0xD0, 0xD1, 0xD2, 0xD3} {
		t.rows[RowXlatOpcode][opcode] = 12
		t.rows[RowModSize][opcode] = 1
		t.rows[RowFlagsUpdate][opcode] = byte(UpdateSZP)
	}

	// LOOP/LOOPZ/LOOPNZ/JCXZ: 0xE0-0xE3.
	for r := byte(0); r < 4; r++ {
		t.rows[RowXlatOpcode][0xE0+r] = 13
		t.rows[RowExtra][0xE0+r] = r
		t.rows[RowBaseSize][0xE0+r] = 1
	}

	// JMP/CALL near/far immediate: 0xE8 CALL near, 0xE9 JMP near,
	// 0xEA JMP far, 0xEB JMP short.
	t.rows[RowXlatOpcode][0xE8] = 14
	t.rows[RowExtra][0xE8] = 0
	t.rows[RowBaseSize][0xE8] = 2
	t.rows[RowXlatOpcode][0xE9] = 14
	t.rows[RowExtra][0xE9] = 1
	t.rows[RowBaseSize][0xE9] = 2
	t.rows[RowXlatOpcode][0xEA] = 14
	t.rows[RowExtra][0xEA] = 2
	t.rows[RowBaseSize][0xEA] = 4
	t.rows[RowXlatOpcode][0xEB] = 14
	t.rows[RowExtra][0xEB] = 3
	t.rows[RowBaseSize][0xEB] = 1

	// TEST Eb/Ev,Gb/Gv: 0x84,0x85.
	t.rows[RowXlatOpcode][0x84] = 15
	t.rows[RowModSize][0x84] = 1
	t.rows[RowFlagsUpdate][0x84] = logicFlags
	t.rows[RowXlatOpcode][0x85] = 15
	t.rows[RowModSize][0x85] = 1
	t.rows[RowFlagsUpdate][0x85] = logicFlags

	// XCHG AX,reg: 0x91-0x97 (0x90 is NOP = XCHG AX,AX).
	t.rows[RowXlatOpcode][0x90] = 16
	t.rows[RowExtra][0x90] = 0
	for r := byte(1); r < 8; r++ {
		t.rows[RowXlatOpcode][0x90+r] = 16
		t.rows[RowExtra][0x90+r] = r
	}
	// XCHG reg,r/m: 0x86,0x87.
	t.rows[RowXlatOpcode][0x86] = 24
	t.rows[RowModSize][0x86] = 1
	t.rows[RowXlatOpcode][0x87] = 24
	t.rows[RowModSize][0x87] = 1

	// MOVSx/STOSx/LODSx: 0xA4,0xA5 (MOVS), 0xAA,0xAB (STOS), 0xAC,0xAD (LODS).
	for i, opcode := range []byte{0xA4, 0xA5, 0xAA, 0xAB, 0xAC, 0xAD} {
		t.rows[RowXlatOpcode][opcode] = 17
		t.rows[RowExtra][opcode] = byte(i / 2) // 0=MOVS,1=STOS,2=LODS
	}
	// CMPSx/SCASx: 0xA6,0xA7 (CMPS), 0xAE,0xAF (SCAS).
	for i, opcode := range []byte{0xA6, 0xA7, 0xAE, 0xAF} {
		t.rows[RowXlatOpcode][opcode] = 18
		t.rows[RowExtra][opcode] = byte(i / 2)
	}

	// RET/RETF/IRET: 0xC2 RET imm16, 0xC3 RET, 0xCA RETF imm16, 0xCB RETF, 0xCF IRET.
	t.rows[RowXlatOpcode][0xC2] = 19
	t.rows[RowExtra][0xC2] = 0
	t.rows[RowBaseSize][0xC2] = 2
	t.rows[RowXlatOpcode][0xC3] = 19
	t.rows[RowExtra][0xC3] = 1
	t.rows[RowXlatOpcode][0xCA] = 19
	t.rows[RowExtra][0xCA] = 2
	t.rows[RowBaseSize][0xCA] = 2
	t.rows[RowXlatOpcode][0xCB] = 19
	t.rows[RowExtra][0xCB] = 3
	t.rows[RowXlatOpcode][0xCF] = 19
	t.rows[RowExtra][0xCF] = 4

	// MOV r/m,imm: 0xC6,0xC7.
	t.rows[RowXlatOpcode][0xC6] = 20
	t.rows[RowModSize][0xC6] = 1
	t.rows[RowWidthSize][0xC6] = 1
	t.rows[RowXlatOpcode][0xC7] = 20
	t.rows[RowModSize][0xC7] = 1
	t.rows[RowWidthSize][0xC7] = 1

	// IN: 0xE4 (imm8,AL) 0xE5 (imm8,AX) 0xEC (DX,AL) 0xED (DX,AX).
	t.rows[RowXlatOpcode][0xE4] = 21
	t.rows[RowBaseSize][0xE4] = 1
	t.rows[RowXlatOpcode][0xE5] = 21
	t.rows[RowBaseSize][0xE5] = 1
	t.rows[RowXlatOpcode][0xEC] = 21
	t.rows[RowXlatOpcode][0xED] = 21

	// OUT: 0xE6,0xE7,0xEE,0xEF.
	t.rows[RowXlatOpcode][0xE6] = 22
	t.rows[RowBaseSize][0xE6] = 1
	t.rows[RowXlatOpcode][0xE7] = 22
	t.rows[RowBaseSize][0xE7] = 1
	t.rows[RowXlatOpcode][0xEE] = 22
	t.rows[RowXlatOpcode][0xEF] = 22

	// REP/REPNZ prefixes: 0xF2,0xF3.
	t.rows[RowXlatOpcode][0xF2] = 23
	t.rows[RowExtra][0xF2] = 0
	t.rows[RowXlatOpcode][0xF3] = 23
	t.rows[RowExtra][0xF3] = 1

	// PUSH/POP sreg, segment-override prefixes.
	pushSeg := map[byte]byte{0x06: 0, 0x0E: 1, 0x16: 2, 0x1E: 3}
	for opcode, seg := range pushSeg {
		t.rows[RowXlatOpcode][opcode] = 25
		t.rows[RowExtra][opcode] = seg
	}
	popSeg := map[byte]byte{0x07: 0, 0x17: 2, 0x1F: 3} // 0x0F is repurposed for hypercalls
	for opcode, seg := range popSeg {
		t.rows[RowXlatOpcode][opcode] = 26
		t.rows[RowExtra][opcode] = seg
	}
	segPrefix := map[byte]byte{0x26: 0, 0x2E: 1, 0x36: 2, 0x3E: 3}
	for opcode, seg := range segPrefix {
		t.rows[RowXlatOpcode][opcode] = 27
		t.rows[RowExtra][opcode] = seg
	}

	t.rows[RowXlatOpcode][0x27] = 28 // DAA
	t.rows[RowXlatOpcode][0x2F] = 29 // DAS
	t.rows[RowXlatOpcode][0x37] = 30 // AAA
	t.rows[RowExtra][0x37] = 0
	t.rows[RowXlatOpcode][0x3F] = 30 // AAS
	t.rows[RowExtra][0x3F] = 1
	t.rows[RowXlatOpcode][0x98] = 31 // CBW
	t.rows[RowExtra][0x98] = 0
	t.rows[RowXlatOpcode][0x99] = 31 // CWD
	t.rows[RowExtra][0x99] = 1

	t.rows[RowXlatOpcode][0x9A] = 32 // CALL FAR imm16:imm16
	t.rows[RowBaseSize][0x9A] = 4

	t.rows[RowXlatOpcode][0x9C] = 33 // PUSHF
	t.rows[RowXlatOpcode][0x9D] = 34 // POPF
	t.rows[RowXlatOpcode][0x9E] = 35 // SAHF
	t.rows[RowXlatOpcode][0x9F] = 36 // LAHF

	t.rows[RowXlatOpcode][0xC4] = 37 // LES
	t.rows[RowExtra][0xC4] = 0
	t.rows[RowModSize][0xC4] = 1
	t.rows[RowXlatOpcode][0xC5] = 37 // LDS
	t.rows[RowExtra][0xC5] = 1
	t.rows[RowModSize][0xC5] = 1

	t.rows[RowXlatOpcode][0xCC] = 38 // INT 3
	t.rows[RowXlatOpcode][0xCD] = 39 // INT imm8
	t.rows[RowBaseSize][0xCD] = 1
	t.rows[RowXlatOpcode][0xCE] = 40 // INTO

	t.rows[RowXlatOpcode][0xD4] = 41 // AAM
	t.rows[RowBaseSize][0xD4] = 1
	t.rows[RowXlatOpcode][0xD5] = 42 // AAD
	t.rows[RowBaseSize][0xD5] = 1

	t.rows[RowXlatOpcode][0xD6] = 43 // SALC
	t.rows[RowXlatOpcode][0xD7] = 44 // XLAT
	t.rows[RowXlatOpcode][0xF5] = 45 // CMC
	for i, opcode := range []byte{0xF8, 0xF9, 0xFA, 0xFB, 0xFC, 0xFD} {
		t.rows[RowXlatOpcode][opcode] = 46 // CLC/STC/CLI/STI/CLD/STD
		t.rows[RowExtra][opcode] = byte(i)
	}
	t.rows[RowXlatOpcode][0xA8] = 47 // TEST AL,imm
	t.rows[RowBaseSize][0xA8] = 1
	t.rows[RowFlagsUpdate][0xA8] = logicFlags
	t.rows[RowXlatOpcode][0xA9] = 47 // TEST AX,imm
	t.rows[RowWidthSize][0xA9] = 1
	t.rows[RowFlagsUpdate][0xA9] = logicFlags

	t.rows[RowXlatOpcode][0xF0] = 48 // LOCK
	t.rows[RowXlatOpcode][0xF4] = 49 // HLT
	t.rows[RowXlatOpcode][0x0F] = 50 // hypercall escape
	t.rows[RowBaseSize][0x0F] = 1

	t.rows[RowXlatOpcode][0xC8] = 51 // ENTER
	t.rows[RowBaseSize][0xC8] = 3
	t.rows[RowXlatOpcode][0xC9] = 52 // LEAVE
	t.rows[RowXlatOpcode][0x60] = 53 // PUSHA
	t.rows[RowXlatOpcode][0x61] = 54 // POPA

	t.rows[RowXlatOpcode][0x68] = 56 // PUSH imm16
	t.rows[RowBaseSize][0x68] = 2
	t.rows[RowXlatOpcode][0x6A] = 57 // PUSH imm8
	t.rows[RowBaseSize][0x6A] = 1

	t.rows[RowXlatOpcode][0x6C] = 59 // INSB
	t.rows[RowExtra][0x6C] = 0
	t.rows[RowXlatOpcode][0x6D] = 59 // INSW
	t.rows[RowExtra][0x6D] = 1
	t.rows[RowXlatOpcode][0x6E] = 60 // OUTSB
	t.rows[RowExtra][0x6E] = 0
	t.rows[RowXlatOpcode][0x6F] = 60 // OUTSW
	t.rows[RowExtra][0x6F] = 1

	// 80186 IMUL r,Ev,Iv/Ib and BOUND/ARPL: logged, unimplemented.
	for _, opcode := range []byte{0x62, 0x63, 0x69, 0x6B} {
		t.rows[RowXlatOpcode][opcode] = 58
		t.rows[RowModSize][opcode] = 1
	}
	// 8087 escapes.
	for opcode := byte(0xD8); opcode <= 0xDF; opcode++ {
		t.rows[RowXlatOpcode][opcode] = 69
		t.rows[RowModSize][opcode] = 1
	}
}

func initParityTable(t *Tables) {
	for v := 0; v < 256; v++ {
		bits := 0
		for b := v; b != 0; b &= b - 1 {
			bits++
		}
		if bits%2 == 0 {
			t.rows[RowParity][v] = 1
		}
	}
}

// initCondTables populates the four conditional-jump selector rows for
// nibbles 0x0-0xF (§4.3 class 0): column layout is (primary flag,
// secondary flag or 0xFF, combine mode, invert). Combine modes: 0 = just
// the primary flag, 1 = primary OR secondary, 2 = primary XOR secondary,
// 3 = (primary XOR secondary) OR zero-flag.
func initCondTables(t *Tables) {
	const none = 0xFF
	type cond struct{ a, b, combine, invert byte }
	conds := [16]cond{
		{FlagOF, none, 0, 0}, // JO
		{FlagOF, none, 0, 1}, // JNO
		{FlagCF, none, 0, 0}, // JB/JC
		{FlagCF, none, 0, 1}, // JNB/JNC
		{FlagZF, none, 0, 0}, // JZ/JE
		{FlagZF, none, 0, 1}, // JNZ/JNE
		{FlagCF, FlagZF, 1, 0}, // JBE
		{FlagCF, FlagZF, 1, 1}, // JNBE/JA
		{FlagSF, none, 0, 0},   // JS
		{FlagSF, none, 0, 1},   // JNS
		{FlagPF, none, 0, 0},   // JP/JPE
		{FlagPF, none, 0, 1},   // JNP/JPO
		{FlagSF, FlagOF, 2, 0}, // JL
		{FlagSF, FlagOF, 2, 1}, // JNL/JGE
		{FlagSF, FlagOF, 3, 0}, // JLE
		{FlagSF, FlagOF, 3, 1}, // JNLE/JG
	}
	for i, c := range conds {
		t.rows[RowCondA][i] = c.a
		t.rows[RowCondB][i] = c.b
		t.rows[RowCondC][i] = c.combine
		t.rows[RowCondD][i] = c.invert
	}
}

// initAddrTables populates the two (base, index, disp-enable, segment)
// quadruples used by the addressing unit (§4.1), one for i_mod!=0
// (rows RowAddrBase0..3) and one for i_mod==0 (rows RowAddrBase4..7).
func initAddrTables(t *Tables) {
	type entry struct{ base, index, disp, seg byte }
	modNonZero := [8]entry{
		{RegBX, RegSI, 1, RegDS},
		{RegBX, RegDI, 1, RegDS},
		{RegBP, RegSI, 1, RegSS},
		{RegBP, RegDI, 1, RegSS},
		{RegSI, RegZero, 1, RegDS},
		{RegDI, RegZero, 1, RegDS},
		{RegBP, RegZero, 1, RegSS},
		{RegBX, RegZero, 1, RegDS},
	}
	modZero := [8]entry{
		{RegBX, RegSI, 0, RegDS},
		{RegBX, RegDI, 0, RegDS},
		{RegBP, RegSI, 0, RegSS},
		{RegBP, RegDI, 0, RegSS},
		{RegSI, RegZero, 0, RegDS},
		{RegDI, RegZero, 0, RegDS},
		{RegZero, RegZero, 1, RegDS}, // mod==0,rm==6: absolute disp16
		{RegBX, RegZero, 0, RegDS},
	}
	for rm := 0; rm < 8; rm++ {
		e := modNonZero[rm]
		t.rows[RowAddrBase0][rm] = e.base
		t.rows[RowAddrBase1][rm] = e.index
		t.rows[RowAddrBase2][rm] = e.disp
		t.rows[RowAddrBase3][rm] = e.seg

		z := modZero[rm]
		t.rows[RowAddrBase4][rm] = z.base
		t.rows[RowAddrBase5][rm] = z.index
		t.rows[RowAddrBase6][rm] = z.disp
		t.rows[RowAddrBase7][rm] = z.seg
	}
}

// initFlagBitTable populates the real-FLAGS bit position of each of the
// nine engine flag bytes, in CF..OF order (§3).
func initFlagBitTable(t *Tables) {
	bits := [numFlags]byte{0, 2, 4, 6, 7, 8, 9, 10, 11} // CF PF AF ZF SF TF IF DF OF
	for i, b := range bits {
		t.rows[RowFlagBit][i] = b
	}
}
