package debugmon

import "fmt"

// mnemonicTable names the common 8086 opcodes by their documented
// mnemonic. A full operand-aware disassembler would need to re-walk
// the same mod/rm and immediate decoding cpu86/addressing.go already
// does per-instruction during Step, which means either exporting that
// decode path for reuse or duplicating it here; neither is worth it
// for an inspection aid whose job is "what instruction is at this
// address", not an accurate listing for reassembly. No example repo
// in the corpus carries a general x86 disassembler to ground a richer
// one on, so this stays a plain byte-indexed lookup table (stdlib
// only — see DESIGN.md).
var mnemonicTable = map[byte]string{
	0x00: "ADD Eb,Gb", 0x01: "ADD Ev,Gv", 0x02: "ADD Gb,Eb", 0x03: "ADD Gv,Ev",
	0x04: "ADD AL,Ib", 0x05: "ADD AX,Iv",
	0x06: "PUSH ES", 0x07: "POP ES",
	0x0E: "PUSH CS",
	0x16: "PUSH SS", 0x17: "POP SS",
	0x1E: "PUSH DS", 0x1F: "POP DS",
	0x27: "DAA", 0x2F: "DAS",
	0x28: "SUB Eb,Gb", 0x29: "SUB Ev,Gv", 0x2A: "SUB Gb,Eb", 0x2B: "SUB Gv,Ev",
	0x30: "XOR Eb,Gb", 0x31: "XOR Ev,Gv", 0x32: "XOR Gb,Eb", 0x33: "XOR Gv,Ev",
	0x37: "AAA", 0x3F: "AAS",
	0x38: "CMP Eb,Gb", 0x39: "CMP Ev,Gv", 0x3A: "CMP Gb,Eb", 0x3B: "CMP Gv,Ev",
	0x3C: "CMP AL,Ib", 0x3D: "CMP AX,Iv",
	0x40: "INC AX", 0x41: "INC CX", 0x42: "INC DX", 0x43: "INC BX",
	0x48: "DEC AX", 0x49: "DEC CX", 0x4A: "DEC DX", 0x4B: "DEC BX",
	0x50: "PUSH AX", 0x51: "PUSH CX", 0x52: "PUSH DX", 0x53: "PUSH BX",
	0x54: "PUSH SP", 0x55: "PUSH BP", 0x56: "PUSH SI", 0x57: "PUSH DI",
	0x58: "POP AX", 0x59: "POP CX", 0x5A: "POP DX", 0x5B: "POP BX",
	0x5C: "POP SP", 0x5D: "POP BP", 0x5E: "POP SI", 0x5F: "POP DI",
	0x70: "JO", 0x71: "JNO", 0x72: "JB", 0x73: "JAE",
	0x74: "JE", 0x75: "JNE", 0x76: "JBE", 0x77: "JA",
	0x78: "JS", 0x79: "JNS", 0x7A: "JP", 0x7B: "JNP",
	0x7C: "JL", 0x7D: "JGE", 0x7E: "JLE", 0x7F: "JG",
	0x88: "MOV Eb,Gb", 0x89: "MOV Ev,Gv", 0x8A: "MOV Gb,Eb", 0x8B: "MOV Gv,Ev",
	0x8C: "MOV Ew,Sw", 0x8D: "LEA Gv,M", 0x8E: "MOV Sw,Ew", 0x8F: "POP Ev",
	0x90: "NOP",
	0x98: "CBW", 0x99: "CWD", 0x9A: "CALL Ap", 0x9C: "PUSHF", 0x9D: "POPF",
	0x9E: "SAHF", 0x9F: "LAHF",
	0xA4: "MOVSB", 0xA5: "MOVSW", 0xA6: "CMPSB", 0xA7: "CMPSW",
	0xA8: "TEST AL,Ib", 0xA9: "TEST AX,Iv",
	0xAA: "STOSB", 0xAB: "STOSW", 0xAC: "LODSB", 0xAD: "LODSW",
	0xAE: "SCASB", 0xAF: "SCASW",
	0xB0: "MOV AL,Ib", 0xB8: "MOV AX,Iv",
	0xC2: "RET Iw", 0xC3: "RET", 0xC6: "MOV Eb,Ib", 0xC7: "MOV Ev,Iv",
	0xCA: "RETF Iw", 0xCB: "RETF", 0xCC: "INT 3", 0xCD: "INT Ib", 0xCE: "INTO", 0xCF: "IRET",
	0xD4: "AAM Ib", 0xD5: "AAD Ib", 0xD7: "XLAT",
	0xE0: "LOOPNE", 0xE1: "LOOPE", 0xE2: "LOOP", 0xE3: "JCXZ",
	0xE4: "IN AL,Ib", 0xE5: "IN AX,Ib", 0xE6: "OUT Ib,AL", 0xE7: "OUT Ib,AX",
	0xE8: "CALL Jv", 0xE9: "JMP Jv", 0xEA: "JMP Ap", 0xEB: "JMP Jb",
	0xEC: "IN AL,DX", 0xED: "IN AX,DX", 0xEE: "OUT DX,AL", 0xEF: "OUT DX,AX",
	0xF4: "HLT", 0xF5: "CMC",
	0xF8: "CLC", 0xF9: "STC", 0xFA: "CLI", 0xFB: "STI", 0xFC: "CLD", 0xFD: "STD",
	0x0F: "(0F) HYPERCALL Ib",
}

func mnemonicFor(op byte) string {
	if name, ok := mnemonicTable[op]; ok {
		return name
	}
	return fmt.Sprintf("db %02Xh", op)
}
