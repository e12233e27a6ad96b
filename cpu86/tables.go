package cpu86

// Flag-update policy bits (§4.2), stored per-opcode in RowFlagsUpdate.
const (
	UpdateSZP      = 1 << 0
	UpdateAOArith  = 1 << 1
	UpdateOCLogic  = 1 << 2
)

// Row indices into the 20×256 decode table the BIOS publishes at boot
// (§6 "CPU reset"). Rows 0–6 and 19 are opcode- or value-indexed; rows
// 7–10 are the conditional-jump selector tables (indexed by the jump's
// low nibble); rows 11–18 are the four (base, index, disp-enable, seg)
// quadruples used by the addressing unit, each meaningful only in its
// first 8 columns (indexed by i_rm).
const (
	RowXlatOpcode = iota // xlat_opcode_id: 0..72
	RowExtra             // sub-function selector ("extra")
	RowBaseSize          // base instruction length term
	RowWidthSize         // 0 or 1; multiplied by (i_w+1) in the IP-advance formula
	RowModSize           // 0 if no mod/rm byte, else >0
	RowFlagsUpdate       // UpdateSZP | UpdateAOArith | UpdateOCLogic
	RowParity            // parity_table[value] -> 0/1, indexed by value not opcode
	RowCondA             // conditional-jump table A
	RowCondB             // conditional-jump table B
	RowCondC             // conditional-jump table C
	RowCondD             // conditional-jump table D
	RowAddrBase0         // T[0][i_rm]: base reg id, mod!=0
	RowAddrBase1         // T[1][i_rm]: index reg id, mod!=0
	RowAddrBase2         // T[2][i_rm]: disp-enable, mod!=0
	RowAddrBase3         // T[3][i_rm]: segment reg id, mod!=0
	RowAddrBase4         // T[4][i_rm]: base reg id, mod==0
	RowAddrBase5         // T[5][i_rm]: index reg id, mod==0
	RowAddrBase6         // T[6][i_rm]: disp-enable, mod==0
	RowAddrBase7         // T[7][i_rm]: segment reg id, mod==0
	RowFlagBit           // first 9 columns: bit position of CF..OF in the real FLAGS word
	numTableRows
)

// tableBiosPtrBase is the register-space index (not byte offset) at
// which the BIOS publishes, per row, a 16-bit pointer to that row's
// 256-byte table within its own F000 segment (§6): the table base
// address is RegsBase + regs16[0x81+i], and the table's column j lives
// j bytes past that.
const tableBiosPtrBase = 0x81

// Tables holds the fully-populated 20×256 decode table set, either
// synthesized from the static 8086 instruction-set definition or read
// from a loaded BIOS image.
type Tables struct {
	rows    [numTableRows][256]byte
	FlagBit [numFlags]byte
}

// LoadFromBIOS extracts the 20 decode tables from a booted BIOS image
// per the pointer-table indirection in §6: for row i, a 16-bit pointer
// at RegsBase+2*(tableBiosPtrBase+i) gives the row's base offset within
// the F000 segment; column j is the byte at that offset+j.
func (t *Tables) LoadFromBIOS(mem *Memory) {
	for i := 0; i < numTableRows; i++ {
		ptr := mem.Read16(RegsBase + 2*uint32(tableBiosPtrBase+i))
		for j := 0; j < 256; j++ {
			t.rows[i][j] = mem.Read8(RegsBase + uint32(ptr) + uint32(j))
		}
	}
	copy(t.FlagBit[:], t.rows[RowFlagBit][:numFlags])
}

// LoadDefaults synthesizes the decode tables directly from the static
// 8086/80186 instruction-set definition, for use when no BIOS image is
// available (e.g. unit tests that drive the core with hand-assembled
// byte sequences). See initDefaultTables in tables_default.go.
func (t *Tables) LoadDefaults() {
	initDefaultTables(t)
	copy(t.FlagBit[:], t.rows[RowFlagBit][:numFlags])
}

func (t *Tables) XlatOpcode(op byte) byte    { return t.rows[RowXlatOpcode][op] }
func (t *Tables) Extra(op byte) byte         { return t.rows[RowExtra][op] }
func (t *Tables) BaseSize(op byte) byte      { return t.rows[RowBaseSize][op] }
func (t *Tables) WidthSize(op byte) byte     { return t.rows[RowWidthSize][op] }
func (t *Tables) ModSize(op byte) byte       { return t.rows[RowModSize][op] }
func (t *Tables) FlagsUpdate(op byte) byte   { return t.rows[RowFlagsUpdate][op] }
func (t *Tables) Parity(v byte) bool         { return t.rows[RowParity][v] != 0 }
func (t *Tables) CondTable(row, idx int) byte { return t.rows[RowCondA+row][idx] }

// AddrBase returns T[k][rm] as named in §4.1: k selects one of the two
// quadruples (0 for i_mod!=0, 4 for i_mod==0) and k+0..k+3 select
// base-reg / index-reg / disp-enable / segment-reg respectively.
func (t *Tables) AddrBase(k int, rm byte) byte {
	return t.rows[RowAddrBase0+k][rm&7]
}
