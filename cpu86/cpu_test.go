package cpu86

import "testing"

// newTestCPU builds a core with no attached device — table-driven unit
// tests never touch port I/O or hypercalls — and loads prog at CS:IP =
// 0000:0000: poke bytes into memory, then Step and assert.
func newTestCPU(t *testing.T, prog []byte) *CPU {
	t.Helper()
	mem := NewMemory(MinMemorySize)
	mem.LoadBlob(0, prog)
	c := NewCPU(mem, nil, nil)
	c.SetCS(0)
	c.SetIP(0)
	return c
}

func TestMOVRegImmAndRegReg(t *testing.T) {
	// MOV AX,0x1234; MOV BX,AX.
	c := newTestCPU(t, []byte{0xB8, 0x34, 0x12, 0x89, 0xC3})
	c.Step()
	c.Step()
	if c.AX() != 0x1234 {
		t.Errorf("AX: got 0x%04X, want 0x1234", c.AX())
	}
	if c.BX() != 0x1234 {
		t.Errorf("BX: got 0x%04X, want 0x1234", c.BX())
	}
	if c.IP() != 5 {
		t.Errorf("IP: got %d, want 5", c.IP())
	}
}

func TestADDFlagsOnOverflow(t *testing.T) {
	// MOV AL,0xFF; ADD AL,2.
	c := newTestCPU(t, []byte{0xB0, 0xFF, 0x04, 0x02})
	c.Step()
	c.Step()
	if c.AL() != 0x01 {
		t.Errorf("AL: got 0x%02X, want 0x01", c.AL())
	}
	if !c.CF() {
		t.Error("CF should be set")
	}
	if !c.AF() {
		t.Error("AF should be set")
	}
	if c.ZF() {
		t.Error("ZF should be clear")
	}
	if c.SF() {
		t.Error("SF should be clear")
	}
	if c.OF() {
		t.Error("OF should be clear")
	}
	if c.PF() {
		t.Error("PF should be clear")
	}
}

func TestSHLSetsCFOFZF(t *testing.T) {
	// MOV AX,0x8000; SHL AX,1.
	c := newTestCPU(t, []byte{0xB8, 0x00, 0x80, 0xD1, 0xE0})
	c.Step()
	c.Step()
	if c.AX() != 0x0000 {
		t.Errorf("AX: got 0x%04X, want 0x0000", c.AX())
	}
	if !c.CF() {
		t.Error("CF should be set")
	}
	if !c.OF() {
		t.Error("OF should be set")
	}
	if !c.ZF() {
		t.Error("ZF should be set")
	}
	if c.SF() {
		t.Error("SF should be clear")
	}
}

func TestRepStosb(t *testing.T) {
	// MOV CX,3; REP STOSB, with AL=0x41, ES=0, DI=0x100.
	c := newTestCPU(t, []byte{0xB9, 0x03, 0x00, 0xF3, 0xAA})
	c.SetAL(0x41)
	c.SetES(0)
	c.SetDI(0x100)

	c.Step() // MOV CX,3
	if c.CX() != 3 {
		t.Fatalf("CX after MOV: got %d, want 3", c.CX())
	}

	c.Step() // REP prefix: sets repOverrideEn
	c.Step() // STOSB: opStringMove loops internally while CX != 0

	for i, want := range []uint16{0x100, 0x101, 0x102} {
		got := c.mem.Read8(uint32(want))
		if got != 0x41 {
			t.Errorf("byte %d at 0x%03X: got 0x%02X, want 0x41", i, want, got)
		}
	}
	if c.CX() != 0 {
		t.Errorf("CX: got %d, want 0", c.CX())
	}
	if c.DI() != 0x103 {
		t.Errorf("DI: got 0x%04X, want 0x103", c.DI())
	}
}

func TestIntImmPushesFlagsCSIPAndClearsIFTF(t *testing.T) {
	// CD 21 at CS:IP=F000:0100, IVT[0x21*4] = 0x1234:0xABCD,
	// FLAGS=0x0202.
	mem := NewMemory(MinMemorySize)
	mem.Write16(0x21*4, 0xABCD)
	mem.Write16(0x21*4+2, 0x1234)
	mem.LoadBlob(16*0xF000+0x0100, []byte{0xCD, 0x21})

	c := NewCPU(mem, nil, nil)
	c.SetCS(0xF000)
	c.SetIP(0x0100)
	c.SetFlags16(0x0202)

	c.Step()

	if c.CS() != 0x1234 || c.IP() != 0xABCD {
		t.Errorf("CS:IP after INT: got %04X:%04X, want 1234:ABCD", c.CS(), c.IP())
	}
	if c.IF() || c.TF() {
		t.Error("IF and TF should both be clear after INT")
	}

	sp := c.SP()
	if ip := c.mem.Read16(16*uint32(c.SS())+uint32(sp)); ip != 0x0102 {
		t.Errorf("pushed IP: got 0x%04X, want 0x0102", ip)
	}
	if cs := c.mem.Read16(16*uint32(c.SS()) + uint32(sp) + 2); cs != 0xF000 {
		t.Errorf("pushed CS: got 0x%04X, want 0xF000", cs)
	}
	// Flags16 forces the reserved bits (base 0xF002), so FLAGS=0x0202
	// is pushed as 0xF202.
	if flags := c.mem.Read16(16*uint32(c.SS()) + uint32(sp) + 4); flags != 0xF202 {
		t.Errorf("pushed FLAGS: got 0x%04X, want 0xF202", flags)
	}
}

func TestAAMZeroBaseVectorsDivideError(t *testing.T) {
	// AAM 0 vectors INT 0.
	mem := NewMemory(MinMemorySize)
	mem.Write16(0, 0x5678) // IVT[0] IP
	mem.Write16(2, 0x1111) // IVT[0] CS
	mem.LoadBlob(0, []byte{0xD4, 0x00})

	c := NewCPU(mem, nil, nil)
	c.SetCS(0)
	c.SetIP(0)

	c.Step()

	if c.CS() != 0x1111 || c.IP() != 0x5678 {
		t.Errorf("CS:IP after AAM 0: got %04X:%04X, want 1111:5678", c.CS(), c.IP())
	}
}

func TestPushPopRoundTripsAndSPUnchanged(t *testing.T) {
	// PUSH x; POP y leaves y==x and SP unchanged; push16 must move SP
	// by exactly 2, not 4 (see DESIGN.md).
	c := newTestCPU(t, nil)
	c.SetSP(0x1000)
	startSP := c.SP()

	c.push16(0xBEEF)
	if got := c.SP(); got != startSP-2 {
		t.Errorf("SP after one push16: got 0x%04X, want 0x%04X", got, startSP-2)
	}

	got := c.pop16()
	if got != 0xBEEF {
		t.Errorf("pop16: got 0x%04X, want 0xBEEF", got)
	}
	if c.SP() != startSP {
		t.Errorf("SP after push+pop: got 0x%04X, want 0x%04X", c.SP(), startSP)
	}
}

func TestPushfPopfRoundTrips(t *testing.T) {
	c := newTestCPU(t, nil)
	c.SetSP(0x1000)
	c.SetFlags16(0x0ED7)

	c.push16(c.Flags16())
	restored := c.pop16()

	if restored&0x0FD5 != 0x0ED7&0x0FD5 {
		t.Errorf("PUSHF/POPF round-trip: got 0x%04X, want 0x%04X (masked)", restored&0x0FD5, 0x0ED7&0x0FD5)
	}
}

func TestRegisterAliasing(t *testing.T) {
	c := newTestCPU(t, nil)

	c.SetAX(0x1234)
	if c.AH() != 0x12 || c.AL() != 0x34 {
		t.Errorf("AH/AL after MOV AX,0x1234: got %02X/%02X, want 12/34", c.AH(), c.AL())
	}

	c.SetAH(0x56)
	if c.AX() != 0x5634 {
		t.Errorf("AX after MOV AH,0x56: got 0x%04X, want 0x5634", c.AX())
	}
}

func TestAddressingIsNonWrapping(t *testing.T) {
	// This engine computes seg*16+off with no 20-bit mask, so
	// seg=0xFFFF, off=0x0010 lands at 0x100000, not the classic 8086
	// wrap to 0x000000. See DESIGN.md for why this convention was chosen.
	c := newTestCPU(t, []byte{0x8A, 0x04}) // MOV AL,[SI]
	c.SetDS(0xFFFF)
	c.SetSI(0x0010)
	c.Step()
	addr := c.rmAddr
	if addr != 0x100000 {
		t.Errorf("effective address: got 0x%05X, want 0x100000", addr)
	}
}
