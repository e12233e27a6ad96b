package cpu86

import "testing"

func TestPushaPopaRoundTrip(t *testing.T) {
	c := newTestCPU(t, []byte{0x60, 0x61}) // PUSHA; POPA
	c.SetSP(0x2000)
	c.SetAX(0x1111)
	c.SetCX(0x2222)
	c.SetDX(0x3333)
	c.SetBX(0x4444)
	c.SetBP(0x5555)
	c.SetSI(0x6666)
	c.SetDI(0x7777)

	startSP := c.SP()
	c.Step() // PUSHA

	c.SetAX(0)
	c.SetCX(0)
	c.SetDX(0)
	c.SetBX(0)
	c.SetBP(0)
	c.SetSI(0)
	c.SetDI(0)

	c.Step() // POPA

	if c.SP() != startSP {
		t.Errorf("SP after PUSHA/POPA: got 0x%04X, want 0x%04X", c.SP(), startSP)
	}
	if c.AX() != 0x1111 || c.CX() != 0x2222 || c.DX() != 0x3333 || c.BX() != 0x4444 ||
		c.BP() != 0x5555 || c.SI() != 0x6666 || c.DI() != 0x7777 {
		t.Errorf("register contents did not round-trip through PUSHA/POPA")
	}
}

func TestEnterLeave(t *testing.T) {
	// ENTER 0x0004,0 (no nesting); LEAVE.
	c := newTestCPU(t, []byte{0xC8, 0x04, 0x00, 0x00, 0xC9})
	c.SetSP(0x1000)
	c.SetBP(0)

	c.Step() // ENTER
	if c.BP() != 0x1000-2 {
		t.Errorf("BP after ENTER: got 0x%04X, want 0x%04X", c.BP(), uint16(0x1000-2))
	}
	if c.SP() != 0x1000-2-4 {
		t.Errorf("SP after ENTER: got 0x%04X, want 0x%04X", c.SP(), uint16(0x1000-2-4))
	}

	c.Step() // LEAVE
	if c.SP() != 0x1000 || c.BP() != 0 {
		t.Errorf("after LEAVE: SP=0x%04X BP=0x%04X, want SP=0x1000 BP=0x0000", c.SP(), c.BP())
	}
}

func TestPushImm16AndImm8SignExtend(t *testing.T) {
	// PUSH 0x1234; PUSH 0xFF (sign-extends to 0xFFFF).
	c := newTestCPU(t, []byte{0x68, 0x34, 0x12, 0x6A, 0xFF})
	c.SetSP(0x1000)

	c.Step() // PUSH imm16
	if v := c.pop16(); v != 0x1234 {
		t.Errorf("PUSH imm16: got 0x%04X, want 0x1234", v)
	}

	c.Step() // PUSH imm8
	if v := c.pop16(); v != 0xFFFF {
		t.Errorf("PUSH imm8 (sign-extended): got 0x%04X, want 0xFFFF", v)
	}
}
