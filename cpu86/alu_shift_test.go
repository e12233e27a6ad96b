package cpu86

import "testing"

func TestRCLThroughCarry(t *testing.T) {
	// RCL AL,1 with CF=1 rotates the carry into bit 0: a 9-bit rotate
	// through CF, not an 8-bit rotate, per the ShiftRCL case's
	// "wide register" technique (alu_shift.go).
	c := newTestCPU(t, nil)
	c.SetFlag(FlagCF, true)
	result := c.doShift(ShiftRCL, 0x00, 1)
	if result != 0x01 {
		t.Errorf("RCL 0x00,1 with CF=1: got 0x%02X, want 0x01", result)
	}
	if c.CF() {
		t.Error("CF should be clear after rotating a 0 through")
	}
}

func TestSARSignExtends(t *testing.T) {
	c := newTestCPU(t, nil)
	result := c.doShift(ShiftSAR, 0x80, 1)
	if result != 0xC0 {
		t.Errorf("SAR 0x80,1: got 0x%02X, want 0xC0", result)
	}
	if c.CF() {
		t.Error("CF should be clear: bit 0 of 0x80 is 0")
	}
}

func TestShiftGroupByCL(t *testing.T) {
	// SHL AL,CL (0xD2 /4) with CL=3.
	c := newTestCPU(t, []byte{0xD2, 0xE0})
	c.SetAL(0x01)
	c.SetCL(3)
	c.Step()
	if c.AL() != 0x08 {
		t.Errorf("SHL AL,CL(3): got 0x%02X, want 0x08", c.AL())
	}
}
