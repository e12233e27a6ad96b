package debugmon

import (
	"fmt"
	"strconv"
	"strings"
)

// linearPC returns the core's current CS:IP as a flat address, using
// the same seg*16+off convention cpu86/addressing.go applies to every
// effective address (see DESIGN.md's note on the non-wrapping 8086
// addressing decision) — so a breakpoint set against a seg:off pair
// lines up with the address actually compared on each Step.
func (m *Monitor) linearPC() uint32 {
	return 16*uint32(m.cpu.CS()) + uint32(m.cpu.IP())
}

// parseAddr accepts either "SEGMENT:OFFSET" (both hex, no 0x prefix
// needed) or a single flat hex address.
func parseAddr(s string) (uint32, error) {
	if seg, off, ok := strings.Cut(s, ":"); ok {
		segV, err := strconv.ParseUint(seg, 16, 16)
		if err != nil {
			return 0, fmt.Errorf("bad segment %q: %w", seg, err)
		}
		offV, err := strconv.ParseUint(off, 16, 16)
		if err != nil {
			return 0, fmt.Errorf("bad offset %q: %w", off, err)
		}
		return 16*uint32(segV) + uint32(offV), nil
	}
	flat, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint32(flat), nil
}

func (m *Monitor) cmdHelp(args []string) error {
	fmt.Println("commands: help step [n] continue registers flags memory <addr> [len] " +
		"disassemble <addr> [n] break <addr> delete <addr> breakpoints reset quit")
	return nil
}

// cmdStep single-steps the core n times (default 1), printing
// registers after the last step.
func (m *Monitor) cmdStep(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad count %q: %w", args[0], err)
		}
		n = v
	}
	for i := 0; i < n && m.cpu.Running(); i++ {
		m.cpu.Step()
	}
	return m.cmdRegisters(nil)
}

// cmdContinue steps until a breakpoint address is reached or the core
// stops running.
func (m *Monitor) cmdContinue(args []string) error {
	for m.cpu.Running() {
		m.cpu.Step()
		if m.breakpoints[m.linearPC()] {
			fmt.Printf("breakpoint at %04X:%04X\n", m.cpu.CS(), m.cpu.IP())
			break
		}
	}
	return m.cmdRegisters(nil)
}

func (m *Monitor) cmdRegisters(args []string) error {
	c := m.cpu
	fmt.Printf("AX=%04X BX=%04X CX=%04X DX=%04X SI=%04X DI=%04X BP=%04X SP=%04X\n",
		c.AX(), c.BX(), c.CX(), c.DX(), c.SI(), c.DI(), c.BP(), c.SP())
	fmt.Printf("CS=%04X DS=%04X ES=%04X SS=%04X IP=%04X\n",
		c.CS(), c.DS(), c.ES(), c.SS(), c.IP())
	return nil
}

func (m *Monitor) cmdFlags(args []string) error {
	c := m.cpu
	set := func(b bool, name string) string {
		if b {
			return name
		}
		return "-"
	}
	fmt.Println(
		set(c.CF(), "CF"), set(c.PF(), "PF"), set(c.AF(), "AF"), set(c.ZF(), "ZF"),
		set(c.SF(), "SF"), set(c.TF(), "TF"), set(c.IF(), "IF"), set(c.DF(), "DF"),
		set(c.OF(), "OF"),
	)
	return nil
}

// cmdMemory dumps a hex+ASCII view of guest memory starting at addr,
// 16 bytes per line, for the given length (default 128 bytes).
func (m *Monitor) cmdMemory(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: memory <addr> [len]")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	length := uint32(128)
	if len(args) > 1 {
		v, err := strconv.ParseUint(args[1], 16, 32)
		if err != nil {
			return fmt.Errorf("bad length %q: %w", args[1], err)
		}
		length = uint32(v)
	}
	mem := m.cpu.Memory()
	for off := uint32(0); off < length; off += 16 {
		row := addr + off
		var hex, ascii strings.Builder
		for i := uint32(0); i < 16 && off+i < length; i++ {
			b := mem.Read8(row + i)
			fmt.Fprintf(&hex, "%02X ", b)
			if b >= 0x20 && b < 0x7F {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}
		fmt.Printf("%06X  %-48s %s\n", row, hex.String(), ascii.String())
	}
	return nil
}

// cmdDisassemble prints one line per byte: offset, raw byte, and the
// mnemonic table's best guess at its name as an opcode. Operand bytes
// are not skipped, so they are listed as opcodes too. It is not a full
// operand-aware disassembler — see mnemonicTable's doc comment for why
// that tradeoff was made here.
func (m *Monitor) cmdDisassemble(args []string) error {
	addr := m.linearPC()
	if len(args) > 0 {
		a, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		addr = a
	}
	n := 10
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad count %q: %w", args[1], err)
		}
		n = v
	}
	mem := m.cpu.Memory()
	for i := 0; i < n; i++ {
		op := mem.Read8(addr)
		fmt.Printf("%06X  %02X        %s\n", addr, op, mnemonicFor(op))
		addr++
	}
	return nil
}

func (m *Monitor) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <addr>")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	m.breakpoints[addr] = true
	fmt.Printf("breakpoint set at %06X\n", addr)
	return nil
}

func (m *Monitor) cmdDelete(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: delete <addr>")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	delete(m.breakpoints, addr)
	return nil
}

func (m *Monitor) cmdBreakpoints(args []string) error {
	if len(m.breakpoints) == 0 {
		fmt.Println("(none)")
		return nil
	}
	for addr := range m.breakpoints {
		fmt.Printf("%06X\n", addr)
	}
	return nil
}

func (m *Monitor) cmdReset(args []string) error {
	return m.cpu.Reset()
}

func (m *Monitor) cmdQuit(args []string) error {
	return errQuit
}
