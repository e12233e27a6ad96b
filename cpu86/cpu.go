package cpu86

import (
	"log/slog"
	"os"
)

// DefaultInt8RateLimit is the minimum number of instructions that must
// execute between two IRQ8 (timer) deliveries. Exposed as a
// configuration constant rather than hard-coded, so callers can tune
// or disable the clamp via SetInt8RateLimit.
const DefaultInt8RateLimit = 300

// numOpClasses is one past the highest xlated opcode class id (§4.3).
const numOpClasses = 73

// CPU is the 8086/80186/NEC-V20 execution core. It owns no goroutines:
// Step runs one instruction and returns: callers drive the loop.
type CPU struct {
	mem    *Memory
	tables *Tables
	device DeviceInterface
	log    *slog.Logger

	ops [numOpClasses]func(*CPU)

	int8RateLimit int
	instrSinceInt8 int
	ports portMirror

	fd *os.File
	hd *os.File

	// Per-iteration decoded-instruction record (§3).
	opcode      byte
	xlatID      byte
	extra       byte
	modSize     byte
	flagsUpdate byte
	iw          int // operand width: 0 = 8-bit, 1 = 16-bit
	id          int // direction bit
	iReg4bit    byte

	haveModRM bool
	iMod      byte
	iReg      byte
	iRM       byte
	disp      int32

	pc                  uint32
	data0, data1, data2 uint16

	rmAddr                 uint32
	opFromAddr, opToAddr    uint32
	opDest, opSource, opResult uint32

	// Prefix state, decremented before use: a counter of N is active
	// for N-1 more instructions after the one that set it.
	segOverrideEn int
	segOverride   byte
	repOverrideEn int
	repMode       int

	trapFlagLatched bool

	// extraSize lets an opcode handler add bytes to the IP-advance
	// total that the static decode tables cannot express, because they
	// depend on a sub-op resolved only at decode time (Grp3's TEST
	// immediate, present only for that one mod/rm-reg sub-form).
	extraSize uint16
	branchDelta int32
	suppressIPAdvance bool

	running       bool
	exitRequested bool
}

// NewCPU builds a core over mem, delegating devices to device. Pass a
// nil device for table-driven unit tests that never touch port I/O or
// hypercalls; pollDevicesAndInterrupts then skips the device tick and
// external IRQs, but still services the single-step trap.
func NewCPU(mem *Memory, device DeviceInterface, log *slog.Logger) *CPU {
	if log == nil {
		log = slog.Default()
	}
	c := &CPU{
		mem:           mem,
		tables:        &Tables{},
		device:        device,
		log:           log,
		int8RateLimit: DefaultInt8RateLimit,
	}
	c.tables.LoadDefaults()
	c.initOps()
	return c
}

// SetInt8RateLimit overrides the INT 8 delivery spacing guard.
func (c *CPU) SetInt8RateLimit(n int) { c.int8RateLimit = n }

// Memory exposes the underlying address space, e.g. for a debugger.
func (c *CPU) Memory() *Memory { return c.mem }

// Tables exposes the decode tables, e.g. for re-population after a
// fresh BIOS load during Reset.
func (c *CPU) Tables() *Tables { return c.tables }

// Running reports whether the engine should keep stepping.
func (c *CPU) Running() bool { return c.running && !c.exitRequested }

// Halt requests that the run loop stop after the current instruction.
func (c *CPU) Halt() { c.exitRequested = true }

// Step executes exactly one instruction, including the trailing
// interrupt/device poll (§4.3, §4.4).
func (c *CPU) Step() {
	pc := 16*uint32(c.CS()) + uint32(c.IP())
	c.pc = pc
	c.opcode = c.mem.Read8(pc)

	c.xlatID = c.tables.XlatOpcode(c.opcode)
	c.extra = c.tables.Extra(c.opcode)
	c.modSize = c.tables.ModSize(c.opcode)
	c.flagsUpdate = c.tables.FlagsUpdate(c.opcode)
	c.iw = int(c.opcode & 1)
	c.id = int((c.opcode >> 1) & 1)
	c.iReg4bit = c.opcode & 7
	c.haveModRM = false
	c.extraSize = 0
	c.branchDelta = 0
	c.suppressIPAdvance = false

	// MOV r/m,Sreg (0x8C) and MOV Sreg,r/m (0x8E) are always word-sized;
	// the generic i_w=opcode&1 extraction above gives 0 for both, which
	// would pick the wrong register alias while decoding mod/rm below.
	if c.opcode == 0x8C || c.opcode == 0x8E {
		c.iw = 1
	}

	c.data0 = c.mem.Read16(pc + 1)
	c.data1 = c.mem.Read16(pc + 2)
	c.data2 = c.mem.Read16(pc + 3)

	c.decrementPrefixCounters()

	size := uint16(1)
	if c.modSize > 0 {
		c.decodeModRM(pc)
		size += c.modRMLength()
	}

	if handler := c.ops[c.xlatID]; handler != nil {
		handler(c)
	} else {
		c.log.Warn("unimplemented opcode class", "class", c.xlatID, "opcode", c.opcode, "cs", c.CS(), "ip", c.IP())
	}

	if !c.suppressIPAdvance {
		size += uint16(c.tables.BaseSize(c.opcode))
		if c.tables.WidthSize(c.opcode) != 0 {
			size += uint16(c.iw + 1)
		}
		size += c.extraSize
		c.SetIP(uint16(int32(c.IP()) + int32(size) + c.branchDelta))
	}

	if c.flagsUpdate != 0 {
		c.applyFlagPolicy()
	}

	c.SetIP(c.IP()) // step 10: write IP mirror (no-op here, kept for clarity of the procedure)

	c.pollDevicesAndInterrupts()
}

// decrementPrefixCounters implements the "decrement before use" rule:
// a prefix sets its counter to 2, so the prefix instruction itself
// observes 2->1 and the following instruction observes 1->0, at which
// point the override has expired.
func (c *CPU) decrementPrefixCounters() {
	if c.segOverrideEn > 0 {
		c.segOverrideEn--
	}
	if c.repOverrideEn > 0 {
		c.repOverrideEn--
	}
}

// prefixActive reports whether a segment-override or REP prefix is
// still in effect for the instruction currently executing.
func (c *CPU) prefixActive() bool {
	return c.segOverrideEn > 0 || c.repOverrideEn > 0
}
