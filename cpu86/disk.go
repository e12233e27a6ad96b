package cpu86

import (
	"os"
	"time"
)

// Hypercall selectors for the `0F imm8` escape (xlated class 50, §6).
// These are host-side services the engine provides directly — console
// output, the real-time clock, and raw disk sector I/O — none of which
// are modeled as an emulated device; see the GLOSSARY entry for
// "hypercall".
const (
	HypercallPutcharAL = 0
	HypercallGetRTC    = 1
	HypercallDiskRead  = 2
	HypercallDiskWrite = 3
)

// opHypercall implements class 50.
func opHypercall(c *CPU) {
	switch c.immByte() {
	case HypercallPutcharAL:
		os.Stdout.Write([]byte{c.AL()})
	case HypercallGetRTC:
		c.hypercallGetRTC()
	case HypercallDiskRead:
		c.hypercallDiskIO(false)
	case HypercallDiskWrite:
		c.hypercallDiskIO(true)
	}
}

// hypercallGetRTC writes a struct{sec,min,hour,mday,mon,yr,wday,yday,
// isdst int32; millitm int16} at ES:BX, all little-endian, per §6.
func (c *CPU) hypercallGetRTC() {
	now := time.Now()
	addr := 16*uint32(c.ES()) + uint32(c.BX())
	fields := []int32{
		int32(now.Second()),
		int32(now.Minute()),
		int32(now.Hour()),
		int32(now.Day()),
		int32(now.Month() - 1),
		int32(now.Year() - 1900),
		int32(now.Weekday()),
		int32(now.YearDay() - 1),
		0, // isdst: not modeled
	}
	for i, v := range fields {
		c.mem.Write32(addr+uint32(i*4), uint32(v))
	}
	c.mem.Write16(addr+36, uint16(now.Nanosecond()/1_000_000))
}

// diskHandle picks the hd or fd handle per DL (0=HD, 1=FD), per §6.
func (c *CPU) diskHandle() *os.File {
	if c.DL() == 0 {
		return c.hd
	}
	return c.fd
}

// hypercallDiskIO implements DISK_READ/DISK_WRITE (§6): the 16-bit
// sector number in BP is multiplied by 512 in 64-bit arithmetic to give
// the byte offset; count in AX, buffer at ES:BX, drive in DL. AL=0x00
// on success, AL=0xFF on seek/IO failure.
func (c *CPU) hypercallDiskIO(write bool) {
	f := c.diskHandle()
	if f == nil {
		c.SetAL(0xFF)
		return
	}
	offset := int64(c.BP()) * 512
	count := int(c.AX())
	addr := 16*uint32(c.ES()) + uint32(c.BX())

	if write {
		buf := make([]byte, count)
		for i := range buf {
			buf[i] = c.mem.Read8(addr + uint32(i))
		}
		if _, err := f.WriteAt(buf, offset); err != nil {
			c.SetAL(0xFF)
			return
		}
	} else {
		buf := make([]byte, count)
		n, err := f.ReadAt(buf, offset)
		if err != nil && n == 0 {
			c.SetAL(0xFF)
			return
		}
		for i := 0; i < n; i++ {
			c.mem.Write8(addr+uint32(i), buf[i])
		}
	}
	c.SetAL(0x00)
}
