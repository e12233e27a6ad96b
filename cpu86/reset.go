package cpu86

import (
	"os"
	"sync"
)

// biosLoadSegment and biosLoadOffset are where the BIOS image lands in
// the guest address space: CS=0xF000, IP=0x0100 (§3, §6).
const (
	biosLoadSegment = 0xF000
	biosLoadOffset  = 0x0100
)

// Reset zeroes guest RAM below the register window, loads the BIOS,
// floppy and hard-disk images (concurrently — they are three
// independent file opens with no shared state until all three
// succeed), seeds AX:CX with the HD sector count, repopulates the
// decode tables from the freshly-loaded BIOS, and sets CS:IP to the
// BIOS entry point (§3 "Lifecycle", §6 "CPU reset").
func (c *CPU) Reset() error {
	c.mem.ZeroRange(0, RegsBase)
	c.mem.ZeroRange(16*biosLoadSegment+biosLoadOffset, RegsBase)
	c.segOverrideEn = 0
	c.repOverrideEn = 0
	c.trapFlagLatched = false
	c.instrSinceInt8 = 0

	var biosData []byte
	var hdSectors uint32
	var wg sync.WaitGroup
	errs := make([]error, 3)

	if c.device != nil {
		wg.Add(3)
		go func() {
			defer wg.Done()
			biosData, errs[0] = readWholeFile(c.device.GetBIOSFilename())
		}()
		go func() {
			defer wg.Done()
			errs[1] = c.openFloppy(c.device.GetFDImageFilename())
		}()
		go func() {
			defer wg.Done()
			hdSectors, errs[2] = c.openHardDisk(c.device.GetHDImageFilename())
		}()
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	if biosData != nil {
		c.mem.LoadBlob(16*biosLoadSegment+biosLoadOffset, biosData)
		c.tables.LoadFromBIOS(c.mem)
	} else {
		c.tables.LoadDefaults()
	}

	if c.hd != nil {
		c.SetAX(uint16(hdSectors))
		c.SetCX(uint16(hdSectors >> 16))
	} else {
		c.SetAX(0)
		c.SetCX(0)
	}

	c.SetCS(biosLoadSegment)
	c.SetIP(biosLoadOffset)
	c.running = true
	c.exitRequested = false
	return nil
}

// performReset re-runs Reset in response to the device interface
// reporting a platform-level reset request (§4.4 step 1).
func (c *CPU) performReset() {
	if err := c.Reset(); err != nil {
		c.log.Error("reset failed", "error", err)
		c.Halt()
	}
}

func readWholeFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}

func (c *CPU) openFloppy(path string) error {
	if c.fd != nil {
		c.fd.Close()
		c.fd = nil
	}
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	c.fd = f
	return nil
}

func (c *CPU) openHardDisk(path string) (uint32, error) {
	if c.hd != nil {
		c.hd.Close()
		c.hd = nil
	}
	if path == "" {
		return 0, nil
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, err
	}
	c.hd = f
	return uint32(info.Size() / 512), nil
}

// Cleanup releases open disk handles and the device interface's own
// resources.
func (c *CPU) Cleanup() {
	if c.fd != nil {
		c.fd.Close()
		c.fd = nil
	}
	if c.hd != nil {
		c.hd.Close()
		c.hd = nil
	}
	if c.device != nil {
		c.device.Cleanup()
	}
}
