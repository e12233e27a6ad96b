package platform

import (
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/zaynotley/emu8086core/cpu86"
)

// keyboardIRQVector is the real-mode convention for IRQ1 (keyboard):
// the PIC remaps it to INT 0x09.
const keyboardIRQVector = 0x09

// Device is the file- and terminal-backed cpu86.DeviceInterface this
// module ships: it supplies BIOS/floppy/hard-disk paths from the
// command line, bridges a raw-mode terminal's keystrokes to the
// guest's keyboard port, and turns SIGINT into a clean shutdown
// request instead of killing the process mid-Step. Per the Non-goals
// (no video/keyboard/timer *device emulation*), it does not model a
// PIC, a PIT, or a keyboard controller's internal state machine — it
// only proxies the host's keystrokes.
type Device struct {
	bios, fdImage, hdImage *FileDiskImage
	term                   *HostTerminal
	log                    *slog.Logger

	exitRequested atomic.Bool
	resetPending  atomic.Bool

	sigCh chan os.Signal
}

// NewDevice builds a Device from resolved image paths. term may be
// nil for headless (non-interactive) runs, in which case keyboard
// polling and PUTCHAR_AL raw-mode framing are simply absent.
func NewDevice(bios, fdImage, hdImage *FileDiskImage, term *HostTerminal, log *slog.Logger) *Device {
	if log == nil {
		log = slog.Default()
	}
	return &Device{bios: bios, fdImage: fdImage, hdImage: hdImage, term: term, log: log}
}

var _ cpu86.DeviceInterface = (*Device)(nil)

// Initialise starts the SIGINT bridge; memBase is logged but otherwise
// unused, since this Device has no MMIO of its own to relocate.
func (d *Device) Initialise(memBase uint32) {
	d.log.Debug("platform device initialised", "memBase", memBase)
	d.sigCh = make(chan os.Signal, 1)
	signal.Notify(d.sigCh, os.Interrupt)
	go func() {
		for range d.sigCh {
			d.exitRequested.Store(true)
		}
	}()
}

func (d *Device) GetBIOSFilename() string {
	if d.bios == nil {
		return ""
	}
	return d.bios.Path()
}

func (d *Device) GetFDImageFilename() string {
	if d.fdImage == nil {
		return ""
	}
	return d.fdImage.Path()
}

func (d *Device) GetHDImageFilename() string {
	if d.hdImage == nil {
		return ""
	}
	return d.hdImage.Path()
}

// ReadPort services the one port this Device understands: 0x60, the
// classic keyboard-controller data port. Everything else reads as
// 0xFF (an unpopulated bus line on real hardware pulls high).
func (d *Device) ReadPort(port uint16) byte {
	if port == 0x60 && d.term != nil {
		if b, ok := d.term.PollKey(); ok {
			return b
		}
	}
	return 0xFF
}

// WritePort is a no-op: this Device exposes no writable ports.
func (d *Device) WritePort(port uint16, value byte) {
	d.log.Debug("write to unmapped port", "port", port, "value", value)
}

// TimerTick never reports a timer IRQ of its own (no PIT emulation,
// per Non-goals) but does surface a pending exit/reset request.
func (d *Device) TimerTick(n uint32) bool {
	return d.exitRequested.Load() || d.resetPending.Load()
}

func (d *Device) ExitEmulation() bool { return d.exitRequested.Load() }

func (d *Device) Reset() bool { return d.resetPending.Swap(false) }

// FDChanged always reports false: this Device never swaps a floppy
// image out from under a running guest.
func (d *Device) FDChanged() bool { return false }

// IntPending reports the keyboard IRQ when a keystroke is queued and
// unread; the guest's ISR is expected to consume it via ReadPort(0x60).
func (d *Device) IntPending() (byte, bool) {
	if d.term != nil && d.term.HasKey() {
		return keyboardIRQVector, true
	}
	return 0, false
}

// SetInstance is unused: this Device never needs to read guest memory
// back (unlike, say, a device modelling DMA).
func (d *Device) SetInstance(core any) {}

// Cleanup restores the terminal, if one was started.
func (d *Device) Cleanup() {
	if d.term != nil {
		d.term.Stop()
	}
	if d.sigCh != nil {
		signal.Stop(d.sigCh)
		close(d.sigCh)
	}
}

// RequestReset asks the next TimerTick poll to trigger cpu86.Reset.
func (d *Device) RequestReset() { d.resetPending.Store(true) }
