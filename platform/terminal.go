package platform

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// HostTerminal puts the controlling terminal into raw mode and feeds
// stdin bytes into a small keyboard queue the Device polls from: a
// term.MakeRaw/term.Restore pairing around a non-blocking
// syscall.Read loop with CR→LF and DEL→BS translation. PUTCHAR_AL
// already writes straight to os.Stdout (cpu86/disk.go), so
// HostTerminal's only job is (a) raw mode, so that direct stdout
// write isn't mangled by canonical-mode echo, and (b) a byte queue
// the guest's keyboard polling can drain.
type HostTerminal struct {
	queue chan byte

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once

	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

// NewHostTerminal constructs a terminal host with a modestly buffered
// keyboard queue; a guest that doesn't poll often enough drops the
// oldest unread keystrokes rather than blocking the reader goroutine.
func NewHostTerminal() *HostTerminal {
	return &HostTerminal{
		queue:  make(chan byte, 256),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start puts stdin into raw, non-blocking mode and begins reading in
// a goroutine. Call Stop to restore the terminal.
func (h *HostTerminal) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("platform: raw mode: %w", err)
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		return fmt.Errorf("platform: non-blocking stdin: %w", err)
	}
	h.nonblockSet = true

	go h.readLoop()
	return nil
}

func (h *HostTerminal) readLoop() {
	defer close(h.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := syscall.Read(h.fd, buf)
		if n > 0 {
			b := buf[0]
			if b == '\r' {
				b = '\n'
			}
			if b == 0x7F {
				b = 0x08
			}
			select {
			case h.queue <- b:
			default:
				<-h.queue
				h.queue <- b
			}
		}
		switch {
		case err == syscall.EAGAIN || err == syscall.EWOULDBLOCK:
			time.Sleep(5 * time.Millisecond)
		case err != nil:
			return
		case n == 0:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// Stop terminates the reader goroutine and restores the terminal to
// its original (cooked) mode.
func (h *HostTerminal) Stop() {
	h.stopped.Do(func() { close(h.stopCh) })
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

// PollKey returns and removes the next queued keystroke, if any.
func (h *HostTerminal) PollKey() (byte, bool) {
	select {
	case b := <-h.queue:
		return b, true
	default:
		return 0, false
	}
}

// HasKey reports whether a keystroke is queued, without consuming it —
// used to decide whether to raise the keyboard IRQ before the guest's
// ISR actually drains the byte via PollKey (port 0x60).
func (h *HostTerminal) HasKey() bool { return len(h.queue) > 0 }
