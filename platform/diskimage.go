// Package platform provides the concrete, host-facing half of the
// engine: a DeviceInterface implementation backed by real files and a
// real terminal, so cmd/emu8086 has something to hand cpu86.NewCPU.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileDiskImage resolves and validates a single disk/BIOS image path.
// The path is operator-supplied on the command line rather than
// guest-requested at runtime, so there is no sandboxing concern; the
// shape that carries over is "resolve to an absolute path, stat it up
// front, fail fast with a clear error" rather than discovering a bad
// path deep inside a hypercall.
type FileDiskImage struct {
	path    string
	sectors uint32
}

// NewFileDiskImage resolves path to an absolute path, stats it, and
// records its size in 512-byte sectors; a path that cannot be stat'ed
// is an error. An empty path is valid and means "no image attached"
// (optional FD/HD images, §6).
func NewFileDiskImage(path string) (*FileDiskImage, error) {
	if path == "" {
		return &FileDiskImage{}, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("platform: resolving image path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("platform: image %q: %w", path, err)
	}
	return &FileDiskImage{path: abs, sectors: uint32(info.Size() / 512)}, nil
}

// Path returns the resolved absolute path, or "" if no image was
// attached.
func (d *FileDiskImage) Path() string { return d.path }

// Sectors returns the image's size in 512-byte sectors, as reported
// to the guest via AX:CX on reset (cpu86/reset.go).
func (d *FileDiskImage) Sectors() uint32 { return d.sectors }

// Attached reports whether an image was given at all.
func (d *FileDiskImage) Attached() bool { return d.path != "" }
