// Command emu8086 wires the execution core (cpu86) to a file- and
// terminal-backed device bridge (platform) and, optionally, the
// interactive breakpoint/inspection console (debugmon). The
// subcommand/flag shape follows a standard cobra layout: a bare root
// command short on its own logic, one or more subcommands each owning
// its own flag set via cobra.Command.Flags().*Var, and a single
// rootCmd.Execute() at the bottom.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zaynotley/emu8086core/cpu86"
	"github.com/zaynotley/emu8086core/platform"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emu8086",
		Short: "8086/80186/NEC-V20 real-mode emulation core",
	}

	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		biosPath      string
		fdPath        string
		hdPath        string
		memSize       int
		int8RateLimit int
		interactive   bool
		headless      bool
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a BIOS/floppy/hard-disk image and run it",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(logLevel)

			bios, err := platform.NewFileDiskImage(biosPath)
			if err != nil {
				return err
			}
			fd, err := platform.NewFileDiskImage(fdPath)
			if err != nil {
				return err
			}
			hd, err := platform.NewFileDiskImage(hdPath)
			if err != nil {
				return err
			}

			var term *platform.HostTerminal
			if !headless {
				term = platform.NewHostTerminal()
				if err := term.Start(); err != nil {
					return fmt.Errorf("starting terminal: %w", err)
				}
			}

			device := platform.NewDevice(bios, fd, hd, term, log)
			mem := cpu86.NewMemory(memSize)
			core := cpu86.NewCPU(mem, device, log)
			core.SetInt8RateLimit(int8RateLimit)
			defer core.Cleanup()

			device.Initialise(cpu86.RegsBase)
			if err := core.Reset(); err != nil {
				return fmt.Errorf("reset: %w", err)
			}

			if interactive {
				runMonitor(core, log)
				return nil
			}

			for core.Running() {
				core.Step()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&biosPath, "bios", "", "path to the BIOS image loaded at F000:0100")
	cmd.Flags().StringVar(&fdPath, "fd", "", "path to a floppy disk image (optional)")
	cmd.Flags().StringVar(&hdPath, "hd", "", "path to a hard disk image (optional)")
	cmd.Flags().IntVar(&memSize, "mem-size", cpu86.MinMemorySize, "guest address space size in bytes")
	cmd.Flags().IntVar(&int8RateLimit, "int8-rate-limit", cpu86.DefaultInt8RateLimit, "minimum instructions between timer (INT 8) deliveries")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "drop into the debug monitor instead of free-running")
	cmd.Flags().BoolVar(&headless, "headless", false, "don't attach a host terminal (no raw-mode stdin, no keyboard IRQ)")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	return cmd
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
