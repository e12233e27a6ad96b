package main

import (
	"log/slog"

	"github.com/zaynotley/emu8086core/cpu86"
	"github.com/zaynotley/emu8086core/debugmon"
)

// runMonitor drops into the interactive breakpoint/inspection console
// instead of free-running the core.
func runMonitor(core *cpu86.CPU, log *slog.Logger) {
	debugmon.NewMonitor(core, log).Run()
}
