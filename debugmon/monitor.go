// Package debugmon is an interactive breakpoint/inspection console
// driven over a line-editing REPL: an abbreviation-matched command
// table over a liner.Prompt/AppendHistory loop, scoped to what makes
// sense as a terminal REPL rather than a GUI debugger — breakpoints,
// register and memory inspection, single-step, and a light
// disassembly aid.
package debugmon

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/peterh/liner"

	"github.com/zaynotley/emu8086core/cpu86"
)

// Monitor is a liner-backed REPL over a single core instance.
type Monitor struct {
	cpu         *cpu86.CPU
	log         *slog.Logger
	breakpoints map[uint32]bool
}

// NewMonitor wraps cpu for interactive inspection.
func NewMonitor(cpu *cpu86.CPU, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{cpu: cpu, log: log, breakpoints: make(map[uint32]bool)}
}

// command mirrors rcornwell-S370's command/parser.cmd: a name, the
// shortest unambiguous prefix length an operator may type, and the
// handler it dispatches to.
type command struct {
	name string
	min  int
	run  func(*Monitor, []string) error
}

var commandTable = []command{
	{"help", 1, (*Monitor).cmdHelp},
	{"step", 1, (*Monitor).cmdStep},
	{"continue", 1, (*Monitor).cmdContinue},
	{"registers", 3, (*Monitor).cmdRegisters},
	{"flags", 2, (*Monitor).cmdFlags},
	{"memory", 3, (*Monitor).cmdMemory},
	{"disassemble", 4, (*Monitor).cmdDisassemble},
	{"break", 3, (*Monitor).cmdBreak},
	{"delete", 3, (*Monitor).cmdDelete},
	{"breakpoints", 6, (*Monitor).cmdBreakpoints},
	{"reset", 3, (*Monitor).cmdReset},
	{"quit", 1, (*Monitor).cmdQuit},
}

var errQuit = errors.New("quit")

// matchCommand reports whether name is a valid, in-range abbreviation
// of cmd.name — the same prefix rule rcornwell-S370's matchCommand
// uses, simplified for a table with no nested sub-matchers.
func matchCommand(cmd command, name string) bool {
	if len(name) == 0 || len(name) > len(cmd.name) {
		return false
	}
	if name != cmd.name[:len(name)] {
		return false
	}
	return len(name) >= cmd.min
}

func matchList(name string) []command {
	var out []command
	for _, c := range commandTable {
		if matchCommand(c, name) {
			out = append(out, c)
		}
	}
	return out
}

// Run drives the REPL until the operator quits (or a quit command, an
// EOF/Ctrl-D, or Ctrl-C aborts the prompt).
func (m *Monitor) Run() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(s string) []string {
		var out []string
		for _, c := range matchList(s) {
			out = append(out, c.name)
		}
		return out
	})

	for {
		text, err := line.Prompt("emu8086> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			m.log.Error("reading command", "error", err)
			return
		}
		line.AppendHistory(text)
		if err := m.dispatch(text); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			fmt.Println("error:", err)
		}
	}
}

func (m *Monitor) dispatch(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	matches := matchList(fields[0])
	switch len(matches) {
	case 0:
		return fmt.Errorf("unknown command: %s", fields[0])
	case 1:
		return matches[0].run(m, fields[1:])
	default:
		return fmt.Errorf("ambiguous command: %s", fields[0])
	}
}
