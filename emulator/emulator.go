// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/marie/cpu"
	"github.com/ezrec/marie/internal"
	"github.com/ezrec/marie/io"
)

// Emulator state. CPU + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Console io.Console // Console IO channel.

	loaded cpu.Registers // Registers as of the last Reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Console = &emu.Console

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		emu.Console.Defines(),
	)
}

// Reset loads the program into zeroed memory, and starts the console
// reader.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Console.Verbose = emu.Verbose

	emu.Cpu.Reset(emu.Program)
	emu.loaded = emu.Cpu.Registers

	emu.Console.Listen()

	return
}

// Ticks returns the instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number for the instruction at PC.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction cycle of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	address := emu.Cpu.Pc
	lineno := emu.LineNo()

	done, err = emu.Cpu.Tick()
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Address: address, Err: err}
		done = true
	}

	return
}

// Run ticks until the machine halts or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d instructions", emu.Ticks())
	}

	return
}

// Dump returns the register dump. With diff set, registers changed since
// the last Reset are marked, and highlighted if color is set.
func (emu *Emulator) Dump(diff bool, color bool) string {
	if !diff {
		return emu.Cpu.Registers.String()
	}

	return emu.Cpu.Registers.Diff(emu.loaded, color)
}
