package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/mgutz/ansi"

	"github.com/ezrec/marie/io"
)

// Channel is the console I/O channel interface.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("0x%x", MEMORY_SIZE),
	"ADDRESS_MASK":   fmt.Sprintf("0x%x", ADDRESS_MASK),
	"CONDITION_MASK": fmt.Sprintf("0x%x", CONDITION_MASK),
	"COND_LESS":      fmt.Sprintf("0x%x", uint16(COND_LESS)),
	"COND_EQUAL":     fmt.Sprintf("0x%x", uint16(COND_EQUAL)),
	"COND_GREATER":   fmt.Sprintf("0x%x", uint16(COND_GREATER)),
}

// Registers is the register file.
type Registers struct {
	Pc     uint16 // Program counter.
	Ir     uint16 // Instruction register.
	Ac     uint16 // Accumulator.
	Mar    uint16 // Memory address register.
	Mbr    uint16 // Memory buffer register.
	InReg  uint16 // Latched console input.
	OutReg uint16 // Last console output.
}

var registerNames = [...]string{
	"Program Counter",
	"Instruction Register",
	"Accumulator",
	"Memory Access Register",
	"Memory Buffer Register",
	"Input Register",
	"Output Register",
}

// All iterates over register names and values, in dump order.
func (regs *Registers) All() iter.Seq2[string, uint16] {
	values := [...]uint16{regs.Pc, regs.Ir, regs.Ac, regs.Mar, regs.Mbr, regs.InReg, regs.OutReg}
	return func(yield func(name string, value uint16) bool) {
		for n, name := range registerNames {
			if !yield(name, values[n]) {
				return
			}
		}
	}
}

// String returns the register dump, in hex and decimal.
func (regs Registers) String() string {
	var lines []string
	for name, val := range regs.All() {
		lines = append(lines, fmt.Sprintf("%v: 0x%X %d", name, val, val))
	}
	return strings.Join(lines, "\n")
}

var chSame = ansi.ColorCode("default:default")
var chNew = ansi.ColorCode("default+bu:default")

// Diff returns the register dump, marking registers that differ from prior.
// With color, changed registers are highlighted, otherwise prefixed by '+'.
func (regs Registers) Diff(prior Registers, color bool) string {
	old := map[string]uint16{}
	for name, val := range prior.All() {
		old[name] = val
	}

	var lines []string
	for name, val := range regs.All() {
		text := fmt.Sprintf("%v: 0x%X %d", name, val, val)
		changed := old[name] != val
		switch {
		case color && changed:
			text = chNew + text + ansi.Reset
		case color:
			text = chSame + text + ansi.Reset
		case changed:
			text = "+ " + text
		default:
			text = "  " + text
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

// Cpu is the simulation context for the accumulator machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers        // Register file.
	Memory    Memory // Main memory.

	Console Channel // Console I/O; may be nil.

	Ticks int // Instructions executed.
}

// NewCpu creates a new CPU with zeroed memory and registers.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset clears memory and registers, and loads the program at its origin.
func (cpu *Cpu) Reset(prog *Program) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers = Registers{}
	cpu.Memory.Reset()
	cpu.Ticks = 0

	if prog == nil {
		return
	}

	cpu.Memory.Load(prog.Origin, prog.Binary())
	cpu.Pc = prog.Origin

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words at 0x%03X", len(prog.Opcodes), prog.Origin)
	}
}

// Poll latches any new console input into INREG.
func (cpu *Cpu) Poll() {
	if cpu.Console == nil {
		return
	}
	if value, ok := cpu.Console.Poll(); ok {
		cpu.InReg = value
	}
}

// Fetch reads the word at PC into IR, advances PC, and decodes the
// address field into MAR with its memory word in MBR.
func (cpu *Cpu) Fetch() (code Code) {
	cpu.Mar = cpu.Pc
	cpu.Ir = cpu.Memory.Read(cpu.Mar)
	cpu.Pc = (cpu.Pc + 1) & ADDRESS_MASK

	code = Code(cpu.Ir)
	cpu.Mar = code.Address()
	cpu.Mbr = cpu.Memory.Read(cpu.Mar)

	return
}

// Tick executes a single fetch, decode, execute cycle. An opcode of zero,
// as found in never-written memory, halts the machine.
func (cpu *Cpu) Tick() (halt bool, err error) {
	cpu.Poll()

	pc := cpu.Pc
	code := cpu.Fetch()

	if cpu.Verbose {
		log.Printf("%03X: %v", pc, code)
	}

	if code.Op() == OP_JNS {
		halt = true
		return
	}

	return cpu.Execute(code)
}

// Execute executes a decoded instruction. MAR and MBR must already hold
// the decoded operand, as left by Fetch.
func (cpu *Cpu) Execute(code Code) (halt bool, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	switch code.Op() {
	case OP_JNS:
		cpu.Memory.Write(cpu.Mar, cpu.Pc)
		cpu.Ac = cpu.Mar + 1
		cpu.Pc = cpu.Ac & ADDRESS_MASK
	case OP_LOAD:
		cpu.Ac = cpu.Mbr
	case OP_STORE:
		cpu.Memory.Write(cpu.Mar, cpu.Ac)
	case OP_ADD:
		cpu.Ac += cpu.Mbr
	case OP_SUBT:
		cpu.Ac -= cpu.Mbr
	case OP_INPUT:
		cpu.Ac = cpu.InReg
	case OP_OUTPUT:
		cpu.OutReg = cpu.Ac
		if cpu.Console != nil {
			err = cpu.Console.Send(cpu.OutReg)
			if err != nil {
				return
			}
		}
	case OP_HALT:
		halt = true
	case OP_SKIPCOND:
		skip, valid := CodeCond(cpu.Mar & CONDITION_MASK).Test(cpu.Ac)
		if !valid {
			err = ErrSkipcondInvalid
			return
		}
		if skip {
			cpu.Pc = (cpu.Pc + 1) & ADDRESS_MASK
		}
	case OP_JUMP:
		cpu.Pc = cpu.Mar
	case OP_CLEAR:
		cpu.Ac = 0
	case OP_ADDI:
		cpu.Ac += cpu.Memory.Read(cpu.Mbr)
	case OP_JUMPI:
		cpu.Pc = cpu.Mbr & ADDRESS_MASK
	case OP_LOADI:
		cpu.Ac = cpu.Memory.Read(cpu.Mbr)
	case OP_STOREI:
		cpu.Memory.Write(cpu.Mbr, cpu.Ac)
	default:
		err = ErrOpcodeInvalid
		return
	}

	cpu.Ticks += 1

	return
}
