package cpu

import (
	"fmt"
)

// Word field masks.
const (
	OPCODE_MASK    = uint16(0xf000) // Operation selector.
	ADDRESS_MASK   = uint16(0x0fff) // Address or operand field.
	CONDITION_MASK = uint16(0x0c00) // Skipcond condition selector.

	MEMORY_SIZE = 0x1000 // Words of memory.
)

// CodeOp is an opcode, the top nibble of an instruction word.
type CodeOp int

const (
	OP_JNS      = CodeOp(0x0) // JnS
	OP_LOAD     = CodeOp(0x1) // Load
	OP_STORE    = CodeOp(0x2) // Store
	OP_ADD      = CodeOp(0x3) // Add
	OP_SUBT     = CodeOp(0x4) // Subt
	OP_INPUT    = CodeOp(0x5) // Input
	OP_OUTPUT   = CodeOp(0x6) // Output
	OP_HALT     = CodeOp(0x7) // Halt
	OP_SKIPCOND = CodeOp(0x8) // Skipcond
	OP_JUMP     = CodeOp(0x9) // Jump
	OP_CLEAR    = CodeOp(0xa) // Clear
	OP_ADDI     = CodeOp(0xb) // AddI
	OP_JUMPI    = CodeOp(0xc) // JumpI
	OP_LOADI    = CodeOp(0xd) // LoadI
	OP_STOREI   = CodeOp(0xe) // StoreI
)

var opName = [...]string{
	OP_JNS:      "JnS",
	OP_LOAD:     "Load",
	OP_STORE:    "Store",
	OP_ADD:      "Add",
	OP_SUBT:     "Subt",
	OP_INPUT:    "Input",
	OP_OUTPUT:   "Output",
	OP_HALT:     "Halt",
	OP_SKIPCOND: "Skipcond",
	OP_JUMP:     "Jump",
	OP_CLEAR:    "Clear",
	OP_ADDI:     "AddI",
	OP_JUMPI:    "JumpI",
	OP_LOADI:    "LoadI",
	OP_STOREI:   "StoreI",
}

// opMap maps mnemonics to opcodes. Mnemonics are case sensitive.
var opMap = func() map[string]CodeOp {
	m := make(map[string]CodeOp, len(opName))
	for op, name := range opName {
		m[name] = CodeOp(op)
	}
	return m
}()

// Valid returns true if the opcode is part of the instruction set.
func (op CodeOp) Valid() bool {
	return op >= 0 && int(op) < len(opName)
}

// String returns the mnemonic of the opcode.
func (op CodeOp) String() string {
	if !op.Valid() {
		return fmt.Sprintf("CodeOp(%d)", int(op))
	}
	return opName[op]
}

// NeedsOperand returns true if the mnemonic requires an operand.
func (op CodeOp) NeedsOperand() bool {
	switch op {
	case OP_INPUT, OP_OUTPUT, OP_HALT, OP_CLEAR:
		return false
	}
	return true
}

// CodeCond is a Skipcond condition selector, already shifted into
// position within the address field.
type CodeCond uint16

const (
	COND_LESS    = CodeCond(0b00 << 10) // AC < 0
	COND_EQUAL   = CodeCond(0b01 << 10) // AC == 0
	COND_GREATER = CodeCond(0b10 << 10) // AC > 0
)

// Test reports whether the accumulator, as a signed value, satisfies
// the condition.
func (cond CodeCond) Test(ac uint16) (ok bool, valid bool) {
	value := int16(ac)
	valid = true
	switch cond {
	case COND_LESS:
		ok = value < 0
	case COND_EQUAL:
		ok = value == 0
	case COND_GREATER:
		ok = value > 0
	default:
		valid = false
	}
	return
}

// Code is a single machine word.
type Code uint16

// MakeCode creates an instruction word from an opcode and an address field.
func MakeCode(op CodeOp, address uint16) Code {
	return Code((uint16(op) << 12) | (address & ADDRESS_MASK))
}

// Op returns the opcode from the instruction word.
func (code Code) Op() CodeOp {
	return CodeOp((uint16(code) & OPCODE_MASK) >> 12)
}

// Address returns the low 12 bits of the instruction word.
func (code Code) Address() uint16 {
	return uint16(code) & ADDRESS_MASK
}

// Cond returns the Skipcond selector from the instruction word.
func (code Code) Cond() CodeCond {
	return CodeCond(uint16(code) & CONDITION_MASK)
}

// String returns the assembly language representation of this word.
func (code Code) String() string {
	op := code.Op()
	if !op.Valid() {
		return fmt.Sprintf("Hex %X", uint16(code))
	}
	if !op.NeedsOperand() && code.Address() == 0 {
		return op.String()
	}
	return fmt.Sprintf("%v 0x%03X", op, code.Address())
}
