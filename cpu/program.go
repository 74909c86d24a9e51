package cpu

import (
	"iter"
)

// Opcode is a line of assembled code with its source location and
// generated word.
type Opcode struct {
	LineNo  int
	Address uint16
	Words   []string
	Code    Code
}

// Program is an instruction stream: a load address and ordered words.
type Program struct {
	Origin  uint16
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
}

// Debug finds the opcode assembled at address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if op.Address == address&ADDRESS_MASK {
			dbg = Debug{Opcode: &prog.Opcodes[n]}
			break
		}
	}

	return
}

// Binary returns the machine words in load order.
func (prog *Program) Binary() (bins []uint16) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint16(code))
	}

	return
}

// Codes iterates over the address and word of each opcode.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(address uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Address, op.Code) {
				return
			}
		}
	}
}

// ProgramFromWords builds a Program from raw machine words, with a
// disassembly standing in for the source text.
func ProgramFromWords(origin uint16, words []uint16) (prog *Program) {
	prog = &Program{Origin: origin}
	for n, word := range words {
		code := Code(word)
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Address: (origin + uint16(n)) & ADDRESS_MASK,
			Words:   []string{code.String()},
			Code:    code,
		})
	}

	return
}
