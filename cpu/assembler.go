// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// stmtKind is the class of an assembly statement.
type stmtKind int

const (
	stmtCode = stmtKind(iota) // Instruction mnemonic.
	stmtHex                   // Hex data word.
	stmtDec                   // Dec data word.
	stmtEnd                   // END of program.
)

// directiveMap maps directive names to statement kinds.
var directiveMap = map[string]stmtKind{
	"Hex": stmtHex,
	"Dec": stmtDec,
	"END": stmtEnd,
}

// statement is a single source line after the label scan.
type statement struct {
	LineNo  int
	Line    string
	Address uint16
	Words   []string
	Kind    stmtKind
	Op      CodeOp
	Operand Operand
}

// Assembler is a two pass assembler. The first pass assigns addresses
// and collects labels, the second encodes each statement.
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Opcode  []Opcode          // List of generated opcodes.
	Label   map[string]uint16 // Map of labels to addresses.

	predefine map[string]string // Predefines, visible to $(...) expressions.
}

// Predefine defines a new constant or redefines an existing one.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// line is a source line with comments and surrounding space removed.
type line struct {
	LineNo int
	Text   string
}

// readLines strips comments and drops empty lines.
func readLines(input io.Reader) (lines []line, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno += 1
		text, _, _ := strings.Cut(scanner.Text(), "/")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}
		lines = append(lines, line{LineNo: lineno, Text: text})
	}

	err = scanner.Err()
	return
}

// parseOrg parses the ORG directive that must lead the program.
func parseOrg(text string) (origin uint16, err error) {
	words := strings.Fields(text)
	if len(words) != 2 || !strings.EqualFold(words[0], "ORG") {
		err = ErrOrgMissing
		return
	}

	v, perr := strconv.ParseUint(words[1], 16, 16)
	if perr != nil || v > uint64(ADDRESS_MASK) {
		err = ErrOrgInvalid
		return
	}

	origin = uint16(v)
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var current line

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: current.LineNo, Line: current.Text, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Label = make(map[string]uint16, 16)

	lines, err := readLines(input)
	if err != nil {
		return
	}

	if len(lines) == 0 {
		err = ErrOrgMissing
		return
	}

	current = lines[0]
	origin, err := parseOrg(current.Text)
	if err != nil {
		return
	}

	// First pass: addresses and labels.
	var stmts []statement
	address := int(origin)
	for _, current = range lines[1:] {
		var stmt statement
		stmt, err = asm.scanLine(current, uint16(address&int(ADDRESS_MASK)))
		if err != nil {
			return
		}
		if stmt.Kind == stmtEnd {
			break
		}

		if address > int(ADDRESS_MASK) {
			err = ErrProgramRange
			return
		}

		stmts = append(stmts, stmt)
		address++
	}

	// Second pass: encoding.
	for _, stmt := range stmts {
		current = line{LineNo: stmt.LineNo, Text: stmt.Line}

		var code Code
		code, err = asm.encode(stmt)
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Printf("%v: %03X %04X %v", stmt.LineNo, stmt.Address, uint16(code), stmt.Words)
		}

		asm.Opcode = append(asm.Opcode, Opcode{
			LineNo:  stmt.LineNo,
			Address: stmt.Address,
			Words:   stmt.Words,
			Code:    code,
		})
	}

	prog = &Program{
		Origin:  origin,
		Opcodes: append([]Opcode(nil), asm.Opcode...),
	}

	return
}

// scanLine records any label on the line, and splits the remainder into a
// statement with an unresolved operand.
func (asm *Assembler) scanLine(ln line, address uint16) (stmt statement, err error) {
	stmt = statement{
		LineNo:  ln.LineNo,
		Line:    ln.Text,
		Address: address,
	}

	body := ln.Text
	if label, rest, ok := strings.Cut(body, ","); ok {
		label = strings.TrimSpace(label)
		if len(label) == 0 || strings.ContainsAny(label, " \t") {
			err = ErrLabelInvalid
			return
		}
		if _, dup := asm.Label[label]; dup {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = address
		body = strings.TrimSpace(rest)
	}

	stmt.Words = strings.Fields(body)
	if len(stmt.Words) == 0 {
		err = ErrMnemonicMissing
		return
	}

	mnemonic := stmt.Words[0]
	text := strings.TrimSpace(body[len(mnemonic):])

	if kind, ok := directiveMap[mnemonic]; ok {
		stmt.Kind = kind
		switch kind {
		case stmtHex:
			stmt.Operand, err = parseOperand(text, parseHex, true)
		case stmtDec:
			stmt.Operand, err = parseOperand(text, parseSignedDecimal, true)
		}
		if err == nil && kind != stmtEnd && stmt.Operand.Kind == OPERAND_NONE {
			err = ErrOperandMissing
		}
		return
	}

	op, ok := opMap[mnemonic]
	if !ok {
		err = ErrUnknownMnemonic(mnemonic)
		return
	}
	stmt.Kind = stmtCode
	stmt.Op = op

	if op == OP_SKIPCOND {
		// A condition selector, never a label. Expressions see only the
		// predefines.
		stmt.Operand, err = parseOperand(text, parseHex, false)
	} else {
		stmt.Operand, err = parseOperand(text, parseDecimal, true)
	}
	if err != nil {
		return
	}

	if op.NeedsOperand() && stmt.Operand.Kind == OPERAND_NONE {
		err = ErrOperandMissing
	}

	return
}

// encode resolves the operand of a statement and generates its word.
func (asm *Assembler) encode(stmt statement) (code Code, err error) {
	value, err := asm.resolve(stmt.Operand)
	if err != nil {
		return
	}

	switch stmt.Kind {
	case stmtHex, stmtDec:
		if value < -0x8000 || value > 0xffff {
			err = ErrOperandRange
			return
		}
		code = Code(uint16(value))
	default:
		if value < 0 || value > int64(ADDRESS_MASK) {
			err = ErrOperandRange
			return
		}
		code = MakeCode(stmt.Op, uint16(value))
	}

	return
}
