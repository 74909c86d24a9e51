package cpu

import (
	"errors"

	"github.com/ezrec/marie/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrSkipcondInvalid = errors.New(f("skipcond condition invalid"))

	// Assembler errors
	ErrOrgMissing      = errors.New(f("ORG missing"))
	ErrOrgInvalid      = errors.New(f("ORG invalid"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrMnemonicMissing = errors.New(f("mnemonic missing"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrOperandRange    = errors.New(f("operand out of range"))
	ErrProgramRange    = errors.New(f("program exceeds memory"))

	// Image errors
	ErrImageMagic = errors.New(f("image magic invalid"))
)

// ErrUndefinedSymbol is returned when an operand is neither a literal
// nor a known label.
type ErrUndefinedSymbol string

func (es ErrUndefinedSymbol) Error() string {
	return f("symbol %v undefined", string(es))
}

// ErrUnknownMnemonic is returned for an unrecognized instruction or
// directive.
type ErrUnknownMnemonic string

func (em ErrUnknownMnemonic) Error() string {
	return f("mnemonic %v unknown", string(em))
}

// ErrLiteralInvalid is returned when a literal cannot be parsed in the
// base its position demands.
type ErrLiteralInvalid string

func (el ErrLiteralInvalid) Error() string {
	return f("'%v' is not a valid literal", string(el))
}

// ErrParseExpression is returned when a $(...) expression fails to
// evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOpcode is an execution fault for the instruction word.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04X %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
