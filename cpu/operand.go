package cpu

import (
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// OperandKind tags how an operand is to be resolved.
type OperandKind int

const (
	OPERAND_NONE       = OperandKind(0) // No operand given.
	OPERAND_LITERAL    = OperandKind(1) // Numeric literal, already parsed.
	OPERAND_SYMBOL     = OperandKind(2) // Label, resolved after the label scan.
	OPERAND_EXPRESSION = OperandKind(3) // $(...) expression, evaluated after the label scan.
	OPERAND_CONSTANT   = OperandKind(4) // $(...) expression over the predefines only.
)

// Operand is a parsed, not yet resolved, operand.
type Operand struct {
	Kind   OperandKind
	Value  uint16 // OPERAND_LITERAL value.
	Symbol string // OPERAND_SYMBOL name, or expression text.
}

// literalParser parses a literal word, returning false if it is not one.
type literalParser func(word string) (value uint16, ok bool)

func parseDecimal(word string) (value uint16, ok bool) {
	v, err := strconv.ParseUint(word, 10, 16)
	if err != nil {
		return
	}
	return uint16(v), true
}

// parseSignedDecimal accepts -32768..65535, stored as two's complement.
func parseSignedDecimal(word string) (value uint16, ok bool) {
	v, err := strconv.ParseInt(word, 10, 32)
	if err != nil || v < -0x8000 || v > 0xffff {
		return
	}
	return uint16(v), true
}

func parseHex(word string) (value uint16, ok bool) {
	v, err := strconv.ParseUint(word, 16, 16)
	if err != nil {
		return
	}
	return uint16(v), true
}

// parseOperand turns the text following a mnemonic into an Operand.
// Literals are tried first; when symbols is set, anything that is not a
// literal is taken as a label name. Without symbols, $(...) expressions
// cannot see labels either.
func parseOperand(text string, literal literalParser, symbols bool) (op Operand, err error) {
	if len(text) == 0 {
		return
	}

	if strings.HasPrefix(text, "$(") && strings.HasSuffix(text, ")") {
		op = Operand{Kind: OPERAND_EXPRESSION, Symbol: text[2 : len(text)-1]}
		if !symbols {
			op.Kind = OPERAND_CONSTANT
		}
		return
	}

	if strings.ContainsAny(text, " \t") {
		err = ErrOperandExtra
		return
	}

	value, ok := literal(text)
	switch {
	case ok:
		op = Operand{Kind: OPERAND_LITERAL, Value: value}
	case symbols:
		op = Operand{Kind: OPERAND_SYMBOL, Symbol: text}
	default:
		err = ErrLiteralInvalid(text)
	}

	return
}

// resolve returns the value of an operand against the label table.
func (asm *Assembler) resolve(op Operand) (value int64, err error) {
	switch op.Kind {
	case OPERAND_NONE:
		value = 0
	case OPERAND_LITERAL:
		value = int64(op.Value)
	case OPERAND_SYMBOL:
		address, ok := asm.Label[op.Symbol]
		if !ok {
			err = ErrUndefinedSymbol(op.Symbol)
			return
		}
		value = int64(address)
	case OPERAND_EXPRESSION:
		value, err = asm.parenEval(op.Symbol, true)
	case OPERAND_CONSTANT:
		value, err = asm.parenEval(op.Symbol, false)
	}

	return
}

// parenEval does compile-time $(...) evaluations. Predefines, and labels
// if requested, are visible as integers.
func (asm *Assembler) parenEval(expr string, labels bool) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.predefine {
		v, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Non-integer predefines are not visible to expressions.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	if labels {
		for key, address := range asm.Label {
			pred[key] = starlark.MakeInt(int(address))
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}
