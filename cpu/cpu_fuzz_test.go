package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for op := range 0x10 {
		f.Add(uint16(op<<12), uint16(0))
		f.Add(uint16(op<<12)|0x400, uint16(0xffff))
		f.Add(uint16(op<<12)|0xc00, uint16(1))
	}

	f.Fuzz(func(t *testing.T, word uint16, ac uint16) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Console = &testChannel{Input: []uint16{0x1234}}
		cpu.Pc = 0x1ab
		cpu.Ac = ac
		for n := range MEMORY_SIZE {
			cpu.Memory.Write(uint16(n), uint16(n*7))
		}
		cpu.Memory.Write(cpu.Pc, word)

		code := Code(word)
		halt, err := cpu.Tick()

		assert.Equal(uint16(word), cpu.Ir)
		assert.Equal(code.Address(), cpu.Mar)
		assert.LessOrEqual(cpu.Pc, ADDRESS_MASK)

		switch {
		case code.Op() == OP_JNS:
			assert.NoError(err)
			assert.True(halt)
		case !code.Op().Valid():
			assert.ErrorIs(err, ErrOpcodeInvalid)
		case code.Op() == OP_SKIPCOND && code.Cond() == CodeCond(CONDITION_MASK):
			assert.ErrorIs(err, ErrSkipcondInvalid)
		case code.Op() == OP_HALT:
			assert.NoError(err)
			assert.True(halt)
		default:
			assert.NoError(err)
			assert.False(halt)
		}
	})
}
