package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	var mem Memory

	mem.Write(0x123, 0xbeef)
	assert.Equal(uint16(0xbeef), mem.Read(0x123))

	// Addresses are taken modulo the memory size.
	mem.Write(0x1fff, 7)
	assert.Equal(uint16(7), mem.Read(0xfff))

	mem.Load(0xffe, []uint16{1, 2, 3})
	assert.Equal(uint16(1), mem.Read(0xffe))
	assert.Equal(uint16(2), mem.Read(0xfff))
	assert.Equal(uint16(3), mem.Read(0x000))

	mem.Reset()
	assert.Equal(uint16(0), mem.Read(0x123))
	assert.Equal(uint16(0), mem.Read(0x000))
}
