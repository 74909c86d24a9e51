package cpu

// Memory is the word addressable store shared by code and data.
// Addresses are truncated to 12 bits.
type Memory [MEMORY_SIZE]uint16

// Read returns the word at address.
func (mem *Memory) Read(address uint16) uint16 {
	return mem[address&ADDRESS_MASK]
}

// Write stores value at address.
func (mem *Memory) Write(address uint16, value uint16) {
	mem[address&ADDRESS_MASK] = value
}

// Load copies words into memory starting at origin, wrapping at the end
// of the address space.
func (mem *Memory) Load(origin uint16, words []uint16) {
	for n, word := range words {
		mem.Write(origin+uint16(n), word)
	}
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}
