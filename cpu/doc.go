// Package cpu implements the accumulator machine and its assembler.
//
// The machine has 4096 words of 16-bit memory shared by code and data, and a
// register file of PC, IR, AC, MAR, MBR, INREG and OUTREG. Each instruction
// word carries a 4-bit opcode in its high nibble and a 12-bit address field.
//
// The assembler is a two pass translator. The first pass assigns sequential
// addresses from the leading ORG directive and records labels; the second
// encodes each statement, so forward and backward label references resolve
// identically.
package cpu
