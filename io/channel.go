// Package io provides the console channel for the accumulator machine.
// Input is read asynchronously and latched; the CPU polls the latch once
// per cycle and never blocks on it.
package io

// Channel defines the interface for the CPU's console.
type Channel interface {
	// Poll returns the most recently delivered input value, if one
	// arrived since the previous Poll.
	Poll() (value uint16, ok bool)
	// Send writes an output value.
	Send(value uint16) error
}
